package stockroom

import (
	"fmt"
	"math"
)

// EntityID is an opaque, totally ordered handle for an entity. Ids are issued
// starting at 1 and are never reused, even after the entity is removed. The
// zero value is NullEntityID and is never issued to a real entity.
type EntityID uint64

// NullEntityID marks "does not exist". Predicate indices use it to tombstone
// entries whose entity has been removed.
const NullEntityID EntityID = 0

// IsNull reports whether the id is the reserved null sentinel.
func (id EntityID) IsNull() bool {
	return id == NullEntityID
}

func (id EntityID) String() string {
	return fmt.Sprintf("EntityID(%d)", uint64(id))
}

// PredicateID identifies a registered predicate index within one world.
type PredicateID uint32

// idSource issues strictly increasing entity ids. It saturates instead of
// wrapping: wraparound would silently violate the non-reuse invariant.
type idSource struct {
	next EntityID
}

func newIDSource(start EntityID) idSource {
	return idSource{next: start}
}

func (s *idSource) Next() (EntityID, error) {
	if s.next == math.MaxUint64 {
		return NullEntityID, EntityIDExhaustedError{}
	}
	id := s.next
	s.next++
	return id, nil
}
