package stockroom

import (
	"fmt"
	"iter"

	"go.uber.org/zap"
)

// World is the authoritative table of entities keyed by EntityID, plus every
// registered predicate index. The world is the sole owner of entity lifetime
// once an entity is added.
//
// Entity ids start at 1 and are never reused; id 0 is reserved as null. Both
// counters are fields of the world, not process-wide state.
//
// Adding an entity updates every registered predicate index synchronously, so
// insertion cost is proportional to the number of registered predicates. That
// is a deliberate trade-off in favor of cheap, always-fresh queries. Removal
// touches only the entity table; predicate indices reconcile lazily.
type World[ID comparable, S Storage[ID]] struct {
	entities map[EntityID]*Entity[ID, S]
	ids      idSource

	preds      map[PredicateID]*predicateIndex[ID, S]
	nextPredID PredicateID

	locked  bool
	opQueue opQueue[ID, S]
}

func newWorld[ID comparable, S Storage[ID]]() *World[ID, S] {
	return &World[ID, S]{
		entities:   make(map[EntityID]*Entity[ID, S]),
		ids:        newIDSource(1),
		preds:      make(map[PredicateID]*predicateIndex[ID, S]),
		nextPredID: 1,
		opQueue:    newOpQueue[ID, S](),
	}
}

// NewWorldFrom creates a world and adds the given entities through the normal
// Add path.
func NewWorldFrom[ID comparable, S Storage[ID]](entities ...*Entity[ID, S]) (*World[ID, S], error) {
	w := newWorld[ID, S]()
	for _, e := range entities {
		if _, err := w.Add(e); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Add inserts an entity, stamps it with the next id, and returns that id.
// Every registered predicate index is updated synchronously: tombstones from
// prior removals are swept out, then the predicate is evaluated against the
// new entity and the id appended on a match.
func (w *World[ID, S]) Add(e *Entity[ID, S]) (EntityID, error) {
	if w.locked {
		return NullEntityID, LockedWorldError{}
	}
	id, err := w.ids.Next()
	if err != nil {
		return NullEntityID, err
	}

	for _, index := range w.preds {
		index.sweep()
		if index.pred(e) {
			index.ids = append(index.ids, id)
		}
	}

	w.entities[id] = e
	Config.logger.Debug("entity added", zap.Uint64("entity_id", uint64(id)))
	if cb := Config.events.OnEntityAdded; cb != nil {
		cb(id)
	}
	return id, nil
}

// Remove removes an entity from the table and returns it, or nil if the id is
// unknown. Predicate indices are not touched: their candidate lists may now
// reference an entity that no longer exists, reconciled when those entries
// are next visited by a cursor or swept by a later Add.
func (w *World[ID, S]) Remove(id EntityID) (*Entity[ID, S], error) {
	if w.locked {
		return nil, LockedWorldError{}
	}
	e, ok := w.entities[id]
	if !ok {
		return nil, nil
	}
	delete(w.entities, id)
	Config.logger.Debug("entity removed", zap.Uint64("entity_id", uint64(id)))
	if cb := Config.events.OnEntityRemoved; cb != nil {
		cb(id)
	}
	return e, nil
}

// Get returns the entity under the given id.
func (w *World[ID, S]) Get(id EntityID) (*Entity[ID, S], bool) {
	e, ok := w.entities[id]
	return e, ok
}

// MustGet returns the entity under the given id, panicking if it does not
// exist. Use it only where the caller asserts the entity must be present;
// expected absence goes through Get.
func (w *World[ID, S]) MustGet(id EntityID) *Entity[ID, S] {
	e, ok := w.entities[id]
	if !ok {
		panic(fmt.Sprintf("stockroom: unknown entity id: %d", uint64(id)))
	}
	return e
}

// Len returns the number of live entities.
func (w *World[ID, S]) Len() int {
	return len(w.entities)
}

// All iterates over every live entity, independent of any predicate index.
// Order is unspecified.
func (w *World[ID, S]) All() iter.Seq2[EntityID, *Entity[ID, S]] {
	return func(yield func(EntityID, *Entity[ID, S]) bool) {
		for id, e := range w.entities {
			if !yield(id, e) {
				return
			}
		}
	}
}

// RegisterPredicate registers a predicate and returns its id. The current
// table is scanned once to seed the candidate list with every live entity
// satisfying the predicate. The predicate must be side-effect-free and
// repeatable; it is held for the lifetime of the world.
func (w *World[ID, S]) RegisterPredicate(pred Predicate[ID, S]) PredicateID {
	id := w.nextPredID
	w.nextPredID++

	ids := make([]EntityID, 0)
	for entityID, e := range w.entities {
		if pred(e) {
			ids = append(ids, entityID)
		}
	}
	w.preds[id] = &predicateIndex[ID, S]{pred: pred, ids: ids}
	Config.logger.Debug("predicate registered",
		zap.Uint32("predicate_id", uint32(id)),
		zap.Int("seeded", len(ids)),
	)
	return id
}

// IterPred returns a cursor over the given predicate index, or false if no
// predicate was registered under that id. A stale id held across world
// replacement is expected absence, not a fault.
func (w *World[ID, S]) IterPred(id PredicateID) (*Cursor[ID, S], bool) {
	if _, ok := w.preds[id]; !ok {
		return nil, false
	}
	return &Cursor[ID, S]{world: w, predID: id}, true
}

// Locked reports whether the world currently refuses direct mutation.
func (w *World[ID, S]) Locked() bool {
	return w.locked
}

// Lock puts the world in a state where Add and Remove fail and the Enqueue
// variants defer instead. Cursors lock nothing themselves; callers that
// mutate mid-iteration either Lock first or use the Enqueue operations.
func (w *World[ID, S]) Lock() {
	w.locked = true
}

// Unlock releases the lock and drains the deferred-operation queue through
// the normal Add and Remove paths.
func (w *World[ID, S]) Unlock() {
	w.locked = false
	err := w.processOperationQueue()
	if err != nil {
		panic(err)
	}
}
