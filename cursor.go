package stockroom

import "iter"

// Cursor iterates one predicate index, resolving cached ids against the live
// entity table. It holds only the world reference and a position: every Next
// performs a fresh table lookup, and no entity reference is cached across
// calls.
//
// When Next reads an id whose entity has been removed, it writes the null
// sentinel into that slot (a lazy tombstone) and moves on; the tombstone
// stays in the index until the next Add sweeps it away. Exhausting the cursor
// resets it and unlocks the world, so a locked iteration drains its deferred
// operations as soon as it finishes. A drained cursor is reusable: the next
// Next call starts a fresh pass over the candidate list.
type Cursor[ID comparable, S Storage[ID]] struct {
	world  *World[ID, S]
	predID PredicateID

	index   int
	current EntityID
	entity  *Entity[ID, S]
}

// Next advances to the next live matching entity, reporting false when the
// candidate list is exhausted.
func (c *Cursor[ID, S]) Next() bool {
	index := c.world.preds[c.predID]
	for c.index < len(index.ids) {
		id := index.ids[c.index]
		c.index++
		if id.IsNull() {
			continue
		}
		if e, ok := c.world.entities[id]; ok {
			c.current = id
			c.entity = e
			return true
		}
		index.ids[c.index-1] = NullEntityID
	}
	c.Reset()
	return false
}

// Entity returns the entity at the cursor position.
func (c *Cursor[ID, S]) Entity() *Entity[ID, S] {
	return c.entity
}

// EntityID returns the id of the entity at the cursor position.
func (c *Cursor[ID, S]) EntityID() EntityID {
	return c.current
}

// Entities drains the cursor as a sequence of id and entity pairs.
func (c *Cursor[ID, S]) Entities() iter.Seq2[EntityID, *Entity[ID, S]] {
	return func(yield func(EntityID, *Entity[ID, S]) bool) {
		for c.Next() {
			if !yield(c.current, c.entity) {
				c.Reset()
				return
			}
		}
	}
}

// TotalMatched counts entries in the candidate list that still resolve
// against the live table, without consuming the cursor.
func (c *Cursor[ID, S]) TotalMatched() int {
	return c.world.preds[c.predID].liveCount(c.world.entities)
}

// Reset rewinds the cursor to the start of the candidate list and unlocks
// the world.
func (c *Cursor[ID, S]) Reset() {
	c.index = 0
	c.current = NullEntityID
	c.entity = nil
	c.world.Unlock()
}
