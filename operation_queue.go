package stockroom

import "fmt"

// opQueue buffers mutations issued while the world is locked. Queued
// operations replay through the normal Add and Remove paths at Unlock, so
// predicate maintenance behaves exactly as if the mutation had happened
// directly.
type opQueue[ID comparable, S Storage[ID]] struct {
	addOps        []*Entity[ID, S]
	removeOps     []EntityID
	pendingRemove map[EntityID]struct{}
}

func newOpQueue[ID comparable, S Storage[ID]]() opQueue[ID, S] {
	return opQueue[ID, S]{
		pendingRemove: make(map[EntityID]struct{}),
	}
}

// EnqueueAdd adds the entity directly when the world is unlocked, and defers
// it otherwise. A deferred add receives its id at Unlock time, so no id is
// reported here.
func (w *World[ID, S]) EnqueueAdd(e *Entity[ID, S]) error {
	if !w.locked {
		_, err := w.Add(e)
		if err != nil {
			return fmt.Errorf("failed to add entity directly: %w", err)
		}
		return nil
	}
	w.opQueue.addOps = append(w.opQueue.addOps, e)
	return nil
}

// EnqueueRemove removes the entity directly when the world is unlocked, and
// defers it otherwise. Duplicate deferred removals of the same id coalesce.
func (w *World[ID, S]) EnqueueRemove(id EntityID) error {
	if !w.locked {
		_, err := w.Remove(id)
		if err != nil {
			return fmt.Errorf("failed to remove entity directly: %w", err)
		}
		return nil
	}
	if _, exists := w.opQueue.pendingRemove[id]; exists {
		return nil
	}
	w.opQueue.pendingRemove[id] = struct{}{}
	w.opQueue.removeOps = append(w.opQueue.removeOps, id)
	return nil
}

func (w *World[ID, S]) processOperationQueue() error {
	if len(w.opQueue.addOps) == 0 && len(w.opQueue.removeOps) == 0 {
		return nil
	}

	// Process adds first
	for _, e := range w.opQueue.addOps {
		if _, err := w.Add(e); err != nil {
			return fmt.Errorf("failed to process queued add: %w", err)
		}
	}

	// Process removes last
	for _, id := range w.opQueue.removeOps {
		if _, err := w.Remove(id); err != nil {
			return fmt.Errorf("failed to process queued remove: %w", err)
		}
	}

	w.opQueue.addOps = w.opQueue.addOps[:0]
	w.opQueue.removeOps = w.opQueue.removeOps[:0]
	clear(w.opQueue.pendingRemove)
	return nil
}
