package stockroom

import (
	"errors"
	"math"
	"testing"
)

func TestLockedWorldRefusesMutation(t *testing.T) {
	world := Factory.NewBoxWorld()
	id, _ := world.Add(NewBoxEntity(BoxOf(1)))

	world.Lock()
	defer world.Unlock()

	if !world.Locked() {
		t.Fatalf("Locked() = false after Lock")
	}
	if _, err := world.Add(NewBoxEntity(BoxOf(2))); !errors.As(err, &LockedWorldError{}) {
		t.Errorf("Add on locked world error = %v, want LockedWorldError", err)
	}
	if _, err := world.Remove(id); !errors.As(err, &LockedWorldError{}) {
		t.Errorf("Remove on locked world error = %v, want LockedWorldError", err)
	}
}

func TestEnqueueDefersWhileLocked(t *testing.T) {
	world := Factory.NewBoxWorld()
	victim, _ := world.Add(NewBoxEntity(BoxOf(1)))

	world.Lock()
	if err := world.EnqueueAdd(NewBoxEntity(BoxOf(2))); err != nil {
		t.Fatalf("EnqueueAdd() error = %v", err)
	}
	if err := world.EnqueueRemove(victim); err != nil {
		t.Fatalf("EnqueueRemove() error = %v", err)
	}
	// Duplicate removals coalesce
	if err := world.EnqueueRemove(victim); err != nil {
		t.Fatalf("repeated EnqueueRemove() error = %v", err)
	}

	// Nothing applied yet
	if world.Len() != 1 {
		t.Fatalf("world Len = %d while locked, want 1", world.Len())
	}

	world.Unlock()

	if world.Len() != 1 {
		t.Errorf("world Len = %d after Unlock, want 1 (one added, one removed)", world.Len())
	}
	if _, ok := world.Get(victim); ok {
		t.Errorf("queued removal not applied")
	}
}

func TestEnqueueAppliesDirectlyWhenUnlocked(t *testing.T) {
	world := Factory.NewBoxWorld()

	if err := world.EnqueueAdd(NewBoxEntity(BoxOf(1))); err != nil {
		t.Fatalf("EnqueueAdd() error = %v", err)
	}
	if world.Len() != 1 {
		t.Errorf("world Len = %d, want 1 (direct apply)", world.Len())
	}
}

func TestQueuedAddsUpdatePredicates(t *testing.T) {
	world := Factory.NewBoxWorld()
	predID := world.RegisterPredicate(HasBoxOf[int]())

	world.Lock()
	world.EnqueueAdd(NewBoxEntity(BoxOf(5)))
	world.EnqueueAdd(NewBoxEntity(BoxOf("not a match")))
	world.Unlock()

	cursor, _ := world.IterPred(predID)
	count := 0
	for cursor.Next() {
		count++
	}
	if count != 1 {
		t.Errorf("predicate matched %d queued entities, want 1", count)
	}
}

func TestCursorExhaustionUnlocks(t *testing.T) {
	world := Factory.NewBoxWorld()
	predID := world.RegisterPredicate(HasBoxOf[int]())
	world.Add(NewBoxEntity(BoxOf(1)))
	world.Add(NewBoxEntity(BoxOf(2)))

	world.Lock()
	cursor, _ := world.IterPred(predID)
	for cursor.Next() {
		// Mutations issued mid-iteration defer
		if err := world.EnqueueAdd(NewBoxEntity(BoxOf(3))); err != nil {
			t.Fatalf("EnqueueAdd during iteration error = %v", err)
		}
	}

	if world.Locked() {
		t.Fatalf("world still locked after cursor exhaustion")
	}
	if world.Len() != 4 {
		t.Errorf("world Len = %d after drain, want 4", world.Len())
	}
}

func TestUnlockPanicsWhenQueuedAddFails(t *testing.T) {
	world := Factory.NewBoxWorld()
	world.ids.next = math.MaxUint64

	world.Lock()
	if err := world.EnqueueAdd(NewBoxEntity(BoxOf(1))); err != nil {
		t.Fatalf("EnqueueAdd while locked error = %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Unlock with a failing queued add did not panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("unexpected panic value: %v", r)
		}
		var exhausted EntityIDExhaustedError
		if !errors.As(err, &exhausted) {
			t.Errorf("panic error = %v, want EntityIDExhaustedError", err)
		}
	}()
	world.Unlock()
}
