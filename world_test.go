package stockroom

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestWorldIDsMonotonic(t *testing.T) {
	world := Factory.NewBoxWorld()

	var last EntityID
	for i := 0; i < 100; i++ {
		id, err := world.Add(NewBoxEntity(BoxOf(i)))
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if id.IsNull() {
			t.Fatalf("Add issued the null id")
		}
		if id <= last {
			t.Fatalf("ids not strictly increasing: %v after %v", id, last)
		}
		last = id
	}
	if world.Len() != 100 {
		t.Errorf("world Len = %d, want 100", world.Len())
	}
}

func TestWorldIDsNotReused(t *testing.T) {
	world := Factory.NewBoxWorld()

	removed, err := world.Add(NewBoxEntity(BoxOf(1)))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := world.Remove(removed); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	next, err := world.Add(NewBoxEntity(BoxOf(2)))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if next == removed {
		t.Errorf("id %v reused after removal", removed)
	}
	if next <= removed {
		t.Errorf("id %v issued after %v is not greater", next, removed)
	}
}

func TestWorldAddRefusesWhenIDsExhausted(t *testing.T) {
	world := Factory.NewBoxWorld()
	world.ids.next = math.MaxUint64

	id, err := world.Add(NewBoxEntity(BoxOf(1)))
	var exhausted EntityIDExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Add() error = %v, want EntityIDExhaustedError", err)
	}
	if !id.IsNull() {
		t.Errorf("Add() id = %v, want null", id)
	}
	if world.Len() != 0 {
		t.Errorf("world Len = %d after refused add, want 0", world.Len())
	}

	// The source saturates: retries keep failing rather than wrapping.
	if _, err := world.Add(NewBoxEntity(BoxOf(2))); !errors.As(err, &exhausted) {
		t.Errorf("second Add() error = %v, want EntityIDExhaustedError", err)
	}
}

func TestWorldGet(t *testing.T) {
	world := Factory.NewBoxWorld()
	id, _ := world.Add(NewBoxEntity(BoxOf(5), BoxOf("Hello, World!")))

	e, ok := world.Get(id)
	if !ok {
		t.Fatalf("Get(%v) reported absence for a live entity", id)
	}
	num, _ := GetBox[int](e)
	if *num != 5 {
		t.Errorf("component through world lookup = %d, want 5", *num)
	}

	// Mutation through the looked-up entity is visible on the next lookup
	*num = 8
	e, _ = world.Get(id)
	num, _ = GetBox[int](e)
	if *num != 8 {
		t.Errorf("mutation lost across lookups, got %d", *num)
	}

	if _, ok := world.Get(EntityID(9999)); ok {
		t.Errorf("Get reported presence for an unknown id")
	}
	if _, ok := world.Get(NullEntityID); ok {
		t.Errorf("Get reported presence for the null id")
	}
}

func TestWorldMustGetPanics(t *testing.T) {
	world := Factory.NewBoxWorld()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("MustGet on an unknown id did not panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "unknown entity id") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()
	world.MustGet(EntityID(42))
}

func TestWorldRemove(t *testing.T) {
	world := Factory.NewBoxWorld()
	id, _ := world.Add(NewBoxEntity(BoxOf(5)))

	e, err := world.Remove(id)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if e == nil {
		t.Fatalf("Remove returned nil for a live entity")
	}
	num, _ := GetBox[int](e)
	if *num != 5 {
		t.Errorf("removed entity lost its component, got %d", *num)
	}

	// Removing again is expected absence, not a fault
	for i := 0; i < 2; i++ {
		e, err := world.Remove(id)
		if err != nil {
			t.Fatalf("repeated Remove() error = %v", err)
		}
		if e != nil {
			t.Errorf("repeated Remove returned an entity")
		}
	}
	if world.Len() != 0 {
		t.Errorf("world Len after removal = %d, want 0", world.Len())
	}
}

func TestWorldAll(t *testing.T) {
	world := Factory.NewBoxWorld()
	want := map[EntityID]int{}
	for i := 0; i < 10; i++ {
		id, _ := world.Add(NewBoxEntity(BoxOf(i)))
		want[id] = i
	}

	seen := 0
	for id, e := range world.All() {
		num, ok := GetBox[int](e)
		if !ok || *num != want[id] {
			t.Errorf("entity %v holds %v, want %d", id, num, want[id])
		}
		seen++
	}
	if seen != 10 {
		t.Errorf("All visited %d entities, want 10", seen)
	}

	// Restartable: a second pass sees the same table
	seen = 0
	for range world.All() {
		seen++
	}
	if seen != 10 {
		t.Errorf("second All pass visited %d entities, want 10", seen)
	}
}

func TestNewWorldFrom(t *testing.T) {
	world, err := NewWorldFrom(
		NewBoxEntity(BoxOf(5), BoxOf("Hello, World!")),
		NewBoxEntity(BoxOf(9), BoxOf("Bye, World!")),
	)
	if err != nil {
		t.Fatalf("NewWorldFrom() error = %v", err)
	}
	if world.Len() != 2 {
		t.Errorf("world Len = %d, want 2", world.Len())
	}
}

func TestWorldEvents(t *testing.T) {
	var added, removed []EntityID
	Config.SetWorldEvents(WorldEvents{
		OnEntityAdded:   func(id EntityID) { added = append(added, id) },
		OnEntityRemoved: func(id EntityID) { removed = append(removed, id) },
	})
	defer Config.SetWorldEvents(WorldEvents{})

	world := Factory.NewBoxWorld()
	id, _ := world.Add(NewBoxEntity(BoxOf(1)))
	world.Remove(id)

	if len(added) != 1 || added[0] != id {
		t.Errorf("OnEntityAdded calls = %v, want [%v]", added, id)
	}
	if len(removed) != 1 || removed[0] != id {
		t.Errorf("OnEntityRemoved calls = %v, want [%v]", removed, id)
	}
}
