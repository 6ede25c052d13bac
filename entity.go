package stockroom

import (
	"iter"
	"reflect"
)

// Entity is a mapping from component identifier to storage. At most one
// storage may live under a given identifier; inserting a second evicts and
// returns the first. An entity is a plain single-threaded value with no
// internal synchronization, owned by whoever holds it until it is added to a
// world.
type Entity[ID comparable, S Storage[ID]] struct {
	components map[ID]S
}

// NewEntity creates an empty entity.
func NewEntity[ID comparable, S Storage[ID]]() *Entity[ID, S] {
	return &Entity[ID, S]{components: make(map[ID]S)}
}

// FromStorages creates an entity holding the given storages, inserted in
// order through Add.
func FromStorages[ID comparable, S Storage[ID]](storages ...S) *Entity[ID, S] {
	e := NewEntity[ID, S]()
	for _, s := range storages {
		e.Add(s)
	}
	return e
}

// NewBoxEntity creates an entity from boxed components.
func NewBoxEntity(storages ...Box) *BoxEntity {
	return FromStorages[reflect.Type](storages...)
}

// NewTaggedEntity creates an entity from closed-set storages.
func NewTaggedEntity(storages ...Tagged) *TaggedEntity {
	return FromStorages[uint32](storages...)
}

// Add inserts a storage under its own identifier. If a storage already lived
// under that identifier it is evicted and returned with replaced true.
func (e *Entity[ID, S]) Add(storage S) (previous S, replaced bool) {
	if e.components == nil {
		e.components = make(map[ID]S)
	}
	id := storage.ID()
	previous, replaced = e.components[id]
	e.components[id] = storage
	return previous, replaced
}

// Remove removes and returns the storage under the given identifier. Removing
// an absent identifier returns false with no side effect.
func (e *Entity[ID, S]) Remove(id ID) (S, bool) {
	storage, ok := e.components[id]
	if ok {
		delete(e.components, id)
	}
	return storage, ok
}

// Get returns the storage under the given identifier without type resolution.
func (e *Entity[ID, S]) Get(id ID) (S, bool) {
	storage, ok := e.components[id]
	return storage, ok
}

// Has reports whether a storage lives under the given identifier.
func (e *Entity[ID, S]) Has(id ID) bool {
	_, ok := e.components[id]
	return ok
}

// Len returns the number of stored components.
func (e *Entity[ID, S]) Len() int {
	return len(e.components)
}

// IDs iterates over all component identifiers in the entity. Order is
// unspecified.
func (e *Entity[ID, S]) IDs() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for id := range e.components {
			if !yield(id) {
				return
			}
		}
	}
}

// Storages iterates over all storages in the entity.
func (e *Entity[ID, S]) Storages() iter.Seq[S] {
	return func(yield func(S) bool) {
		for _, s := range e.components {
			if !yield(s) {
				return
			}
		}
	}
}

// Get resolves a component in two stages: locate the storage under the
// accessor's identifier, then view it as the component type. Either stage
// failing yields an absent result. The second stage exists because the
// identifier alone does not guarantee the storage holds the expected type,
// except in the closed-set realization where it does by construction.
func Get[C any, ID comparable, S Storage[ID]](e *Entity[ID, S], acc Accessor[C, ID, S]) (*C, bool) {
	storage, ok := e.Get(acc.ID())
	if !ok {
		return nil, false
	}
	return acc.View(storage)
}

// Remove removes the storage under the accessor's identifier.
func Remove[C any, ID comparable, S Storage[ID]](e *Entity[ID, S], acc Accessor[C, ID, S]) (S, bool) {
	return e.Remove(acc.ID())
}

// Has reports whether the entity holds a storage under the accessor's
// identifier.
func Has[C any, ID comparable, S Storage[ID]](e *Entity[ID, S], acc Accessor[C, ID, S]) bool {
	return e.Has(acc.ID())
}
