package stockroom

import (
	"fmt"
	"reflect"
)

var _ Storage[reflect.Type] = Box{}

// BoxEntity is an entity over open-set storage.
type BoxEntity = Entity[reflect.Type, Box]

// BoxWorld is a world over open-set storage.
type BoxWorld = World[reflect.Type, Box]

// Box is the open-set storage realization. Its identifier is the dynamic type
// of the contained value, so any value may be boxed and no two component
// types collide. Views are checked narrowing operations: a mismatched type is
// an absent result, never a reinterpretation.
type Box struct {
	rtype reflect.Type
	value any // always a *T for the boxed T
}

// BoxOf wraps a component value in open-set storage.
func BoxOf[T any](value T) Box {
	return Box{
		rtype: reflect.TypeFor[T](),
		value: &value,
	}
}

func (b Box) ID() reflect.Type {
	return b.rtype
}

func (b Box) String() string {
	if b.value == nil {
		return "Box(nil)"
	}
	return fmt.Sprintf("Box[%s](%v)", b.rtype, reflect.ValueOf(b.value).Elem().Interface())
}

var _ Accessor[int, reflect.Type, Box] = BoxAccessor[int]{}

// BoxAccessor resolves boxes holding a specific component type.
type BoxAccessor[T any] struct{}

func BoxAccessorFor[T any]() BoxAccessor[T] {
	return BoxAccessor[T]{}
}

func (a BoxAccessor[T]) ID() reflect.Type {
	return reflect.TypeFor[T]()
}

func (a BoxAccessor[T]) View(b Box) (*T, bool) {
	p, ok := b.value.(*T)
	return p, ok
}

// GetFromEntity retrieves the component from an entity by locating the
// storage under T's identifier and viewing it as T.
func (a BoxAccessor[T]) GetFromEntity(e *BoxEntity) (*T, bool) {
	s, ok := e.Get(a.ID())
	if !ok {
		return nil, false
	}
	return a.View(s)
}

// RemoveFromEntity removes and returns the storage under T's identifier.
func (a BoxAccessor[T]) RemoveFromEntity(e *BoxEntity) (Box, bool) {
	return e.Remove(a.ID())
}

// Check reports whether the entity holds a storage under T's identifier.
func (a BoxAccessor[T]) Check(e *BoxEntity) bool {
	return e.Has(a.ID())
}

// GetBox retrieves a boxed component of type T from an entity.
func GetBox[T any](e *BoxEntity) (*T, bool) {
	return BoxAccessorFor[T]().GetFromEntity(e)
}

// RemoveBox removes the boxed component of type T from an entity, returning
// the removed storage.
func RemoveBox[T any](e *BoxEntity) (Box, bool) {
	return BoxAccessorFor[T]().RemoveFromEntity(e)
}

// HasBox reports whether an entity holds a boxed component of type T.
func HasBox[T any](e *BoxEntity) bool {
	return BoxAccessorFor[T]().Check(e)
}
