package stockroom

import (
	"fmt"
	"reflect"
)

var _ Storage[uint32] = Tagged{}

// TaggedEntity is an entity over closed-set storage.
type TaggedEntity = Entity[uint32, Tagged]

// TaggedWorld is a world over closed-set storage.
type TaggedWorld = World[uint32, Tagged]

// Tagged is the closed-set storage realization: a tagged union whose active
// tag is a dense integer fixed by member registration order on a UnionSchema.
type Tagged struct {
	id    uint32
	value any // always a *T for the member type T
}

func (t Tagged) ID() uint32 {
	return t.id
}

func (t Tagged) String() string {
	if t.value == nil {
		return "Tagged(nil)"
	}
	return fmt.Sprintf("Tagged[%d](%v)", t.id, reflect.ValueOf(t.value).Elem().Interface())
}

// Matches the default mask width; a union cannot hold more members than the
// dense-id mask used by the query helpers can mark.
const maxUnionMembers = 64

// UnionSchema declares the closed set of component types a Tagged storage may
// hold. Member identifiers are assigned densely in registration order and are
// fixed for the schema's lifetime; identifier to type is a bijection.
type UnionSchema struct {
	members *SimpleCache[memberInfo]
}

type memberInfo struct {
	rtype  reflect.Type
	encode func(Tagged) (any, error)
	decode func(any, Encoding) (Tagged, error)
}

func newUnionSchema() *UnionSchema {
	return &UnionSchema{
		members: &SimpleCache[memberInfo]{
			itemIndices: make(map[string]int),
			maxCapacity: maxUnionMembers,
		},
	}
}

// RegisterMember declares T as the next member of the union and returns its
// handle. Registration assigns the member's dense identifier; registering the
// same type twice, or exceeding the member capacity, is a programmer error
// and panics.
func RegisterMember[T any](schema *UnionSchema) Member[T] {
	rtype := reflect.TypeFor[T]()
	info := memberInfo{
		rtype: rtype,
		encode: func(t Tagged) (any, error) {
			p, ok := t.value.(*T)
			if !ok {
				return nil, UnknownTypeError{Type: rtype.String()}
			}
			return *p, nil
		},
	}
	idx, err := schema.members.Register(rtype.String(), info)
	if err != nil {
		panic(fmt.Sprintf("stockroom: cannot register union member %s: %v", rtype, err))
	}
	member := Member[T]{id: uint32(idx)}
	schema.members.GetItem(idx).decode = func(raw any, enc Encoding) (Tagged, error) {
		buf, err := enc.Marshal(raw)
		if err != nil {
			return Tagged{}, err
		}
		var value T
		if err := enc.Unmarshal(buf, &value); err != nil {
			return Tagged{}, err
		}
		return member.Wrap(value), nil
	}
	return member
}

var _ Accessor[int, uint32, Tagged] = Member[int]{}

// Member is the handle for one declared union member. It wraps values into
// Tagged storage and views Tagged storage back into the member type.
type Member[T any] struct {
	id uint32
}

func (m Member[T]) ID() uint32 {
	return m.id
}

// Wrap places a component value in closed-set storage under the member's tag.
func (m Member[T]) Wrap(value T) Tagged {
	return Tagged{id: m.id, value: &value}
}

// View succeeds exactly when the union's active tag matches this member.
func (m Member[T]) View(t Tagged) (*T, bool) {
	if t.id != m.id {
		return nil, false
	}
	p, ok := t.value.(*T)
	return p, ok
}

// GetFromEntity retrieves the member component from an entity by locating the
// storage under the member's identifier and viewing it.
func (m Member[T]) GetFromEntity(e *TaggedEntity) (*T, bool) {
	s, ok := e.Get(m.id)
	if !ok {
		return nil, false
	}
	return m.View(s)
}

// RemoveFromEntity removes and returns the storage under the member's
// identifier.
func (m Member[T]) RemoveFromEntity(e *TaggedEntity) (Tagged, bool) {
	return e.Remove(m.id)
}

// Check reports whether the entity holds a storage under the member's
// identifier.
func (m Member[T]) Check(e *TaggedEntity) bool {
	return e.Has(m.id)
}
