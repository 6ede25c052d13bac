package stockroom

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
)

// Predicate combinators. Predicates compose freely; the dense-id helpers
// below evaluate closed-set entities through bitmasks instead of per-member
// map probes.

// PredAnd matches entities satisfying every given predicate.
func PredAnd[ID comparable, S Storage[ID]](preds ...Predicate[ID, S]) Predicate[ID, S] {
	return func(e *Entity[ID, S]) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// PredOr matches entities satisfying at least one of the given predicates.
func PredOr[ID comparable, S Storage[ID]](preds ...Predicate[ID, S]) Predicate[ID, S] {
	return func(e *Entity[ID, S]) bool {
		for _, p := range preds {
			if p(e) {
				return true
			}
		}
		return false
	}
}

// PredNot matches entities satisfying none of the given predicates.
func PredNot[ID comparable, S Storage[ID]](preds ...Predicate[ID, S]) Predicate[ID, S] {
	return func(e *Entity[ID, S]) bool {
		for _, p := range preds {
			if p(e) {
				return false
			}
		}
		return true
	}
}

// TaggedMask builds the bitmask of dense component identifiers present on a
// closed-set entity.
func TaggedMask(e *TaggedEntity) mask.Mask {
	var m mask.Mask
	for id := range e.IDs() {
		m.Mark(id)
	}
	return m
}

func identMask(idents []Ident[uint32]) mask.Mask {
	var m mask.Mask
	for _, ident := range idents {
		m.Mark(ident.ID())
	}
	return m
}

// HasAllOf matches closed-set entities holding every given member.
func HasAllOf(idents ...Ident[uint32]) Predicate[uint32, Tagged] {
	query := identMask(idents)
	return func(e *TaggedEntity) bool {
		entityMask := TaggedMask(e)
		return entityMask.ContainsAll(query)
	}
}

// HasAnyOf matches closed-set entities holding at least one given member.
func HasAnyOf(idents ...Ident[uint32]) Predicate[uint32, Tagged] {
	query := identMask(idents)
	return func(e *TaggedEntity) bool {
		entityMask := TaggedMask(e)
		return entityMask.ContainsAny(query)
	}
}

// HasNoneOf matches closed-set entities holding none of the given members.
func HasNoneOf(idents ...Ident[uint32]) Predicate[uint32, Tagged] {
	query := identMask(idents)
	return func(e *TaggedEntity) bool {
		entityMask := TaggedMask(e)
		return entityMask.ContainsNone(query)
	}
}

// HasBoxOf matches open-set entities holding a boxed component of type T.
func HasBoxOf[T any]() Predicate[reflect.Type, Box] {
	id := reflect.TypeFor[T]()
	return func(e *BoxEntity) bool {
		return e.Has(id)
	}
}
