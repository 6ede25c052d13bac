package stockroom

import "reflect"

type factory struct{}

var Factory factory

func (f factory) NewBoxWorld() *BoxWorld {
	return newWorld[reflect.Type, Box]()
}

func (f factory) NewTaggedWorld() *TaggedWorld {
	return newWorld[uint32, Tagged]()
}

func (f factory) NewUnionSchema() *UnionSchema {
	return newUnionSchema()
}

func (f factory) NewBoxCodec() *BoxCodec {
	return newBoxCodec()
}

func FactoryNewWorld[ID comparable, S Storage[ID]]() *World[ID, S] {
	return newWorld[ID, S]()
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
