package stockroom

import "fmt"

type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is currently locked"
}

type EntityIDExhaustedError struct{}

func (e EntityIDExhaustedError) Error() string {
	return "entity id space exhausted"
}

type UnknownTypeError struct {
	Type string
}

func (e UnknownTypeError) Error() string {
	return fmt.Sprintf("no codec registration for type: %s", e.Type)
}

type DuplicateKeyError struct {
	Key string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("key already registered: %s", e.Key)
}

type CacheCapacityError struct {
	Capacity int
}

func (e CacheCapacityError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}
