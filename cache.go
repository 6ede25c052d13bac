package stockroom

var _ Cache[any] = &SimpleCache[any]{}

// SimpleCache is a string-keyed registry that assigns dense indices in
// registration order. UnionSchema builds on it to fix member identifiers.
type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	item := &c.items[index]
	return item
}

func (c *SimpleCache[T]) GetItem32(index uint32) *T {
	item := &c.items[index]
	return item
}

func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if _, exists := c.itemIndices[key]; exists {
		return -1, DuplicateKeyError{Key: key}
	}
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, CacheCapacityError{Capacity: c.maxCapacity}
	}

	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)

	return idx, nil
}

func (c *SimpleCache[T]) Len() int {
	return len(c.items)
}
