package ashley

import "sync"

// internCache hands out one stable index per distinct key, in first-seen
// order. It backs the process-wide component kind table and family interning.
type internCache[K comparable, T any] struct {
	mu          sync.Mutex
	items       []T
	itemIndices map[K]int
	maxCapacity int
}

func newInternCache[K comparable, T any](maxCapacity int) *internCache[K, T] {
	return &internCache[K, T]{
		itemIndices: make(map[K]int),
		maxCapacity: maxCapacity,
	}
}

// register returns the item stored under key, building it with its index on
// first use. A maxCapacity of zero means unbounded.
func (c *internCache[K, T]) register(key K, build func(index int) T) (T, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx, ok := c.itemIndices[key]; ok {
		return c.items[idx], idx, nil
	}
	if c.maxCapacity > 0 && len(c.items) >= c.maxCapacity {
		var zero T
		return zero, -1, CacheCapacityError{Capacity: c.maxCapacity}
	}

	idx := len(c.items)
	item := build(idx)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return item, idx, nil
}

func (c *internCache[K, T]) lookup(key K) (T, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.itemIndices[key]
	if !ok {
		var zero T
		return zero, -1, false
	}
	return c.items[idx], idx, true
}

func (c *internCache[K, T]) item(index int) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[index]
}

func (c *internCache[K, T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
