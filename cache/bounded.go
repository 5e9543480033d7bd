// Package cache holds the bounded memo tables used by evaluation and search.
package cache

// EvictFraction is the share of entries dropped when a table overflows.
const EvictFraction = 0.3

// Stats counts lookups and evictions since the last Clear.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
}

// Bounded is a map with a capacity. Once a Put grows it past capacity the
// oldest-inserted ~30% of entries are evicted. Updating a key keeps its
// original insertion slot. Not safe for concurrent use.
type Bounded[K comparable, V any] struct {
	capacity int
	entries  map[K]V
	order    []K // insertion order; order[head:] are live
	head     int
	stats    Stats
}

func NewBounded[K comparable, V any](capacity int) *Bounded[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Bounded[K, V]{
		capacity: capacity,
		entries:  make(map[K]V, capacity),
		order:    make([]K, 0, capacity),
	}
}

func (c *Bounded[K, V]) Get(k K) (V, bool) {
	v, ok := c.entries[k]
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return v, ok
}

// Peek is Get without touching the stats.
func (c *Bounded[K, V]) Peek(k K) (V, bool) {
	v, ok := c.entries[k]
	return v, ok
}

func (c *Bounded[K, V]) Put(k K, v V) {
	if _, ok := c.entries[k]; ok {
		c.entries[k] = v
		return
	}
	c.entries[k] = v
	c.order = append(c.order, k)
	if len(c.entries) > c.capacity {
		c.evict()
	}
}

func (c *Bounded[K, V]) evict() {
	n := int(float64(len(c.entries)) * EvictFraction)
	if n < 1 {
		n = 1
	}
	for i := 0; i < n && c.head < len(c.order); i++ {
		delete(c.entries, c.order[c.head])
		c.head++
	}
	c.stats.Evictions += n

	// Compact once the dead prefix dominates the slice.
	if c.head > len(c.order)/2 {
		live := copy(c.order, c.order[c.head:])
		c.order = c.order[:live]
		c.head = 0
	}
}

func (c *Bounded[K, V]) Len() int {
	return len(c.entries)
}

func (c *Bounded[K, V]) Capacity() int {
	return c.capacity
}

// Clear drops every entry and resets the stats.
func (c *Bounded[K, V]) Clear() {
	clear(c.entries)
	c.order = c.order[:0]
	c.head = 0
	c.stats = Stats{}
}

func (c *Bounded[K, V]) Stats() Stats {
	return c.stats
}
