package cache

import (
	"context"
	"sync"
)

const defaultCapacity = 50

// LRUCache is a bounded in-memory cache with least-recently-used eviction.
// Entries persist until pushed out by capacity pressure or an explicit Clear;
// there is no TTL, so a stale entry can be served indefinitely.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string][]byte
	order    []string // access order, most-recently-used at the tail
}

//create new bounded in-memory cache
//capacity below 1 falls back to the default of 50

func NewLRUCache(capacity int) *LRUCache {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	return &LRUCache{
		capacity: capacity,
		items:    make(map[string][]byte, capacity),
	}
}

// Get returns the cached value for the query, marking it most-recently-used.
func (c *LRUCache) Get(_ context.Context, interests, skills, goals string) ([]byte, bool, error) {
	key := Fingerprint(interests, skills, goals)

	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}

	c.touch(key)
	return value, true, nil
}

// Put inserts or overwrites the entry for the query. When the cache is full
// and the key is new, the least-recently-used entry is evicted first.
func (c *LRUCache) Put(_ context.Context, interests, skills, goals string, value []byte) error {
	key := Fingerprint(interests, skills, goals)

	// Copy to decouple from caller's buffer
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; exists {
		c.items[key] = valueCopy
		c.touch(key)
		return nil
	}

	if len(c.items) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}

	c.items[key] = valueCopy
	c.order = append(c.order, key)
	return nil
}

// Clear empties the cache.
func (c *LRUCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.items = make(map[string][]byte, c.capacity)
	c.order = nil
	c.mu.Unlock()
	return nil
}

// Len returns the number of entries currently cached.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the maximum number of entries the cache holds.
func (c *LRUCache) Capacity() int {
	return c.capacity
}

// touch moves key to the most-recently-used position. Caller holds the lock.
func (c *LRUCache) touch(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
}
