// Package cache provides a small in-memory TTL cache used to short-circuit
// redelivered webhook notifications without a database round trip.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache stores values with per-entry expiry. Expired entries are dropped
// lazily on read and swept whenever the cache grows past maxEntries.
type TTLCache[K comparable, V any] struct {
	mu         sync.Mutex
	items      map[K]entry[V]
	maxEntries int
}

func NewTTLCache[K comparable, V any](maxEntries int) *TTLCache[K, V] {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &TTLCache[K, V]{
		items:      make(map[K]entry[V]),
		maxEntries: maxEntries,
	}
}

// Get returns a cached value if it exists and has not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if now.After(item.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return item.value, true
}

// Set stores a value for ttl. A non-positive ttl is ignored.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if c == nil || ttl <= 0 {
		return
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.maxEntries {
		c.sweep(now)
	}
	if len(c.items) >= c.maxEntries {
		// Still full after dropping expired entries; refuse rather than
		// grow without bound. The database remains the source of truth.
		return
	}
	c.items[key] = entry[V]{value: value, expiresAt: now.Add(ttl)}
}

// Len reports the number of entries currently held, expired or not.
func (c *TTLCache[K, V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *TTLCache[K, V]) sweep(now time.Time) {
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}
