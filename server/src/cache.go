// server/src/cache.go
package main

import (
	"strings"
	"sync"
	"time"
)

// ResponseCache is a TTL cache for aggregate upstream responses, keyed by
// the full request parameter tuple. Entries are evicted lazily on read.
type ResponseCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	data      any
	fetchedAt time.Time
}

// NewResponseCache creates a cache whose entries live for ttl.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// cacheKey joins request parameters into a stable cache key.
func cacheKey(parts ...string) string {
	return strings.Join(parts, "|")
}

// Get returns the cached value for key if present and fresh.
func (c *ResponseCache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(entry.fetchedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: another writer may have refreshed it.
		if current, still := c.entries[key]; still && time.Since(current.fetchedAt) >= c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.data, true
}

// Set stores a value under key, stamping it with the current time.
func (c *ResponseCache) Set(key string, data any) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{data: data, fetchedAt: time.Now()}
	c.mu.Unlock()
}

// Len reports the number of entries, expired ones included.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
