package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// TTLCache is a bounded in-memory key/value store. Expired entries read as
// misses and are removed lazily; when capacity is exceeded the entry with the
// earliest store time is evicted regardless of its remaining TTL.
type TTLCache struct {
	mu       sync.Mutex
	entries  map[string]entry
	capacity int
	now      func() time.Time
}

// New creates a cache bounded to capacity entries.
func New(capacity int) *TTLCache {
	if capacity <= 0 {
		capacity = 1024
	}
	return &TTLCache{
		entries:  make(map[string]entry),
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the live value for key, or false on miss or expiry.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl. Overwriting an existing key never
// triggers eviction.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = entry{value: value, storedAt: c.now(), ttl: ttl}
}

// Invalidate removes key if present.
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Sweep removes every expired entry and reports how many were dropped.
func (c *TTLCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	dropped := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			dropped++
		}
	}
	return dropped
}

// Len returns the current number of entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest drops the entry with the earliest store time. Caller holds mu.
func (c *TTLCache) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.storedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

// Key builds a deterministic namespaced cache key from its parts.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
