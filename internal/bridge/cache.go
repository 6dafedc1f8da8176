package bridge

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is the request cache TTL used when none is configured.
const DefaultCacheTTL = 30 * time.Second

type cacheEntry struct {
	value    any
	storedAt time.Time
}

// RequestCache is a TTL-bound in-memory cache for read responses.
// Entries are evicted lazily at read time when their TTL has elapsed;
// there is no background sweep and no LRU bookkeeping. The cache is
// best-effort: a miss simply means the caller performs a real fetch.
type RequestCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewRequestCache creates a request cache with the given TTL.
// A non-positive ttl falls back to DefaultCacheTTL.
func NewRequestCache(ttl time.Duration) *RequestCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RequestCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key if it is still fresh.
// A stale entry is removed and reported as a miss.
func (c *RequestCache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key.String())
		return nil, false
	}
	return entry.value, true
}

// Set stores a value for key, unconditionally overwriting any previous
// entry and resetting its stored-at time.
func (c *RequestCache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.String()] = cacheEntry{value: value, storedAt: c.now()}
}

// Invalidate removes all entries whose rendered key contains pattern.
// An empty pattern clears the cache entirely.
func (c *RequestCache) Invalidate(pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pattern == "" {
		c.entries = make(map[string]cacheEntry)
		return
	}
	for k := range c.entries {
		if strings.Contains(k, pattern) {
			delete(c.entries, k)
		}
	}
}

// Len returns the number of entries currently held, stale ones included
func (c *RequestCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
