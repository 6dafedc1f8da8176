package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryStatsCache is a StatsCache backed by a mutex-guarded map.
// Suitable for single-instance deployments and testing. Expired entries
// are evicted lazily on read.
type InMemoryStatsCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewInMemoryStatsCache creates a new in-memory stats cache
func NewInMemoryStatsCache() *InMemoryStatsCache {
	return &InMemoryStatsCache{
		entries: make(map[string]inMemoryEntry),
	}
}

// Get returns the cached payload for a key, or ok=false on miss
func (c *InMemoryStatsCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// Set stores a payload under a key for the given TTL
func (c *InMemoryStatsCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a key
func (c *InMemoryStatsCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Close releases any underlying resources
func (c *InMemoryStatsCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]inMemoryEntry)
	return nil
}

// Ensure InMemoryStatsCache implements StatsCache
var _ StatsCache = (*InMemoryStatsCache)(nil)
