// Package cache provides server-side caches for computed dashboard
// aggregates. The cache stores serialized payloads keyed per tenant so
// repeated dashboard loads do not re-run aggregate queries.
package cache

import (
	"context"
	"time"
)

// StatsCache stores serialized dashboard payloads with a TTL
type StatsCache interface {
	// Get returns the cached payload for a key, or ok=false on miss
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)

	// Set stores a payload under a key for the given TTL
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources
	Close() error
}
