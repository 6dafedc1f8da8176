package bridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCacheGetSet(t *testing.T) {
	cache := NewRequestCache(30 * time.Second)
	key := NewKey("proposals.get", "id", "p-1")

	_, ok := cache.Get(key)
	assert.False(t, ok)

	cache.Set(key, "value")
	got, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestRequestCacheTTLBoundary(t *testing.T) {
	cache := NewRequestCache(30 * time.Second)
	base := time.Now()
	cache.now = func() time.Time { return base }

	key := NewKey("proposals.list", "page", "1")
	cache.Set(key, "fresh")

	// Exactly at the TTL the entry is still served.
	cache.now = func() time.Time { return base.Add(30 * time.Second) }
	got, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "fresh", got)

	// One instant past the TTL it is evicted.
	cache.now = func() time.Time { return base.Add(30*time.Second + time.Millisecond) }
	_, ok = cache.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestRequestCacheSetResetsAge(t *testing.T) {
	cache := NewRequestCache(30 * time.Second)
	base := time.Now()
	cache.now = func() time.Time { return base }

	key := NewKey("customers.get", "id", "c-1")
	cache.Set(key, "v1")

	cache.now = func() time.Time { return base.Add(25 * time.Second) }
	cache.Set(key, "v2")

	cache.now = func() time.Time { return base.Add(40 * time.Second) }
	got, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "v2", got)
}

func TestRequestCacheInvalidate(t *testing.T) {
	cache := NewRequestCache(30 * time.Second)
	cache.Set(NewKey("proposals.list", "page", "1"), "a")
	cache.Set(NewKey("proposals.get", "id", "p-1"), "b")
	cache.Set(NewKey("customers.list", "page", "1"), "c")

	t.Run("pattern removes every matching entry", func(t *testing.T) {
		cache.Invalidate("proposals.")
		_, ok := cache.Get(NewKey("proposals.list", "page", "1"))
		assert.False(t, ok)
		_, ok = cache.Get(NewKey("proposals.get", "id", "p-1"))
		assert.False(t, ok)
		_, ok = cache.Get(NewKey("customers.list", "page", "1"))
		assert.True(t, ok)
	})

	t.Run("empty pattern clears everything", func(t *testing.T) {
		cache.Invalidate("")
		assert.Equal(t, 0, cache.Len())
	})
}

func TestRequestCacheNonPositiveTTL(t *testing.T) {
	cache := NewRequestCache(0)
	assert.Equal(t, DefaultCacheTTL, cache.ttl)
}
