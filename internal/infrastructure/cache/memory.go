// Package cache provides the go-cache backed implementation of
// pkg/cache.CacheService.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"stylefeed-backend/pkg/cache"
)

type memoryCache struct {
	inner *gocache.Cache
}

// NewMemoryCache returns an in-process cache. defaultTTL applies when Set
// is called with a zero duration; the janitor evicts expired entries every
// cleanupInterval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{inner: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *memoryCache) Get(key string) (interface{}, bool) {
	return m.inner.Get(key)
}

func (m *memoryCache) Set(key string, value interface{}, ttl time.Duration) {
	m.inner.Set(key, value, ttl)
}

func (m *memoryCache) Delete(key string) {
	m.inner.Delete(key)
}

func (m *memoryCache) Flush() {
	m.inner.Flush()
}
