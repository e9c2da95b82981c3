package cache

import "time"

// CacheService is the read-through cache used by the stats layer. Values
// are stored as-is; callers cache copies, not pointers into live state.
type CacheService interface {
	// Get returns the cached value and whether the key was present.
	Get(key string) (interface{}, bool)

	// Set stores a value for the given lifetime.
	Set(key string, value interface{}, duration time.Duration)

	// Delete drops a single key.
	Delete(key string)

	// Flush drops everything, used after bulk imports.
	Flush()
}
