package cachemanager

import (
	"github.com/zjrosen/modekit/internal/log"
)

// ReadThroughCache serves values from a Cache and falls back to fn on a miss,
// storing the loaded value for subsequent reads.
type ReadThroughCache[V any, I any] struct {
	cache           Cache
	fn              func(input I) (V, error)
	shouldSkipCache bool
}

func NewReadThroughCache[V any, I any](
	cache Cache,
	fn func(input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[V, I] {
	return &ReadThroughCache[V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

// Get returns the cached value for key, loading it with input on a miss.
// Load errors are returned as-is and nothing is cached.
func (r *ReadThroughCache[V, I]) Get(key string, input I) (V, error) {
	if r.shouldSkipCache {
		return r.fn(input)
	}

	if raw, ok := r.cache.Get(key); ok {
		if value, ok := raw.(V); ok {
			return value, nil
		}
		log.Error(log.CatCache, "wrong type assertion when getting value", "key", key)
	}

	value, err := r.fn(input)
	if err != nil {
		return value, err
	}

	r.cache.Set(key, value)

	return value, nil
}
