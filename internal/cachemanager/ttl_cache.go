// Package cachemanager provides the expiring key/value store used to avoid
// re-scanning scope directories on every query.
package cachemanager

import (
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/modekit/internal/log"
)

// Lifetimes for the caches layered over component discovery.
const (
	ScopeExpiration    = 5 * time.Minute
	BuiltinExpiration  = 10 * time.Minute
	ResolverExpiration = 5 * time.Minute
)

type entry struct {
	value     any
	timestamp time.Time
}

// Stats describes the live contents of a TTLCache.
type Stats struct {
	Size      int
	TTL       time.Duration
	OldestAge time.Duration
	NewestAge time.Duration
}

// TTLCache is a flat expiring map with one TTL for the whole instance.
// There is no background janitor: expired entries are evicted only by Get
// (and the methods built on it) or by Cleanup.
type TTLCache struct {
	useCase string
	ttl     time.Duration
	cache   *gocache.Cache
}

// NewTTLCache creates a cache whose entries expire ttl after they are set.
// A ttl <= 0 disables expiry.
func NewTTLCache(useCase string, ttl time.Duration) *TTLCache {
	expiration := ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
	}
	return &TTLCache{
		useCase: useCase,
		ttl:     ttl,
		cache:   gocache.New(expiration, 0),
	}
}

// TTL returns the configured time-to-live.
func (c *TTLCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the value stored under key. An expired entry is treated as
// absent and evicted.
func (c *TTLCache) Get(key string) (any, bool) {
	raw, found := c.cache.Get(key)
	if !found {
		// go-cache leaves expired items in place until DeleteExpired
		c.cache.Delete(key)
		log.Debug(log.CatCache, "cache miss", "cache", c.useCase, "key", key)
		return nil, false
	}

	e, ok := raw.(entry)
	if !ok {
		log.Error(log.CatCache, "unexpected cache entry type", "cache", c.useCase, "key", key)
		return nil, false
	}

	log.Debug(log.CatCache, "cache hit", "cache", c.useCase, "key", key)
	return e.value, true
}

// GetAs is a typed Get. A value of the wrong type is reported as a miss.
func GetAs[T any](c *TTLCache, key string) (T, bool) {
	var zero T

	raw, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase, "key", key)
		return zero, false
	}
	return v, true
}

// Set stores value under key, stamping it with the current time.
func (c *TTLCache) Set(key string, value any) {
	c.cache.Set(key, entry{value: value, timestamp: time.Now()}, gocache.DefaultExpiration)
}

// Delete removes key.
func (c *TTLCache) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes every entry.
func (c *TTLCache) Clear() {
	c.cache.Flush()
}

// Has reports whether key holds a live entry.
func (c *TTLCache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Keys returns the keys of all live entries in sorted order.
func (c *TTLCache) Keys() []string {
	items := c.cache.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InvalidatePattern removes every key containing substr and returns how many
// were removed. Matching is plain substring containment, not prefix or regex.
func (c *TTLCache) InvalidatePattern(substr string) int {
	removed := 0
	for k := range c.cache.Items() {
		if strings.Contains(k, substr) {
			c.cache.Delete(k)
			removed++
		}
	}
	if removed > 0 {
		log.Debug(log.CatCache, "invalidated keys", "cache", c.useCase, "pattern", substr, "count", removed)
	}
	return removed
}

// Cleanup evicts all expired entries and returns the number removed.
func (c *TTLCache) Cleanup() int {
	before := c.cache.ItemCount()
	c.cache.DeleteExpired()
	removed := before - c.cache.ItemCount()
	if removed < 0 {
		removed = 0
	}
	return removed
}

// Stats reports size, TTL and the ages of the oldest and newest live entries.
func (c *TTLCache) Stats() Stats {
	stats := Stats{TTL: c.ttl}

	now := time.Now()
	var oldest, newest time.Time
	for _, item := range c.cache.Items() {
		e, ok := item.Object.(entry)
		if !ok {
			continue
		}
		stats.Size++
		if oldest.IsZero() || e.timestamp.Before(oldest) {
			oldest = e.timestamp
		}
		if newest.IsZero() || e.timestamp.After(newest) {
			newest = e.timestamp
		}
	}
	if stats.Size > 0 {
		stats.OldestAge = now.Sub(oldest)
		stats.NewestAge = now.Sub(newest)
	}
	return stats
}
