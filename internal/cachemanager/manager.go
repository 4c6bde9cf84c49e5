package cachemanager

// Cache is the expiring key/value contract shared by scope stores and the
// resolver. Implementations never return errors.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	Clear()
	InvalidatePattern(substr string) int
}
