package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is an in-memory TTL cache. Nothing is written to disk.
type Cache struct {
	inner *gocache.Cache
}

// New creates an empty cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{inner: gocache.New(ttl, 2*ttl)}
}

// GetBool retrieves a bool value by key. Values of other types are misses.
func (c *Cache) GetBool(key string) (bool, bool) {
	val, found := c.inner.Get(key)
	if !found {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Set stores a value with default expiration.
func (c *Cache) Set(key string, val any) {
	c.inner.Set(key, val, gocache.DefaultExpiration)
}
