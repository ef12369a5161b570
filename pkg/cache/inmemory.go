package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Cache interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	Flush()
}

type inMemoryCache struct {
	internal *gocache.Cache
}

// NewCache returns an in-memory Cache with the given default expiration and
// cleanup interval.
func NewCache(defaultExpiration, cleanupInterval time.Duration) Cache {
	return &inMemoryCache{
		internal: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *inMemoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.internal.Set(key, value, duration)
}

func (c *inMemoryCache) Get(key string) (interface{}, bool) {
	return c.internal.Get(key)
}

func (c *inMemoryCache) Delete(key string) {
	c.internal.Delete(key)
}

func (c *inMemoryCache) Flush() {
	c.internal.Flush()
}

// Typed returns the cached value for key if present and of type T.
func Typed[T any](c Cache, key string) (T, bool) {
	val, found := c.Get(key)
	if !found {
		var zero T
		return zero, false
	}
	typed, ok := val.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return typed, true
}
