package featureflag

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Source loads the live flag value for a key, typically from the database.
type Source interface {
	Lookup(ctx context.Context, key string) (string, error)
}

// Cache memoizes feature-flag lookups with a TTL and falls back to a static
// table when the source fails or has no value. Constructed once per process
// and passed by reference to consumers; no package-level state.
type Cache struct {
	source   Source
	store    *cache.Cache
	fallback map[string]string
}

func NewCache(source Source, ttl time.Duration, fallback map[string]string) *Cache {
	if fallback == nil {
		fallback = map[string]string{}
	}
	return &Cache{
		source:   source,
		store:    cache.New(ttl, 2*ttl),
		fallback: fallback,
	}
}

// Get returns the flag value for key: memoized value if fresh, otherwise a
// source lookup, otherwise the static fallback (empty string when absent).
func (c *Cache) Get(ctx context.Context, key string) string {
	if v, found := c.store.Get(key); found {
		return v.(string)
	}

	if c.source != nil {
		if v, err := c.source.Lookup(ctx, key); err == nil && v != "" {
			c.store.Set(key, v, cache.DefaultExpiration)
			return v
		}
	}

	return c.fallback[key]
}

// Invalidate drops all memoized values; the next Get per key hits the source.
func (c *Cache) Invalidate() {
	c.store.Flush()
}
