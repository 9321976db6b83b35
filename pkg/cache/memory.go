package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"multibagger-scanner/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps JSON-encoded values in process memory. Useful for single-instance
// deployments without Redis and for tests that need real expiry.
type MemoryCache struct {
	store *gocache.Cache
	log   *logger.Logger
}

// NewMemoryCache creates an in-memory cache that sweeps expired entries every cleanupInterval.
func NewMemoryCache(cleanupInterval time.Duration, log *logger.Logger) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(DefaultTTL, cleanupInterval),
		log:   log,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest any) bool {
	raw, ok := c.store.Get(key)
	if !ok {
		return false
	}
	data, ok := raw.([]byte)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.log.WarnContext(ctx, "Cached value could not be decoded, treating as miss", logger.StringField("key", key), logger.ErrorField(err))
		return false
	}
	return true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.WarnContext(ctx, "Failed to encode value for cache", logger.StringField("key", key), logger.ErrorField(err))
		return false
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.store.Set(key, data, ttl)
	return true
}

func (c *MemoryCache) Delete(_ context.Context, key string) bool {
	c.store.Delete(key)
	return true
}

func (c *MemoryCache) ClearByPrefix(_ context.Context, prefix string) int {
	removed := 0
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
			removed++
		}
	}
	return removed
}
