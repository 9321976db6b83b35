package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"multibagger-scanner/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const scanBatchSize = 100

// RedisCache stores JSON-encoded values in Redis. A nil client turns it into a pass-through.
type RedisCache struct {
	client redis.Cmdable
	log    *logger.Logger
}

// NewRedisCache creates a Redis-backed cache. client may be nil when Redis could not be reached.
func NewRedisCache(client redis.Cmdable, log *logger.Logger) *RedisCache {
	return &RedisCache{client: client, log: log}
}

func (c *RedisCache) available() bool {
	return c != nil && c.client != nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) bool {
	if !c.available() {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WarnContext(ctx, "Redis GET failed, treating as miss", logger.StringField("key", key), logger.ErrorField(err))
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.WarnContext(ctx, "Cached value could not be decoded, treating as miss", logger.StringField("key", key), logger.ErrorField(err))
		return false
	}
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if !c.available() {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.log.WarnContext(ctx, "Failed to encode value for cache", logger.StringField("key", key), logger.ErrorField(err))
		return false
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if err := c.client.Set(ctx, key, string(data), ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "Redis SET failed", logger.StringField("key", key), logger.ErrorField(err))
		return false
	}
	c.log.DebugContext(ctx, "Cache set", logger.StringField("key", key), logger.Field("ttl", ttl))
	return true
}

func (c *RedisCache) Delete(ctx context.Context, key string) bool {
	if !c.available() {
		return false
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.WarnContext(ctx, "Redis DEL failed", logger.StringField("key", key), logger.ErrorField(err))
		return false
	}
	return true
}

func (c *RedisCache) ClearByPrefix(ctx context.Context, prefix string) int {
	if !c.available() {
		return 0
	}

	var (
		cursor  uint64
		removed int
		pattern = prefix + "*"
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			c.log.WarnContext(ctx, "Redis SCAN failed", logger.StringField("pattern", pattern), logger.ErrorField(err))
			return removed
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.log.WarnContext(ctx, "Redis DEL failed", logger.StringField("pattern", pattern), logger.ErrorField(err))
				return removed
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.log.InfoContext(ctx, "Cache cleared", logger.StringField("pattern", pattern), logger.IntField("deleted", removed))
	return removed
}
