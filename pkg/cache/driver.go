package cache

import (
	"time"

	"multibagger-scanner/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
	DriverNone   = "none"
)

// New builds the backend named by driver. Unknown drivers fall back to Redis, and a nil
// client gives a pass-through Redis cache.
func New(driver string, client *redis.Client, cleanupInterval time.Duration, log *logger.Logger) Cache {
	switch driver {
	case DriverMemory:
		return NewMemoryCache(cleanupInterval, log)
	case DriverNone:
		return NewNop()
	}
	if client == nil {
		return NewRedisCache(nil, log)
	}
	return NewRedisCache(client, log)
}
