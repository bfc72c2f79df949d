// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"shop_backend/internal/shared/ratelimiter"
)

// NewRateLimiter creates the request limiter.
// If Redis is available, the limit is shared across instances.
// Otherwise, it falls back to an in-process limiter.
func NewRateLimiter(rdb *redis.Client, perMinute int) ratelimiter.Limiter {
	if rdb != nil {
		return ratelimiter.NewRedisRateLimiter(rdb, "ratelimit", perMinute, time.Minute)
	}
	return ratelimiter.NewRateLimiter(perMinute, time.Minute)
}
