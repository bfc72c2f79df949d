package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window limiter shared by every server instance.
// Each window is one counter key that expires with the window.
type RedisRateLimiter struct {
	client   *redis.Client
	prefix   string
	limit    int
	interval time.Duration
	now      func() time.Time
}

var _ Limiter = (*RedisRateLimiter)(nil)

// NewRedisRateLimiter creates a RedisRateLimiter. An empty prefix defaults to "ratelimit".
func NewRedisRateLimiter(client *redis.Client, prefix string, limit int, interval time.Duration) *RedisRateLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisRateLimiter{
		client:   client,
		prefix:   prefix,
		limit:    limit,
		interval: interval,
		now:      time.Now,
	}
}

func (r *RedisRateLimiter) windowKey(key string, start time.Time) string {
	return fmt.Sprintf("%s:%s:%d", r.prefix, key, start.Unix())
}

// Allow increments the counter of the current window.
// Redis errors are returned together with allowed=true; callers decide whether to fail open.
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := r.now()
	start := now.Truncate(r.interval)
	k := r.windowKey(key, start)

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return true, 0, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, r.interval).Err(); err != nil {
			return true, 0, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	if n > int64(r.limit) {
		return false, start.Add(r.interval).Sub(now), nil
	}
	return true, 0, nil
}
