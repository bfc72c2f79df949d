package di

import (
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"shop_backend/internal/shared/ratelimiter"
)

func TestNewRateLimiter(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &ratelimiter.RateLimiter{}, NewRateLimiter(nil, 10), "falls back to in-process limiter")

	rdb, _ := redismock.NewClientMock()
	assert.IsType(t, &ratelimiter.RedisRateLimiter{}, NewRateLimiter(rdb, 10))
}

func TestLoadConfigFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		limit    string
		encoding string
		want     Config
	}{
		{"defaults", "", "", Config{RateLimitPerMinute: 120}},
		{"custom", "30", "bcrypt", Config{RateLimitPerMinute: 30, PasswordEncoding: "bcrypt"}},
		{"disabled", "0", "", Config{RateLimitPerMinute: 0}},
		{"invalid keeps default", "lots", "", Config{RateLimitPerMinute: 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RATE_LIMIT_PER_MINUTE", tt.limit)
			t.Setenv("PASSWORD_ENCODING", tt.encoding)

			assert.Equal(t, tt.want, LoadConfigFromEnv())
		})
	}
}
