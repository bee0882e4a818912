package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func exhaust(t *testing.T, limiter RateLimiter, key string, limits Limits, allowed int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < allowed; i++ {
		ok, err := limiter.Allow(ctx, key, limits)
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i+1)
	}
	ok, err := limiter.Allow(ctx, key, limits)
	require.NoError(t, err)
	assert.False(t, ok, "request %d should be denied", allowed+1)
}

func TestMemoryRateLimiter_PerMinute(t *testing.T) {
	exhaust(t, NewMemoryRateLimiter(), "user:1", Limits{PerMinute: 3}, 3)
}

func TestMemoryRateLimiter_WindowSlides(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	exhaust(t, limiter, "user:1", Limits{PerMinute: 2}, 2)

	now = now.Add(61 * time.Second)
	ok, err := limiter.Allow(context.Background(), "user:1", Limits{PerMinute: 2})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryRateLimiter_KeysAreIndependentAndResettable(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	ctx := context.Background()
	limits := Limits{PerHour: 1}

	exhaust(t, limiter, "user:1", limits, 1)
	ok, _ := limiter.Allow(ctx, "user:2", limits)
	assert.True(t, ok)

	require.NoError(t, limiter.Reset(ctx, "user:1"))
	ok, _ = limiter.Allow(ctx, "user:1", limits)
	assert.True(t, ok)
}

func TestMemoryRateLimiter_ZeroLimitsAllowEverything(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	for i := 0; i < 50; i++ {
		ok, err := limiter.Allow(context.Background(), "k", Limits{})
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRedisRateLimiter_PerMinute(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	exhaust(t, limiter, "test-key-minute", Limits{PerMinute: 5}, 5)
}

func TestRedisRateLimiter_WindowSlides(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	exhaust(t, limiter, "test-key-slide", Limits{PerMinute: 2}, 2)

	now = now.Add(61 * time.Second)
	ok, err := limiter.Allow(context.Background(), "test-key-slide", Limits{PerMinute: 2})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisRateLimiter_KeysExpire(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)

	ok, err := limiter.Allow(context.Background(), "test-key-ttl", Limits{PerMinute: 1})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("ratelimit:test-key-ttl:1m0s"))

	mr.FastForward(2*time.Minute + time.Second)
	assert.False(t, mr.Exists("ratelimit:test-key-ttl:1m0s"))
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	exhaust(t, limiter, "test-key-reset", Limits{PerHour: 2}, 2)
	require.NoError(t, limiter.Reset(ctx, "test-key-reset"))

	ok, err := limiter.Allow(ctx, "test-key-reset", Limits{PerHour: 2})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisRateLimiter_ErrorsWhenRedisIsDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "test-key-down", Limits{PerMinute: 1})
	assert.Error(t, err)
}
