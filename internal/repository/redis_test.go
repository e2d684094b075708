package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	t.Run("WithinLimit", func(t *testing.T) {
		userID := int64(1)
		for i := 0; i < 3; i++ {
			allowed, err := limiter.CheckRateLimit(ctx, userID, 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	})

	t.Run("ExceedsLimit", func(t *testing.T) {
		userID := int64(2)
		for i := 0; i < 2; i++ {
			allowed, err := limiter.CheckRateLimit(ctx, userID, 2, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := limiter.CheckRateLimit(ctx, userID, 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("WindowExpires", func(t *testing.T) {
		userID := int64(3)
		allowed, err := limiter.CheckRateLimit(ctx, userID, 1, time.Second)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.CheckRateLimit(ctx, userID, 1, time.Second)
		require.NoError(t, err)
		assert.False(t, allowed)

		s.FastForward(2 * time.Second)

		allowed, err = limiter.CheckRateLimit(ctx, userID, 1, time.Second)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("NilClient", func(t *testing.T) {
		nilLimiter := NewRedisRateLimiter(nil)
		_, err := nilLimiter.CheckRateLimit(ctx, 1, 1, time.Minute)
		assert.Error(t, err)
	})
}
