package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestCache creates a cache connected to a miniredis instance
func setupTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	c, err := NewRedisCache(&redis.Options{Addr: mr.Addr()}, "test", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c, mr
}

func TestNewRedisCache(t *testing.T) {
	t.Run("rejects empty prefix", func(t *testing.T) {
		_, err := NewRedisCache(&redis.Options{Addr: "localhost:6379"}, "", time.Minute)
		assert.ErrorContains(t, err, "prefix cannot be empty")
	})

	t.Run("rejects negative ttl", func(t *testing.T) {
		_, err := NewRedisCache(&redis.Options{Addr: "localhost:6379"}, "p", -time.Second)
		assert.ErrorContains(t, err, "ttl cannot be negative")
	})
}

func TestPing(t *testing.T) {
	c, _ := setupTestCache(t, time.Minute)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestSetGet(t *testing.T) {
	c, mr := setupTestCache(t, time.Minute)
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		path, ok, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, path)
	})

	t.Run("hit", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "abc", []int{0, 0, 1, 0}))
		assert.True(t, mr.Exists("test:path:abc"))

		path, ok, err := c.Get(ctx, "abc")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []int{0, 0, 1, 0}, path)
	})

	t.Run("unreachable is cached as empty", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "walled", nil))

		path, ok, err := c.Get(ctx, "walled")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NotNil(t, path)
		assert.Empty(t, path)
	})

	t.Run("expires", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", []int{1, 1}))
		mr.FastForward(2 * time.Minute)

		_, ok, err := c.Get(ctx, "short")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt entry", func(t *testing.T) {
		require.NoError(t, mr.Set("test:path:bad", "not json"))
		_, _, err := c.Get(ctx, "bad")
		assert.ErrorContains(t, err, "failed to decode cached path")

		require.NoError(t, mr.Set("test:path:odd", "[1,2,3]"))
		_, _, err = c.Get(ctx, "odd")
		assert.ErrorContains(t, err, "odd length")
	})
}

func TestGet_RedisDown(t *testing.T) {
	c, mr := setupTestCache(t, time.Minute)
	mr.Close()

	_, _, err := c.Get(context.Background(), "abc")
	assert.ErrorContains(t, err, "failed to read path from Redis")
}
