// Package cache stores search results in Redis, keyed by the request digest.
//
// Searches are deterministic, so a cached path, including the empty path of an
// unreachable end, stays valid for as long as the entry lives.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PathCache is the lookup used by the HTTP boundary.
type PathCache interface {
	Get(ctx context.Context, key string) ([]int, bool, error)
	Set(ctx context.Context, key string, path []int) error
	Ping(ctx context.Context) error
}

// RedisCache is a PathCache backed by Redis. Safe for concurrent use.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a cache. A zero ttl stores entries without expiry.
func NewRedisCache(opts *redis.Options, prefix string, ttl time.Duration) (*RedisCache, error) {
	if prefix == "" {
		return nil, fmt.Errorf("cache prefix cannot be empty")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("cache ttl cannot be negative: %s", ttl)
	}
	return &RedisCache{
		rdb:    redis.NewClient(opts),
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

// PathKey returns the Redis key for a request digest.
func (c *RedisCache) PathKey(key string) string {
	return fmt.Sprintf("%s:path:%s", c.prefix, key)
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get returns the cached path for key. A miss is (nil, false, nil).
func (c *RedisCache) Get(ctx context.Context, key string) ([]int, bool, error) {
	data, err := c.rdb.Get(ctx, c.PathKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read path from Redis: %w", err)
	}

	var path []int
	if err := json.Unmarshal(data, &path); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached path: %w", err)
	}
	if len(path)%2 != 0 {
		return nil, false, fmt.Errorf("cached path under %s has odd length %d", key, len(path))
	}
	if path == nil {
		path = []int{}
	}
	return path, true, nil
}

// Set stores path under key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, path []int) error {
	if path == nil {
		path = []int{}
	}
	data, err := json.Marshal(path)
	if err != nil {
		return fmt.Errorf("failed to encode path: %w", err)
	}
	if err := c.rdb.Set(ctx, c.PathKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write path to Redis: %w", err)
	}
	return nil
}
