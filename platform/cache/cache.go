// Package cache provides a small JSON cache over Redis.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mediguide/platform/config"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-encoded values under string keys.
type Cache interface {
	// GetJSON decodes the value at key into dst. It reports false on a miss.
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	// SetJSON encodes value and stores it at key for ttl.
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// RedisCache implements Cache on a go-redis client.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis connects to the Redis instance at cfg.GetRedisURL() and pings it.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisCache(client), nil
}

// NewRedisCache wraps an existing client. Keys are namespaced under "mediguide:".
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client, prefix: "mediguide:"}
}

func (c *RedisCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = c.prefix + key
	}
	return c.client.Del(ctx, prefixed...).Err()
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop is used when Redis is not configured: every read misses.
type Noop struct{}

func (Noop) GetJSON(context.Context, string, any) (bool, error) {
	return false, nil
}

func (Noop) SetJSON(context.Context, string, any, time.Duration) error {
	return nil
}

func (Noop) Delete(context.Context, ...string) error {
	return nil
}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = Noop{}
)
