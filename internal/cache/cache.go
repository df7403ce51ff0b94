package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stwalsh4118/estate/api/internal/config"
	"github.com/stwalsh4118/estate/api/internal/models"
)

// QueryCache memoizes page results by QueryKey.
type QueryCache interface {
	// Get returns the cached result and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) (*models.PageResult, bool, error)

	// Set stores result under key for the cache's TTL.
	Set(ctx context.Context, key string, result *models.PageResult) error

	// Ping reports whether the cache backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}

// RedisCache is a QueryCache stored in Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis client from cfg. The connection is lazy; call Ping to verify it.
func NewRedisCache(cfg config.CacheConfig) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
	})
	return NewRedisCacheWithClient(client, cfg.TTL)
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get looks up key and decodes the stored result.
func (c *RedisCache) Get(ctx context.Context, key string) (*models.PageResult, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result models.PageResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return &result, true, nil
}

// Set encodes result and stores it with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, result *models.PageResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop is a QueryCache that never stores anything. It is used when caching is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string) (*models.PageResult, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, *models.PageResult) error         { return nil }
func (Noop) Ping(context.Context) error                                    { return nil }
func (Noop) Close() error                                                  { return nil }
