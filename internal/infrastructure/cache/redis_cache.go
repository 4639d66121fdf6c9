package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
)

const keyPrefix = "mortgage:result:"

// RedisResultCache implements port.ResultCache on Redis. Entries expire
// after the TTL passed to Set.
type RedisResultCache struct {
	client redis.UniversalClient
}

// NewRedisResultCache wraps an existing Redis client.
func NewRedisResultCache(client redis.UniversalClient) *RedisResultCache {
	return &RedisResultCache{client: client}
}

// NewRedisClient creates a client and verifies the server answers.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return client, nil
}

// Get returns the cached result for key. A missing key is not an error.
func (c *RedisResultCache) Get(ctx context.Context, key string) (model.SimulationResult, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.SimulationResult{}, false, nil
	}
	if err != nil {
		return model.SimulationResult{}, false, fmt.Errorf("redis get: %w", err)
	}

	res, err := decodeResult(data)
	if err != nil {
		return model.SimulationResult{}, false, err
	}
	return res, true, nil
}

// Set stores the result under key.
func (c *RedisResultCache) Set(ctx context.Context, key string, result model.SimulationResult, ttl time.Duration) error {
	data, err := encodeResult(result)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
