package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps session keys in Redis with a sliding TTL.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: "hqh:session:", ttl: ttlOrDefault(ttl)}
}

func (c *RedisCache) key(sessionID, key string) string {
	return fmt.Sprintf("%s%s:%s", c.prefix, sessionID, key)
}

func (c *RedisCache) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	if sessionID == "" {
		return "", false, ErrInvalidSession
	}
	val, err := c.client.Get(ctx, c.key(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	if err := c.client.Set(ctx, c.key(sessionID, key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) SetNX(ctx context.Context, sessionID, key, value string, ttl time.Duration) (bool, error) {
	if sessionID == "" {
		return false, ErrInvalidSession
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	ok, err := c.client.SetNX(ctx, c.key(sessionID, key), value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (c *RedisCache) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(sessionID, k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
