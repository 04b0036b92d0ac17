// Package rediscache adapts Redis to the domain cache port.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

// RedisCache implements domain.Cache on top of go-redis. Missing keys are
// reported as domain.ErrCacheMiss; every other failure is wrapped with the
// operation and key.
type RedisCache struct {
	client redis.UniversalClient
}

var _ domain.Cache = (*RedisCache)(nil)

// NewRedisCache expects a connected client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func translate(op, key string, err error) error {
	if errors.Is(err, redis.Nil) {
		return domain.ErrCacheMiss
	}
	return fmt.Errorf("redis %s %s: %w", op, key, err)
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", translate("get", key, err)
	}
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return translate("set", key, err)
	}
	return nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// HGetAll returns an empty map when the key does not exist.
func (r *RedisCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	val, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]string{}, nil
		}
		return nil, translate("hgetall", key, err)
	}
	return val, nil
}

func (r *RedisCache) HSet(ctx context.Context, key string, field string, value string) error {
	if err := r.client.HSet(ctx, key, field, value).Err(); err != nil {
		return translate("hset", key, err)
	}
	return nil
}

func (r *RedisCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if err := r.client.Expire(ctx, key, expiration).Err(); err != nil {
		return translate("expire", key, err)
	}
	return nil
}
