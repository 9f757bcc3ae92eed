package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "formcheck:"

// NewRedisKV connects to Redis and returns a KV namespaced under a service
// prefix. The connection is verified with a ping before use.
func NewRedisKV(ctx context.Context, addr, password string) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisKV{client: client}, nil
}

// RedisKV implements KV on a shared Redis instance.
type RedisKV struct {
	client *redis.Client
}

// Get returns the stored value for key.
func (s *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("get state key %q: %w", key, err)
	}
	return value, nil
}

// Set overwrites the value stored under key with no expiry.
func (s *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set state key %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is a no-op.
func (s *RedisKV) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete state key %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisKV) Close() error {
	return s.client.Close()
}
