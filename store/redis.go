package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "legalbridge"

// RedisBackend stores values in redis under legalbridge:<namespace>:<key>
type RedisBackend struct {
	client *redis.Client
}

// NewRedisClient creates a redis client for the given address
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
}

// NewRedisBackend wraps a redis client
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

// Ping tests the redis connection
func (r *RedisBackend) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func redisKey(namespace, key string) string {
	return redisPrefix + ":" + namespace + ":" + key
}

// Get retrieves a value, a missing key is reported with ok false
func (r *RedisBackend) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, redisKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Put sets a value without expiration
func (r *RedisBackend) Put(ctx context.Context, namespace, key string, value []byte) error {
	return r.client.Set(ctx, redisKey(namespace, key), value, 0).Err()
}

// Delete removes a value
func (r *RedisBackend) Delete(ctx context.Context, namespace, key string) error {
	return r.client.Del(ctx, redisKey(namespace, key)).Err()
}
