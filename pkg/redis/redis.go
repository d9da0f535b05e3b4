// Package redis provides an abstraction over the Redis client used as
// the short-lived login-state store. Keys expire on their own; the
// store holds nothing that must survive a restart.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore defines the key-value operations the authentication flow
// needs. Implementations must be safe for concurrent use.
type RedisStore interface {
	// Set stores value under key with the given expiration.
	Set(key string, value interface{}, expiration time.Duration) error

	// Get retrieves the value stored under key.
	Get(key string) ([]byte, error)

	// Delete removes key.
	Delete(key string) error
}

// RedisClient implements RedisStore on a go-redis client.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient connects to the Redis server at addr and verifies the
// connection with a PING.
func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return &RedisClient{client: rdb, ctx: ctx}, nil
}

func (r *RedisClient) Set(key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(r.ctx, key, value, expiration).Err()
}

func (r *RedisClient) Get(key string) ([]byte, error) {
	return r.client.Get(r.ctx, key).Bytes()
}

func (r *RedisClient) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}
