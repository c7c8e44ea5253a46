package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key does not exist (or has expired).
var ErrMiss = errors.New("cache: key not found")

// Store is the shared cache contract: string values, explicit TTL on first
// write, KeepTTL on updates. This is the only state shared across process
// instances, so implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	// Set writes value with the given expiry. A zero ttl stores the key
	// without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetKeepTTL updates value while preserving whatever expiry is already
	// in flight on the key.
	SetKeepTTL(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// RedisStore backs Store with a Redis connection.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient dials Redis and verifies the connection before returning.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) SetKeepTTL(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, redis.KeepTTL).Err()
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	return s.client.Keys(ctx, pattern).Result()
}
