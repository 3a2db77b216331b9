package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds configuration for a Redis-backed snapshot store.
type RedisConfig struct {
	// Redis client for storage.
	Redis redis.UniversalClient

	// KeyPrefix namespaces this store's keys (defaults to
	// "neuraxle:checkpoint").
	KeyPrefix string

	// TTL is how long snapshots live. Zero means no expiry.
	TTL time.Duration

	// Timeout bounds each Redis operation (defaults to 500ms).
	Timeout time.Duration
}

// RedisStore persists snapshots in Redis so checkpoints survive process
// restarts and can be shared between instances.
type RedisStore struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	timeout time.Duration
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(config RedisConfig) (*RedisStore, error) {
	if config.Redis == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = "neuraxle:checkpoint"
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}

	return &RedisStore{
		client:  config.Redis,
		prefix:  prefix,
		ttl:     config.TTL,
		timeout: timeout,
	}, nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

// Save writes a snapshot.
func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Load reads a snapshot. Returns ErrNotFound if the key is absent.
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

// Exists reports whether a snapshot exists.
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %q: %w", key, err)
	}
	return n > 0, nil
}

// Delete removes a snapshot.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
