// Package redis provides the key-value store backing the read-through cache.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/threads-backend/internal/config"
)

// NewClient creates a Redis client from RedisConfig and pings the server
// so that a misconfigured URL fails at startup.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Store is a string key-value store with per-key expiry.
type Store struct {
	client goredis.UniversalClient
}

// NewStore wraps client.
func NewStore(client goredis.UniversalClient) *Store {
	return &Store{client: client}
}

// Get returns the value stored under key. A missing or expired key is
// reported with ok=false and a nil error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// SetWithExpiry stores value under key for ttl, replacing any previous value.
func (s *Store) SetWithExpiry(ctx context.Context, key string, ttl time.Duration, value string) error {
	if err := s.client.SetEx(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis setex %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity. Used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connections.
func (s *Store) Close() error {
	return s.client.Close()
}
