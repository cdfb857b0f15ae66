// Package cache implements a read-through (cache-aside) layer over a
// key-value store with per-entry expiry.
//
// Entries are never invalidated on write. A value read through Wrap may
// therefore lag the backing data by up to the TTL it was stored with.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/threads-backend/internal/metrics"
)

// Store is the key-value backend of the cache.
type Store interface {
	// Get returns the value stored under key; ok is false when the key is absent or expired.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// SetWithExpiry stores value under key, replacing any previous value, for ttl.
	SetWithExpiry(ctx context.Context, key string, ttl time.Duration, value string) error
}

// Layer is a read-through cache over a Store.
// It is safe for concurrent use.
type Layer struct {
	store Store
	log   *slog.Logger
	group *singleflight.Group
}

// Option configures a Layer.
type Option func(*Layer)

// WithSingleFlight collapses concurrent misses on the same key into a single
// fetch whose result is shared by all waiting callers. Without it every
// missing caller runs its own fetch and the last write wins.
//
// The shared fetch runs detached from the cancellation of the caller that
// started it, so one abandoned request does not fail the others.
func WithSingleFlight() Option {
	return func(l *Layer) {
		l.group = &singleflight.Group{}
	}
}

// New creates a Layer over store.
func New(store Store, log *slog.Logger, opts ...Option) *Layer {
	l := &Layer{
		store: store,
		log:   log.With("component", "cache"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wrap returns the value cached under key, or runs fetch, caches its result
// for ttl and returns it.
//
// A failed or corrupt cache read counts as a miss. A failed cache write is
// logged and the fetched value is still returned. Errors from fetch are
// returned as-is and nothing is cached.
func Wrap[T any](ctx context.Context, l *Layer, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := lookup[T](ctx, l, key); ok {
		return v, nil
	}

	if l.group == nil {
		return fill(ctx, l, key, ttl, fetch)
	}

	// The shared fetch outlives any single caller; each caller stops
	// waiting when its own ctx ends.
	ch := l.group.DoChan(key, func() (any, error) {
		return fill(context.WithoutCancel(ctx), l, key, ttl, fetch)
	})
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func lookup[T any](ctx context.Context, l *Layer, key string) (T, bool) {
	var zero T

	raw, ok, err := l.store.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues(metrics.CacheReadError).Inc()
		l.log.WarnContext(ctx, "cache read failed, falling back to fetch",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return zero, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
		return zero, false
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		metrics.CacheLookups.WithLabelValues(metrics.CacheCorrupt).Inc()
		l.log.WarnContext(ctx, "cached value is not decodable, refetching",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return zero, false
	}

	metrics.CacheLookups.WithLabelValues(metrics.CacheHit).Inc()
	return v, true
}

func fill[T any](ctx context.Context, l *Layer, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	start := time.Now()
	v, err := fetch(ctx)
	metrics.CacheFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		var zero T
		return zero, fmt.Errorf("fetch %s: %w", key, err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		l.log.ErrorContext(ctx, "encode value for cache",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return v, nil
	}

	if err := l.store.SetWithExpiry(ctx, key, ttl, string(raw)); err != nil {
		metrics.CacheLookups.WithLabelValues(metrics.CacheWriteError).Inc()
		l.log.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	return v, nil
}
