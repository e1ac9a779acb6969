package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"github.com/goccy/go-json"
)

// Accessor reads and writes JSON snapshots through a Store. Cache failures
// never fail the caller: they are logged and treated as a miss or a no-op.
type Accessor struct {
	store  Store
	ttl    time.Duration
	logger logging.Logger
}

func NewAccessor(store Store, ttl time.Duration, logger logging.Logger) *Accessor {
	return &Accessor{store: store, ttl: ttl, logger: logger.With("module", "cache")}
}

// Read decodes the snapshot under key into dst and reports a hit. A payload
// that does not decode is deleted and reported as a miss.
func (a *Accessor) Read(ctx context.Context, key string, dst any) bool {
	b, err := a.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			a.logger.Warn(ctx, "cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(b, dst); err != nil {
		a.logger.Warn(ctx, "corrupt cache entry dropped", "key", key, "error", err)
		if err := a.store.Delete(ctx, key); err != nil {
			a.logger.Warn(ctx, "cache delete failed", "key", key, "error", err)
		}
		return false
	}

	a.logger.Debug(ctx, "cache hit", "key", key)
	return true
}

// Write stores v under key with the accessor TTL.
func (a *Accessor) Write(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		a.logger.Warn(ctx, "cache encode failed", "key", key, "error", err)
		return
	}
	if err := a.store.Set(ctx, key, b, a.ttl); err != nil {
		a.logger.Warn(ctx, "cache write failed", "key", key, "error", err)
	}
}

// Invalidate deletes keys synchronously. The error is returned so callers
// can log it against the mutation that caused it.
func (a *Accessor) Invalidate(ctx context.Context, keys ...string) error {
	return a.store.Delete(ctx, keys...)
}

// Ping reports whether the underlying store is reachable.
func (a *Accessor) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// ReadThrough returns the snapshot under key or, on a miss, loads it,
// stores it and returns it. Load errors are returned and nothing is cached.
func ReadThrough[T any](ctx context.Context, a *Accessor, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if a.Read(ctx, key, &cached) {
		return cached, nil
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	a.Write(ctx, key, v)
	return v, nil
}
