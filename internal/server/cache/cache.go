// Package cache implements the cache-aside layer for category reads: a
// key-value Store abstraction with Redis and in-process LRU backends, the
// canonical key scheme, and an Accessor that tolerates an unavailable or
// corrupted cache.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is a byte-oriented key-value cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// CategoryListKey is the key of a user's category list snapshot.
func CategoryListKey(userID string) string {
	return "category:" + userID
}

// CategoryKey is the key of one category snapshot (with its papers).
func CategoryKey(userID, categoryID string) string {
	return "user:" + userID + ":category:" + categoryID
}
