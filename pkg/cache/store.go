// Package cache is the advisory key-value cache in front of Postgres and the
// movie provider. Values are JSON strings with an absolute expiration.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by a Store when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is a string key-value backend with per-entry expiration.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// Keys lists live keys matching a glob pattern (*, ?, [..]).
	Keys(ctx context.Context, pattern string) ([]string, error)
	Close() error
}
