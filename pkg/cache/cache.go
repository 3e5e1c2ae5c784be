package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL applies when Set is called without an expiration.
const DefaultTTL = time.Hour

// Cache is the JSON facade over a Store. It never reports failures to the
// caller: errors are logged and a read failure is a miss.
type Cache struct {
	store      Store
	prefix     string
	defaultTTL time.Duration
	log        *zap.Logger
}

func New(store Store, prefix string, defaultTTL time.Duration, log *zap.Logger) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		store:      store,
		prefix:     prefix,
		defaultTTL: defaultTTL,
		log:        log.With(zap.String("component", "cache")),
	}
}

// Get decodes the value stored under key into dest and reports whether it
// was found. Undecodable entries are evicted.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	raw, err := c.store.Get(ctx, c.prefix+key)
	if errors.Is(err, ErrMiss) {
		c.log.Debug("Cache miss", zap.String("key", key))
		return false
	}
	if err != nil {
		c.log.Warn("Failed to read cache entry", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.log.Warn("Failed to decode cache entry, evicting",
			zap.String("key", key),
			zap.Error(err),
		)
		if err := c.store.Del(ctx, c.prefix+key); err != nil {
			c.log.Warn("Failed to evict cache entry", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	c.log.Debug("Cache hit", zap.String("key", key))
	return true
}

// Set stores value as JSON. A non-positive ttl uses the default.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.store.Set(ctx, c.prefix+key, string(data), ttl); err != nil {
		c.log.Warn("Failed to write cache entry",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
			zap.Error(err),
		)
	}
}

func (c *Cache) Remove(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}

	if err := c.store.Del(ctx, full...); err != nil {
		c.log.Warn("Failed to remove cache entries", zap.Strings("keys", keys), zap.Error(err))
	}
}

// RemoveByPattern deletes every key matching the glob pattern and returns
// how many were removed.
func (c *Cache) RemoveByPattern(ctx context.Context, pattern string) int {
	keys, err := c.store.Keys(ctx, c.prefix+pattern)
	if err != nil {
		c.log.Warn("Failed to list cache keys", zap.String("pattern", pattern), zap.Error(err))
		return 0
	}
	if len(keys) == 0 {
		return 0
	}

	if err := c.store.Del(ctx, keys...); err != nil {
		c.log.Warn("Failed to remove cache entries by pattern",
			zap.String("pattern", pattern),
			zap.Int("matched", len(keys)),
			zap.Error(err),
		)
		return 0
	}

	c.log.Debug("Cache entries removed by pattern",
		zap.String("pattern", pattern),
		zap.Int("removed", len(keys)),
	)
	return len(keys)
}

func (c *Cache) Close() error {
	return c.store.Close()
}
