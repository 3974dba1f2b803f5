package fetch

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gibbsgresge/CrisisEventSite/config"
)

// Cache is an optional Redis-backed store of extracted source text keyed by
// URL. A nil *Cache is valid and disables caching.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache connects to Redis per config. Returns nil (no cache) when the
// cache is disabled.
func NewCache(ctx context.Context, cfg config.CacheConfig) (*Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed (%s:%s): %w", cfg.Host, cfg.Port, err)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &Cache{rdb: rdb, ttl: ttl}, nil
}

func cacheKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return "source:" + hex.EncodeToString(sum[:])
}

// Get returns the cached text for url, or "" when absent or on error.
func (c *Cache) Get(ctx context.Context, url string) string {
	if c == nil {
		return ""
	}
	v, err := c.rdb.Get(ctx, cacheKey(url)).Result()
	if err != nil {
		return ""
	}
	return v
}

// Put stores text for url. Errors are swallowed: the cache is best-effort
// and never fails a fetch.
func (c *Cache) Put(ctx context.Context, url, text string) {
	if c == nil || text == "" {
		return
	}
	_ = c.rdb.Set(ctx, cacheKey(url), text, c.ttl).Err()
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
