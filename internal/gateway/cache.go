package gateway

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinelux-booking/internal/config"
)

// redisCmd is the slice of the Redis client the cache uses.  Tests
// substitute an in-memory fake.
type redisCmd interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache is a Redis-backed read cache for unauthenticated GET responses.
// Catalog and screening listings are fetched repeatedly while a user
// browses; caching them for a short TTL keeps the UI snappy without
// risking stale booking state (mutations never go through the cache,
// and authenticated reads bypass it entirely).
type Cache struct {
	rdb redisCmd
	cfg config.CacheConfig
	log *logrus.Entry
}

// NewCache wraps the Redis client with the cache policy.  Returns nil
// when caching is disabled or no client is available, which callers
// treat as "no cache".
func NewCache(rdb *redis.Client, cfg config.CacheConfig) *Cache {
	if rdb == nil || !cfg.Enabled {
		return nil
	}
	return newCache(rdb, cfg)
}

func newCache(rdb redisCmd, cfg config.CacheConfig) *Cache {
	return &Cache{
		rdb: rdb,
		cfg: cfg,
		log: logrus.WithField("component", "gateway.cache"),
	}
}

// key derives a stable, bounded-length cache key from the full URL.
func (c *Cache) key(url string) string {
	sum := sha1.Sum([]byte(url))
	return fmt.Sprintf("%s:get:%x", c.cfg.Prefix, sum)
}

// get returns the cached body for url, if any.  Redis errors are logged
// and reported as a miss; the cache never fails a request.
func (c *Cache) get(ctx context.Context, url string) ([]byte, bool) {
	body, err := c.rdb.Get(ctx, c.key(url)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.WithError(err).Debug("cache read failed")
		return nil, false
	}
	return body, true
}

// set stores body for url with the configured TTL.
func (c *Cache) set(ctx context.Context, url string, body []byte) {
	if err := c.rdb.Set(ctx, c.key(url), body, c.cfg.TTL).Err(); err != nil {
		c.log.WithError(err).Debug("cache write failed")
	}
}

// invalidate drops the entry for url.
func (c *Cache) invalidate(ctx context.Context, url string) {
	if err := c.rdb.Del(ctx, c.key(url)).Err(); err != nil {
		c.log.WithError(err).Debug("cache invalidate failed")
	}
}
