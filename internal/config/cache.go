package config

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheConfig defines the gateway's Redis read cache: whether it is on,
// how long entries live, and where the backing Redis lives.  Every key
// is scoped under CACHE_ so the cache can move to a dedicated Redis
// without touching anything else.
//
//	CACHE_ENABLED        – "true" (default) or anything else to disable
//	CACHE_TTL            – entry lifetime, Go duration (default 30s)
//	CACHE_PREFIX         – key namespace (default "cinelux")
//	CACHE_REDIS_ADDR     – host:port (default localhost:6379)
//	CACHE_REDIS_PASSWORD – optional password
//	CACHE_REDIS_DB       – database number (default 0)
//	CACHE_REDIS_TLS      – "true" to enable TLS
type CacheConfig struct {
	Enabled  bool
	TTL      time.Duration
	Prefix   string
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// LoadCacheConfig reads the CACHE_* environment variables, falling back
// to the documented defaults.
func LoadCacheConfig() CacheConfig {
	db := 0
	if v := os.Getenv("CACHE_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}
	return CacheConfig{
		Enabled:  strings.EqualFold(getenv("CACHE_ENABLED", "true"), "true"),
		TTL:      parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:   getenv("CACHE_PREFIX", "cinelux"),
		Addr:     getenv("CACHE_REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("CACHE_REDIS_PASSWORD"),
		DB:       db,
		TLS:      strings.EqualFold(os.Getenv("CACHE_REDIS_TLS"), "true"),
	}
}

// Connect dials the configured Redis.  Returns nil when the cache is
// disabled or the server is unreachable; callers treat nil as "caching
// off" and run uncached.
func (c CacheConfig) Connect() *redis.Client {
	if !c.Enabled {
		return nil
	}
	var tlsConf *tls.Config
	if c.TLS {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      c.Addr,
		Password:  c.Password,
		DB:        c.DB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
