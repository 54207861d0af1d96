// Package cache provides a Redis-backed performance cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/snapquiz/internal/logger"
	"github.com/abhisek/snapquiz/internal/performance"
)

// DefaultTTL bounds how stale a cached dashboard can get.
const DefaultTTL = 5 * time.Minute

const keyPrefix = "snapquiz:perf:"

// Config holds connection settings.
type Config struct {
	Addr string
	TTL  time.Duration
}

// ConfigFromEnv reads SNAPQUIZ_REDIS_ADDR and SNAPQUIZ_CACHE_TTL. An empty
// Addr means caching is disabled.
func ConfigFromEnv() Config {
	cfg := Config{
		Addr: strings.TrimSpace(os.Getenv("SNAPQUIZ_REDIS_ADDR")),
		TTL:  DefaultTTL,
	}
	if d, err := time.ParseDuration(os.Getenv("SNAPQUIZ_CACHE_TTL")); err == nil && d > 0 {
		cfg.TTL = d
	}
	return cfg
}

// RedisCache implements performance.Cache on Redis.
type RedisCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

var _ performance.Cache = (*RedisCache)(nil)

// NewRedisCache connects and pings the server.
func NewRedisCache(ctx context.Context, cfg Config, log *logger.Logger) (*RedisCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{
		log: log.With("service", "PerformanceCache"),
		rdb: rdb,
		ttl: cfg.TTL,
	}, nil
}

func key(userID string) string { return keyPrefix + userID }

func (c *RedisCache) Get(ctx context.Context, userID string) (*performance.Performance, error) {
	raw, err := c.rdb.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

func (c *RedisCache) Set(ctx context.Context, userID string, p *performance.Performance) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(userID), raw, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, key(userID)).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

func decode(raw []byte) (*performance.Performance, error) {
	var p performance.Performance
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode cached performance: %w", err)
	}
	return &p, nil
}
