package access

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheConfig holds Redis connection settings for the shared
// read cache.
type RedisCacheConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// RedisCache shares read results between operator console processes.
// Redis failures degrade to cache misses; the access layer must stay
// usable when nothing but the local store is reachable.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewRedisCache(cfg RedisCacheConfig, ttl time.Duration, log *slog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{rdb: rdb, ttl: ttl, log: log}, nil
}

func cacheKey(family string) string {
	return fmt.Sprintf("campusadmin:cache:%s", family)
}

func (c *RedisCache) Get(ctx context.Context, family string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, cacheKey(family)).Bytes()
	if err == redis.Nil {
		cacheMisses.WithLabelValues(family).Inc()
		return nil, false
	}
	if err != nil {
		c.log.Warn("Redis cache read failed", "family", family, "error", err)
		cacheMisses.WithLabelValues(family).Inc()
		return nil, false
	}
	cacheHits.WithLabelValues(family).Inc()
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, family string, payload []byte) {
	if err := c.rdb.Set(ctx, cacheKey(family), payload, c.ttl).Err(); err != nil {
		c.log.Warn("Redis cache write failed", "family", family, "error", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, family string) {
	if err := c.rdb.Del(ctx, cacheKey(family)).Err(); err != nil {
		c.log.Warn("Redis cache invalidation failed", "family", family, "error", err)
	}
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
