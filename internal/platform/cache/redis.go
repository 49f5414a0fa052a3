package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"callsift/internal/platform/errors"
	"callsift/internal/platform/logger"
)

// redisCache adapts a go-redis client to the Cache seam
type redisCache struct {
	rdb        *redis.Client
	defaultTTL time.Duration
}

func openRedis(ctx context.Context, cfg Config, log logger.Logger) (Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrapf(err, errors.ErrorCodeUnavailable, "cache: redis ping %q", cfg.RedisAddr)
	}

	log.Info().Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB).Msg("cache: using redis backend")
	return &redisCache{rdb: rdb, defaultTTL: cfg.DefaultTTL}, nil
}

// Get implements Cache
func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrorCodeUnavailable, "cache: redis get")
	}
	return b, true, nil
}

// Set implements Cache
func (c *redisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrorCodeUnavailable, "cache: redis set")
	}
	return nil
}

// Delete implements Cache
func (c *redisCache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, errors.ErrorCodeUnavailable, "cache: redis del")
	}
	return nil
}

// Close implements Cache
func (c *redisCache) Close() error { return c.rdb.Close() }
