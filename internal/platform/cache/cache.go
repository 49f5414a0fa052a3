// Package cache provides a small byte-oriented cache seam with memory and redis backends.
// Analyzer services memoize computed summaries here, keyed by project, subject,
// parameters and the project's store version, so invalidation is implicit: a data
// change bumps the version and old keys simply age out.
package cache

import (
	"context"
	"time"

	"callsift/internal/platform/logger"
)

// Cache is the minimal surface services depend on.
// Get returns (nil, false, nil) on miss; backend failures surface as errors
// only when they are not simple misses, so callers can treat the cache as
// best-effort and fall through to recompute.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Config controls which backend Open selects
type Config struct {
	// RedisAddr selects the redis backend when non-empty ("host:port")
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DefaultTTL applies when Set is called with ttl <= 0
	DefaultTTL time.Duration
}

// Open returns a redis-backed cache when cfg.RedisAddr is set, an in-process
// memory cache otherwise. It never fails open: a redis dial error is returned
// so the operator sees it at boot instead of silently losing memoization.
func Open(ctx context.Context, cfg Config, log logger.Logger) (Cache, error) {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 10 * time.Minute
	}
	if cfg.RedisAddr == "" {
		log.Info().Msg("cache: using in-process memory backend")
		return NewMemory(cfg.DefaultTTL), nil
	}
	return openRedis(ctx, cfg, log)
}
