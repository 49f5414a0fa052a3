// @title         Callsift API
// @version       0.1.0
// @description   Event store and correlation endpoints for communication record analysis

package main

import (
	"context"
	"time"

	"callsift/internal/platform/cache"
	"callsift/internal/platform/config"
	"callsift/internal/platform/logger"
	phttp "callsift/internal/platform/net/http"
	"callsift/internal/platform/store"

	"callsift/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")    // pgCfg lives under SERVICE_PGSQL_*
	cacheCfg := root.Prefix("SERVICE_REDIS_") // cacheCfg lives under SERVICE_REDIS_*

	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres)
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// cache backend, in-process map unless redis is configured
	ch, err := cache.Open(context.Background(), cache.Config{
		RedisAddr:     cacheCfg.MayString("ADDR", ""),
		RedisPassword: cacheCfg.MayString("PASSWORD", ""),
		RedisDB:       cacheCfg.MayInt("DB", 0),
		DefaultTTL:    cacheCfg.MayDuration("TTL", 10*time.Minute),
	}, *l)
	if err != nil {
		l.Panic().Err(err).Msg("cache.Open failed")
	}
	defer func() {
		if err := ch.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close cache")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	events := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Cache:          ch,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// bring the schema up before serving traffic
	if err := events.Service().EnsureSchema(context.Background()); err != nil {
		l.Panic().Err(err).Msg("schema setup failed")
	}

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
