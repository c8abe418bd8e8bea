// Command api runs the medical records sharing HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aarogyasaathi/medrecords-api/internal/api"
	"github.com/aarogyasaathi/medrecords-api/internal/infrastructure/config"
	"github.com/aarogyasaathi/medrecords-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/aarogyasaathi/medrecords-api/internal/infrastructure/db/redis"
	"github.com/aarogyasaathi/medrecords-api/internal/session"
	"github.com/aarogyasaathi/medrecords-api/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	reapInterval    = time.Hour
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to postgres")
	}
	defer pool.Close()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer rdb.Close()

	// Sessions live in process memory only; a restart logs everyone out.
	registry := session.NewRegistry(cfg.SessionTTL)
	go registry.Reap(ctx, reapInterval)

	e := api.NewRouter(pool, rdb, registry, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
