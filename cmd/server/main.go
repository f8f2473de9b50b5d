package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuna-app/cuna/internal/api"
	"github.com/cuna-app/cuna/internal/infrastructure/config"
	"github.com/cuna-app/cuna/internal/infrastructure/db/postgres"
	"github.com/cuna-app/cuna/internal/infrastructure/db/redis"
	"github.com/cuna-app/cuna/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LoggerLevel,
		Pretty: cfg.Branch != "main",
	})

	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("closing postgres pool")
		}
	}()

	if err = postgres.Bootstrap(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("postgres ready")

	rdb, err := redis.Connect(ctx, cfg.Redis.Addr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("closing redis client")
		}
	}()
	log.Info().Msg("redis ready")

	e := api.NewRouter(db, rdb, cfg, log)

	errCh := make(chan error, 1)
	go func() {
		if serr := e.Start(cfg.ListenAddr()); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
		}
	}()
	log.Info().Str("addr", cfg.ListenAddr()).Msg("http server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
