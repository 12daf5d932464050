package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platops/user-directory/internal/api"
	"github.com/platops/user-directory/internal/infrastructure/config"
	mongodb "github.com/platops/user-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/platops/user-directory/internal/infrastructure/db/redis"
	"github.com/platops/user-directory/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		lg.Fatal().Err(err).Msg("index bootstrap failed")
	}

	// Redis only backs the user read cache; run without it when unreachable.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		lg.Warn().Err(err).Msg("redis unavailable, user cache disabled")
		rdb = nil
	} else {
		defer func() {
			_ = rdb.Close()
		}()
	}

	e := api.NewRouter(db, rdb, cfg, lg)

	go func() {
		lg.Info().Str("port", cfg.Port).Msg("user directory listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("shutdown error")
	}
}
