package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"tasklane.app/server/common/id"
	"tasklane.app/server/common/logger"
	"tasklane.app/server/common/otel"
	"tasklane.app/server/core/config"
	"tasklane.app/server/core/db"
	"tasklane.app/server/internal/http/router"
	"tasklane.app/server/internal/queue"
	"tasklane.app/server/internal/service"
	"tasklane.app/server/internal/storage"
	"tasklane.app/server/internal/store"
)

const banner = `
 _____         _    _
|_   _|_ _ ___| | _| | __ _ _ __   ___
  | |/ _` + "`" + ` / __| |/ / |/ _` + "`" + ` | '_ \ / _ \
  | | (_| \__ \   <| | (_| | | | |  __/
  |_|\__,_|___/_|\_\_|\__,_|_| |_|\___|
`

func main() {
	fmt.Print(banner)

	cfg, err := config.Load(config.ServiceServer)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		slog.Error("failed to set up telemetry", "error", err)
		os.Exit(1)
	}
	if telemetry != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(shutdownCtx); err != nil {
				slog.Error("telemetry shutdown failed", "error", err)
			}
		}()
	}

	if err := id.Init(1); err != nil {
		slog.Error("failed to init id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.Connect(ctx, cfg.DB.URL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	redisOpts, err := redis.ParseURL(cfg.MailQueue.RedisURL)
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	objects, err := storage.NewS3Store(ctx, cfg.S3)
	if err != nil {
		slog.Error("failed to set up object storage", "error", err)
		os.Exit(1)
	}

	stores := store.New(database.Pool)
	services := service.New(service.Deps{
		Stores:    stores,
		Tx:        service.NewTxRunner(database),
		Objects:   objects,
		Mail:      queue.NewProducer(rdb, cfg.MailQueue.Stream),
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.SessionTTL,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.New(cfg, services),
	}

	go func() {
		slog.Info("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
