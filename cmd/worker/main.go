package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"tasklane.app/server/common/logger"
	"tasklane.app/server/common/otel"
	"tasklane.app/server/core/config"
	"tasklane.app/server/internal/queue"
	"tasklane.app/server/internal/worker"
)

func main() {
	cfg, err := config.Load(config.ServiceWorker)
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

	redisOpts, err := redis.ParseURL(cfg.MailQueue.RedisURL)
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	w := worker.New(worker.NewResendSender(cfg.Resend))
	consumer := queue.NewConsumer(rdb, cfg.MailQueue, w.Handle)

	slog.Info("mail worker starting", "stream", cfg.MailQueue.Stream)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("mail worker stopped")
}
