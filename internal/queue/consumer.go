package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tasklane.app/server/common/logger"
	"tasklane.app/server/core/config"
)

// Handler processes one mail message. Returning an error requeues the
// message until it exhausts its attempts and lands on the DLQ stream.
type Handler func(ctx context.Context, msg MailMessage) error

type Consumer struct {
	rdb     *redis.Client
	cfg     config.MailQueueConfig
	handler Handler
}

func NewConsumer(rdb *redis.Client, cfg config.MailQueueConfig, handler Handler) *Consumer {
	return &Consumer{rdb: rdb, cfg: cfg, handler: handler}
}

// Start blocks until ctx is cancelled, reading and processing messages
// one batch at a time. Messages are acknowledged only after the handler
// succeeds, so delivery is at least once.
func (c *Consumer) Start(ctx context.Context) error {
	err := c.rdb.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("creating consumer group: %w", err)
	}

	slog.InfoContext(ctx, "mail consumer started",
		"stream", c.cfg.Stream, "group", c.cfg.Group, "consumer", c.cfg.Consumer)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		streams, err := c.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.Consumer,
			Streams:  []string{c.cfg.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.ErrorContext(ctx, "failed to read from stream", "error", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, entry := range stream.Messages {
				c.process(ctx, entry)
			}
		}
	}
}

func (c *Consumer) process(ctx context.Context, entry redis.XMessage) {
	payload, ok := entry.Values["payload"].(string)
	if !ok {
		slog.ErrorContext(ctx, "stream entry missing payload, dropping", "entry_id", entry.ID)
		c.ack(ctx, entry.ID)
		return
	}

	var msg MailMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal mail message, dropping", "error", err, "entry_id", entry.ID)
		c.ack(ctx, entry.ID)
		return
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID: &msg.ID,
		Component: "tasklane.queue.consumer",
	})

	if err := c.handler(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "handler failed", "error", err, "attempt", msg.Attempt)
		if msg.Attempt+1 >= c.cfg.MaxAttempts {
			c.sendDLQ(ctx, msg)
		} else {
			c.requeue(ctx, msg)
		}
		c.ack(ctx, entry.ID)
		return
	}

	c.ack(ctx, entry.ID)
}

func (c *Consumer) ack(ctx context.Context, entryID string) {
	if err := c.rdb.XAck(ctx, c.cfg.Stream, c.cfg.Group, entryID).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to ack entry", "error", err, "entry_id", entryID)
	}
}

func (c *Consumer) requeue(ctx context.Context, msg MailMessage) {
	msg.Attempt++
	payload, err := json.Marshal(msg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal message for requeue", "error", err)
		return
	}
	err = c.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.Stream,
		Values: map[string]any{"payload": payload},
	}).Err()
	if err != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", err)
		return
	}
	slog.WarnContext(ctx, "requeued mail message", "attempt", msg.Attempt)
}

func (c *Consumer) sendDLQ(ctx context.Context, msg MailMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal message for dlq", "error", err)
		return
	}
	err = c.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.DLQStream,
		Values: map[string]any{"payload": payload},
	}).Err()
	if err != nil {
		slog.ErrorContext(ctx, "failed to move message to dlq", "error", err)
		return
	}
	slog.WarnContext(ctx, "moved mail message to dlq", "attempts", msg.Attempt+1)
}
