package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"tasklane.app/server/common/id"
	"tasklane.app/server/common/logger"
)

type Producer struct {
	rdb    *redis.Client
	stream string
}

func NewProducer(rdb *redis.Client, stream string) *Producer {
	return &Producer{rdb: rdb, stream: stream}
}

func (p *Producer) EnqueueMail(ctx context.Context, msg MailMessage) error {
	if msg.ID == "" {
		msg.ID = strconv.FormatInt(id.New(), 10)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling mail message: %w", err)
	}

	err = p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{"payload": payload},
	}).Err()
	if err != nil {
		return fmt.Errorf("adding message to stream %s: %w", p.stream, err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID: &msg.ID,
		Component: "tasklane.queue.producer",
	})
	slog.InfoContext(ctx, "enqueued mail message", "kind", msg.Kind)
	return nil
}
