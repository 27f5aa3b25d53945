package queue

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/dreamspell/dreamspell/internal/config"
)

// Task types handled by the worker.
const TaskTypeSweepAssets = "assets:sweep"

func redisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr: fmt.Sprintf("%s:%s",
			os.Getenv(config.ENV_KEY_REDIS_HOST),
			os.Getenv(config.ENV_KEY_REDIS_PORT),
		),
		Password: os.Getenv(config.ENV_KEY_REDIS_PASSWORD),
	}
}

// Client wraps asynq.Client for enqueuing tasks.
type Client struct {
	client *asynq.Client
	logger *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	return &Client{
		client: asynq.NewClient(redisClientOpt()),
		logger: logger,
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueSweep schedules one orphan-asset sweep run.
func (c *Client) EnqueueSweep(ctx context.Context) error {
	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(TaskTypeSweepAssets, nil))
	if err != nil {
		return fmt.Errorf("enqueueing sweep task: %w", err)
	}

	c.logger.InfoContext(ctx, "enqueued task",
		slog.String("id", info.ID),
		slog.String("queue", info.Queue),
		slog.String("type", info.Type))
	return nil
}
