package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"tasklog/internal/config"
	"tasklog/internal/repository"
)

// Worker consumes reminder-scan messages and logs which accounts have
// overdue incomplete tasks.
type Worker struct {
	client   *redis.Client
	tasks    *repository.TaskRepository
	cfg      config.JobsConfig
	consumer string
	log      zerolog.Logger
}

func NewWorker(client *redis.Client, tasks *repository.TaskRepository, cfg config.JobsConfig, consumer string, log zerolog.Logger) *Worker {
	return &Worker{
		client:   client,
		tasks:    tasks,
		cfg:      cfg,
		consumer: consumer,
		log:      log,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	if w.client == nil || !w.cfg.Enabled {
		return nil
	}

	if err := w.client.XGroupCreateMkStream(ctx, w.cfg.Stream, w.cfg.Group, "$").Err(); err != nil {
		if !strings.Contains(err.Error(), "BUSYGROUP") {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := w.read(ctx); err != nil && ctx.Err() == nil {
				w.log.Error().Err(err).Msg("stream read error")
				time.Sleep(2 * time.Second)
			}
		}
	}
}

func (w *Worker) read(ctx context.Context) error {
	result, err := w.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    w.cfg.Group,
		Consumer: w.consumer,
		Streams:  []string{w.cfg.Stream, ">"},
		Count:    10,
		Block:    5 * time.Second,
	}).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	for _, stream := range result {
		for _, msg := range stream.Messages {
			if err := w.handle(ctx, msg); err != nil {
				w.log.Error().
					Err(err).
					Str("message_id", msg.ID).
					Msg("handle message failed")
				continue
			}
			if err := w.client.XAck(ctx, w.cfg.Stream, w.cfg.Group, msg.ID).Err(); err != nil {
				w.log.Error().Err(err).Str("message_id", msg.ID).Msg("ack failed")
			}
		}
	}
	return nil
}

func (w *Worker) handle(ctx context.Context, msg redis.XMessage) error {
	msgType, _ := msg.Values["type"].(string)
	switch msgType {
	case "reminder_scan":
		return w.scanOverdue(ctx)
	default:
		w.log.Warn().Str("type", msgType).Msg("unknown job type")
		return nil
	}
}

func (w *Worker) scanOverdue(ctx context.Context) error {
	counts, err := w.tasks.CountOverdueByOwner(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, c := range counts {
		w.log.Info().
			Str("owner_id", c.OwnerID).
			Str("username", c.Username).
			Int("overdue", c.Count).
			Msg("overdue task reminder")
	}
	if len(counts) == 0 {
		w.log.Debug().Msg("no overdue tasks")
	}
	return nil
}
