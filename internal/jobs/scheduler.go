// Package jobs schedules and runs the overdue-task reminder scan. The
// scheduler drops a message on a redis stream; the worker consumes it. Both
// are observational only and never mutate tasks or write audit entries.
package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"tasklog/internal/config"
)

type Scheduler struct {
	cron  *cron.Cron
	queue *redis.Client
	cfg   config.JobsConfig
	log   zerolog.Logger
}

func NewScheduler(queue *redis.Client, cfg config.JobsConfig, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		queue: queue,
		cfg:   cfg,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil || !s.cfg.Enabled {
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.ReminderCron, s.enqueueReminderScan); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits up to five seconds for in-flight cron jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) enqueueReminderScan() {
	_, err := s.queue.XAdd(context.Background(), &redis.XAddArgs{
		Stream: s.cfg.Stream,
		Values: map[string]any{"type": "reminder_scan"},
	}).Result()
	if err != nil {
		s.log.Error().Err(err).Msg("enqueue reminder scan failed")
	}
}
