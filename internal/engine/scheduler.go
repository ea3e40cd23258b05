package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler re-runs an analysis task at a fixed interval for watch mode.
type Scheduler struct {
	cron *cron.Cron
	log  *slog.Logger
}

// NewScheduler creates a Scheduler invoking task every interval.
func NewScheduler(
	interval time.Duration,
	task func(),
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron: c,
		log:  log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), task); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running task to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}
