package syncer

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler drives periodic background sync passes. Mutual exclusion of
// overlapping passes is owned by the run function, so a tick that arrives
// while a pass is still in flight becomes a no-op there.
type Scheduler struct {
	interval time.Duration
	run      func(ctx context.Context)
	logger   *slog.Logger
}

// NewScheduler creates a scheduler invoking run every interval
func NewScheduler(interval time.Duration, run func(ctx context.Context), logger *slog.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		run:      run,
		logger:   logger.With("component", "scheduler"),
	}
}

// Run blocks until ctx is cancelled, invoking the run function on every tick
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}
