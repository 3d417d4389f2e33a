package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Refresher is a mirror that can re-fetch its table. Errors are logged, not
// propagated: the next tick or the change feed retries implicitly.
type Refresher interface {
	Table() string
	Refresh(ctx context.Context) error
}

// Scheduler re-runs every registered mirror's refresh on a fixed interval.
// It is a safety net behind the push feed: a reconnect can drop
// notifications, and the periodic full refresh reconciles the mirrors.
type Scheduler struct {
	refreshers []Refresher
	interval   time.Duration
	logger     *slog.Logger
}

func NewScheduler(refreshers []Refresher, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		refreshers: refreshers,
		interval:   interval,
		logger:     logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "tables", len(s.refreshers))

	s.refreshAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.refreshAll(ctx)
		}
	}
}

func (s *Scheduler) refreshAll(ctx context.Context) {
	for _, r := range s.refreshers {
		refreshCtx, cancel := context.WithTimeout(ctx, time.Minute)
		if err := r.Refresh(refreshCtx); err != nil {
			s.logger.Error("periodic refresh failed", "table", r.Table(), "error", err)
		}
		cancel()
	}
}
