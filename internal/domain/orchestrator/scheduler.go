package orchestrator

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

type Recalculator interface {
	RecalculateAllBadges(ctx context.Context) Summary
}

// Scheduler runs badge recalculation on a fixed interval. A tick that fires
// while the previous run is still going is skipped.
type Scheduler struct {
	recalculator Recalculator
	interval     time.Duration
	timeout      time.Duration
	running      atomic.Bool
}

func NewScheduler(recalculator Recalculator, interval, timeout time.Duration) *Scheduler {
	return &Scheduler{
		recalculator: recalculator,
		interval:     interval,
		timeout:      timeout,
	}
}

// Start returns immediately; the loop stops when ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				go s.RunOnce(ctx)
			}
		}
	}()

	slog.Info("Badge scheduler started",
		slog.String("type", "sys"),
		slog.Duration("interval", s.interval),
	)
}

// RunOnce runs one recalculation unless another is in flight, in which case
// it returns false without doing anything.
func (s *Scheduler) RunOnce(ctx context.Context) (Summary, bool) {
	if !s.running.CompareAndSwap(false, true) {
		slog.Warn("Badge recalculation still running, skipping tick",
			slog.String("type", "badge"),
		)
		return Summary{}, false
	}
	defer s.running.Store(false)

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.recalculator.RecalculateAllBadges(runCtx), true
}
