package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ellavondegurechaff/progression/internal/domain"
)

// ScopeJob ranks one item of a scope (the global board, one region, one
// challenge) and feeds every ranked row to the badge engine.
type ScopeJob struct {
	Name  string
	Scope domain.BadgeScope
	Sub   domain.SubScope
	Fetch func(ctx context.Context) ([]domain.RankedUser, error)
}

type ScopeResult struct {
	Scope        domain.BadgeScope `json:"scope"`
	Success      bool              `json:"success"`
	UpdatedCount int               `json:"updated_count"`
	Items        int               `json:"items"`
	FailedItems  []string          `json:"failed_items,omitempty"`
	FailedRows   int               `json:"failed_rows"`
	Error        string            `json:"error,omitempty"`
	Duration     time.Duration     `json:"duration"`
}

type jobStats struct {
	updated    atomic.Int64
	failedRows atomic.Int64

	mu     sync.Mutex
	failed []string
}

func (s *jobStats) fail(name string) {
	s.mu.Lock()
	s.failed = append(s.failed, name)
	s.mu.Unlock()
}

// runJobs runs jobs with at most cfg.ItemConcurrency in flight. A failing job
// is logged and recorded; it never stops the others.
func (o *Orchestrator) runJobs(ctx context.Context, scope domain.BadgeScope, jobs []ScopeJob) ScopeResult {
	start := time.Now()
	stats := &jobStats{}
	sem := semaphore.NewWeighted(int64(o.cfg.ItemConcurrency))

	var wg sync.WaitGroup
	for i, job := range jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			for _, skipped := range jobs[i:] {
				stats.fail(skipped.Name)
			}
			slog.Warn("Scope run cancelled",
				slog.String("type", "badge"),
				slog.String("scope", string(scope)),
				slog.Int("skipped", len(jobs)-i),
				slog.Any("error", err),
			)
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Scope job panicked",
						slog.String("type", "badge"),
						slog.String("job", job.Name),
						slog.Any("error", fmt.Errorf("panic: %v", r)),
					)
					stats.fail(job.Name)
				}
			}()
			if !o.runJob(ctx, job, stats) {
				stats.fail(job.Name)
			}
		}()
	}
	wg.Wait()

	sort.Strings(stats.failed)
	return ScopeResult{
		Scope:        scope,
		Success:      len(stats.failed) == 0,
		UpdatedCount: int(stats.updated.Load()),
		Items:        len(jobs),
		FailedItems:  stats.failed,
		FailedRows:   int(stats.failedRows.Load()),
		Duration:     time.Since(start),
	}
}

// runJob reports whether the fetch and every row update succeeded.
func (o *Orchestrator) runJob(ctx context.Context, job ScopeJob, stats *jobStats) bool {
	ranked, err := job.Fetch(ctx)
	if err != nil {
		slog.Error("Failed to fetch ranking",
			slog.String("type", "badge"),
			slog.String("job", job.Name),
			slog.Any("error", err),
		)
		return false
	}

	ok := true
	for _, row := range ranked {
		res, err := o.badges.UpdateBadge(ctx, row.UserID, job.Scope, job.Sub, row.Rank)
		if err != nil {
			slog.Error("Failed to update badge",
				slog.String("type", "badge"),
				slog.String("job", job.Name),
				slog.String("user_id", row.UserID),
				slog.Int("rank", row.Rank),
				slog.Any("error", err),
			)
			stats.failedRows.Add(1)
			ok = false
			continue
		}
		if res.Updated {
			stats.updated.Add(1)
		}
	}
	return ok
}
