package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/domain/badges"
	"github.com/ellavondegurechaff/progression/internal/domain/ranking"
)

type BadgeUpdater interface {
	UpdateBadge(ctx context.Context, userID string, scope domain.BadgeScope, sub domain.SubScope, rank int) (badges.UpdateResult, error)
}

type Challenge struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ChallengeCatalog lists the visible challenges without a completion cap.
type ChallengeCatalog interface {
	ListUncapped(ctx context.Context) ([]Challenge, error)
}

type Config struct {
	GlobalLimit     int
	DailyLimit      int
	RegionLimit     int
	ChallengeLimit  int
	Regions         []string
	Location        *time.Location
	ItemConcurrency int
}

type Summary struct {
	Success      bool          `json:"success"`
	UpdatedCount int           `json:"updated_count"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Scopes       []ScopeResult `json:"scopes"`
}

type Orchestrator struct {
	source  ranking.Source
	badges  BadgeUpdater
	catalog ChallengeCatalog
	cfg     Config
	now     func() time.Time
}

func New(source ranking.Source, badges BadgeUpdater, catalog ChallengeCatalog, cfg Config) *Orchestrator {
	if cfg.ItemConcurrency < 1 {
		cfg.ItemConcurrency = 1
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Orchestrator{
		source:  source,
		badges:  badges,
		catalog: catalog,
		cfg:     cfg,
		now:     time.Now,
	}
}

// RecalculateAllBadges refreshes badges for every scope. The four scopes run
// concurrently and fail independently; Summary.Success is true only if all
// of them succeeded.
func (o *Orchestrator) RecalculateAllBadges(ctx context.Context) Summary {
	started := o.now()
	tasks := []func(context.Context) ScopeResult{
		o.globalScope,
		o.dailyScope,
		o.regionScope,
		o.challengeScope,
	}

	results := make([]ScopeResult, len(tasks))
	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			results[i] = task(ctx)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{
		Success:   true,
		StartedAt: started,
		Duration:  o.now().Sub(started),
		Scopes:    results,
	}
	for _, r := range results {
		summary.Success = summary.Success && r.Success
		summary.UpdatedCount += r.UpdatedCount
	}

	slog.Info("Badge recalculation finished",
		slog.String("type", "badge"),
		slog.Bool("success", summary.Success),
		slog.Int("updated", summary.UpdatedCount),
		slog.Duration("took", summary.Duration),
	)
	return summary
}

func (o *Orchestrator) globalScope(ctx context.Context) ScopeResult {
	return o.runJobs(ctx, domain.ScopeGlobal, []ScopeJob{
		o.job("global", domain.ScopeGlobal, domain.Global(), o.cfg.GlobalLimit, nil),
	})
}

func (o *Orchestrator) dailyScope(ctx context.Context) ScopeResult {
	window := ranking.DailyWindow(o.now(), o.cfg.Location)
	return o.runJobs(ctx, domain.ScopeDaily, []ScopeJob{
		o.job("daily", domain.ScopeDaily, domain.Global(), o.cfg.DailyLimit, &window),
	})
}

func (o *Orchestrator) regionScope(ctx context.Context) ScopeResult {
	jobs := make([]ScopeJob, 0, len(o.cfg.Regions))
	for _, region := range o.cfg.Regions {
		jobs = append(jobs, o.job("region:"+region, domain.ScopeRegion, domain.Named(region), o.cfg.RegionLimit, nil))
	}
	return o.runJobs(ctx, domain.ScopeRegion, jobs)
}

func (o *Orchestrator) challengeScope(ctx context.Context) ScopeResult {
	challenges, err := o.catalog.ListUncapped(ctx)
	if err != nil {
		slog.Error("Failed to list challenges",
			slog.String("type", "badge"),
			slog.Any("error", err),
		)
		return ScopeResult{Scope: domain.ScopeChallenge, Error: err.Error()}
	}

	jobs := make([]ScopeJob, 0, len(challenges))
	for _, c := range challenges {
		jobs = append(jobs, o.job("challenge:"+c.ID, domain.ScopeChallenge, domain.Named(c.ID), o.cfg.ChallengeLimit, nil))
	}
	return o.runJobs(ctx, domain.ScopeChallenge, jobs)
}

func (o *Orchestrator) job(name string, scope domain.BadgeScope, sub domain.SubScope, limit int, period *ranking.Period) ScopeJob {
	q := ranking.Query{Scope: scope, Sub: sub, Limit: limit, Period: period}
	return ScopeJob{
		Name:  name,
		Scope: scope,
		Sub:   sub,
		Fetch: func(ctx context.Context) ([]domain.RankedUser, error) {
			return o.source.Rank(ctx, q)
		},
	}
}
