package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/progression/internal/config"
	"github.com/ellavondegurechaff/progression/internal/domain/badges"
	"github.com/ellavondegurechaff/progression/internal/domain/orchestrator"
	"github.com/ellavondegurechaff/progression/internal/domain/points"
	"github.com/ellavondegurechaff/progression/internal/domain/ranking"
	"github.com/ellavondegurechaff/progression/internal/gateways/database"
	"github.com/ellavondegurechaff/progression/internal/gateways/database/repositories"
)

// engine is the wired object graph every command works against.
type engine struct {
	db           *database.DB
	points       points.Service
	badges       badges.Service
	orchestrator *orchestrator.Orchestrator
	scheduler    *orchestrator.Scheduler
}

func newEngine(ctx context.Context, cfg *config.Config) (*engine, error) {
	tieBreak, err := ranking.ParseTieBreak(cfg.Ranking.TieBreak)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Ranking.Location()
	if err != nil {
		return nil, err
	}

	slog.Info("Initializing database connection...", slog.String("type", "db"))
	start := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("database connection failed after %s: %w", time.Since(start).Round(time.Millisecond), err)
	}
	bunDB := db.BunDB()

	pointsService := points.NewService(repositories.NewLevelRepository(bunDB), points.Config{
		BatchChunkSize: cfg.Points.BatchChunkSize,
		MaxRetries:     cfg.Points.MaxRetries,
		CacheSize:      cfg.Points.CacheSize,
		CacheTTL:       cfg.Points.CacheTTL(),
	})
	badgeService := badges.NewService(repositories.NewBadgeRepository(bunDB))

	orch := orchestrator.New(
		repositories.NewRankingRepository(bunDB, tieBreak),
		badgeService,
		repositories.NewChallengeRepository(bunDB),
		orchestrator.Config{
			GlobalLimit:     cfg.Ranking.GlobalLimit,
			DailyLimit:      cfg.Ranking.DailyLimit,
			RegionLimit:     cfg.Ranking.RegionLimit,
			ChallengeLimit:  cfg.Ranking.ChallengeLimit,
			Regions:         cfg.Badges.Regions,
			Location:        loc,
			ItemConcurrency: cfg.Badges.ItemConcurrency,
		},
	)

	return &engine{
		db:           db,
		points:       pointsService,
		badges:       badgeService,
		orchestrator: orch,
		scheduler:    orchestrator.NewScheduler(orch, cfg.Badges.Interval(), cfg.Badges.RunTimeout()),
	}, nil
}

func (e *engine) Close() {
	e.db.Close()
}
