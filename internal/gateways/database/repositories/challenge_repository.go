package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/progression/internal/domain/orchestrator"
	"github.com/ellavondegurechaff/progression/internal/gateways/database/models"
)

type challengeRepository struct {
	BaseRepository
}

var _ orchestrator.ChallengeCatalog = &challengeRepository{}

func NewChallengeRepository(db *bun.DB) orchestrator.ChallengeCatalog {
	return &challengeRepository{BaseRepository: NewBaseRepository(db)}
}

// ListUncapped returns visible challenges with no completion limit.
func (r *challengeRepository) ListUncapped(ctx context.Context) ([]orchestrator.Challenge, error) {
	var rows []*models.Challenge
	err := r.Select(ctx, "list_uncapped", "challenges", r.defaultTimeout, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Where("ch.max_completions IS NULL").
			Where("ch.is_visible = true").
			Order("ch.id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]orchestrator.Challenge, len(rows))
	for i, row := range rows {
		out[i] = orchestrator.Challenge{ID: row.ID, Title: row.Title}
	}
	return out, nil
}
