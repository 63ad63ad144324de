package repositories

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/progression/internal/config"
	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/domain/points"
	"github.com/ellavondegurechaff/progression/internal/domain/ranking"
)

// rankingRepository ranks users by the points they earned in a scope,
// straight from the ledger.
type rankingRepository struct {
	BaseRepository
	tieBreak ranking.TieBreak
}

var _ ranking.Source = &rankingRepository{}

func NewRankingRepository(db *bun.DB, tieBreak ranking.TieBreak) ranking.Source {
	return &rankingRepository{BaseRepository: NewBaseRepository(db), tieBreak: tieBreak}
}

type rankRow struct {
	UserID string `bun:"user_id"`
	Rank   int    `bun:"rank"`
}

func (r *rankingRepository) Rank(ctx context.Context, q ranking.Query) ([]domain.RankedUser, error) {
	sel, err := r.rankQuery(q)
	if err != nil {
		return nil, err
	}

	var rows []rankRow
	err = r.Select(ctx, "rank_"+string(q.Scope), "point_transactions", config.RankingQueryTimeout, func(ctx context.Context) error {
		return sel.Scan(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.RankedUser, len(rows))
	for i, row := range rows {
		out[i] = domain.RankedUser{UserID: row.UserID, Rank: row.Rank}
	}
	return out, nil
}

func (r *rankingRepository) rankQuery(q ranking.Query) (*bun.SelectQuery, error) {
	if err := domain.ValidateBadgeKey(q.Scope, q.Sub); err != nil {
		return nil, err
	}
	if q.Limit < 1 {
		return nil, fmt.Errorf("%w: ranking limit must be positive, got %d", domain.ErrInvalidRequest, q.Limit)
	}
	if q.Scope == domain.ScopeDaily && q.Period == nil {
		return nil, fmt.Errorf("%w: daily ranking needs a period", domain.ErrInvalidRequest)
	}

	sel := r.db.NewSelect().
		TableExpr("point_transactions AS pt").
		ColumnExpr("pt.user_id").
		ColumnExpr(`ROW_NUMBER() OVER (ORDER BY SUM(pt.amount) DESC, ` + tieBreakOrder(r.tieBreak) + `) AS "rank"`)

	name, _ := q.Sub.Value()
	switch q.Scope {
	case domain.ScopeRegion:
		sel = sel.
			Join("JOIN user_regions AS ur ON ur.user_id = pt.user_id").
			Where("ur.region = ?", name)
	case domain.ScopeChallenge:
		sel = sel.
			Where("pt.source_type = ?", string(points.SourceChallengeCompletion)).
			Where("pt.source_id = ?", name)
	}

	if q.Period != nil {
		sel = sel.
			Where("pt.created_at >= ?", q.Period.Start).
			Where("pt.created_at < ?", q.Period.End)
	}

	return sel.
		GroupExpr("pt.user_id").
		Having("SUM(pt.amount) > 0").
		OrderExpr(`"rank" ASC`).
		Limit(q.Limit), nil
}

// tieBreakOrder is the secondary ORDER BY of the ranking window.
func tieBreakOrder(tb ranking.TieBreak) string {
	switch tb {
	case ranking.TieBreakUserID:
		return "pt.user_id ASC"
	default:
		return "MAX(pt.created_at) ASC, pt.user_id ASC"
	}
}
