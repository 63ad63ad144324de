package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/domain/badges"
	"github.com/ellavondegurechaff/progression/internal/gateways/database/models"
)

type badgeRepository struct {
	BaseRepository
}

var _ badges.Repository = &badgeRepository{}

func NewBadgeRepository(db *bun.DB) badges.Repository {
	return &badgeRepository{BaseRepository: NewBaseRepository(db)}
}

// FindBadge matches a global sub-scope with IS NULL; "= NULL" would never match.
func (r *badgeRepository) FindBadge(ctx context.Context, userID string, scope domain.BadgeScope, sub domain.SubScope) (*badges.UserBadge, error) {
	row := new(models.UserBadge)
	err := r.Select(ctx, "find", "user_badges", r.defaultTimeout, func(ctx context.Context) error {
		q := r.db.NewSelect().
			Model(row).
			Where("ub.user_id = ?", userID).
			Where("ub.badge_scope = ?", string(scope))
		if name, ok := sub.Value(); ok {
			q = q.Where("ub.sub_scope = ?", name)
		} else {
			q = q.Where("ub.sub_scope IS NULL")
		}
		return q.Limit(1).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return toBadge(row), nil
}

func (r *badgeRepository) InsertBadge(ctx context.Context, badge *badges.UserBadge) error {
	row := toBadgeModel(badge)
	affected, err := r.Exec(ctx, "insert", "user_badges", r.defaultTimeout, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().
			Model(row).
			On("CONFLICT DO NOTHING").
			Returning("id").
			Exec(ctx)
	})
	if errors.Is(err, domain.ErrNotFound) || (err == nil && affected == 0) {
		return fmt.Errorf("badge %s/%s for %s: %w", badge.Scope, badge.Sub, badge.UserID, domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	badge.ID = row.ID
	return nil
}

func (r *badgeRepository) ImproveBadge(ctx context.Context, id int64, rank int, at time.Time) (bool, error) {
	affected, err := r.Exec(ctx, "improve", "user_badges", r.defaultTimeout, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewUpdate().
			Model((*models.UserBadge)(nil)).
			Set("rank = ?", rank).
			Set("achieved_at = ?", at).
			Set("is_notified = false").
			Set("updated_at = ?", at).
			Where("ub.id = ?", id).
			Where("ub.rank > ?", rank).
			Exec(ctx)
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *badgeRepository) ListBadges(ctx context.Context, userID string) ([]*badges.UserBadge, error) {
	return r.list(ctx, "list", userID, false)
}

func (r *badgeRepository) ListUnnotified(ctx context.Context, userID string) ([]*badges.UserBadge, error) {
	return r.list(ctx, "list_unnotified", userID, true)
}

func (r *badgeRepository) list(ctx context.Context, operation, userID string, unnotifiedOnly bool) ([]*badges.UserBadge, error) {
	var rows []*models.UserBadge
	err := r.Select(ctx, operation, "user_badges", r.defaultTimeout, func(ctx context.Context) error {
		q := r.db.NewSelect().
			Model(&rows).
			Where("ub.user_id = ?", userID)
		if unnotifiedOnly {
			q = q.Where("ub.is_notified = false")
		}
		return q.OrderExpr("ub.badge_scope ASC, ub.sub_scope ASC NULLS FIRST, ub.id ASC").Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]*badges.UserBadge, len(rows))
	for i, row := range rows {
		out[i] = toBadge(row)
	}
	return out, nil
}

// MarkNotified flags ids (or every pending badge when ids is empty) of userID.
func (r *badgeRepository) MarkNotified(ctx context.Context, userID string, ids []int64) (int, error) {
	affected, err := r.Exec(ctx, "mark_notified", "user_badges", r.defaultTimeout, func(ctx context.Context) (sql.Result, error) {
		q := r.db.NewUpdate().
			Model((*models.UserBadge)(nil)).
			Set("is_notified = true").
			Set("updated_at = ?", time.Now()).
			Where("ub.user_id = ?", userID).
			Where("ub.is_notified = false")
		if len(ids) > 0 {
			q = q.Where("ub.id IN (?)", bun.In(ids))
		}
		return q.Exec(ctx)
	})
	return int(affected), err
}

func toBadgeModel(b *badges.UserBadge) *models.UserBadge {
	return &models.UserBadge{
		ID:         b.ID,
		UserID:     b.UserID,
		BadgeScope: string(b.Scope),
		SubScope:   b.Sub.Nullable(),
		Rank:       b.Rank,
		AchievedAt: b.AchievedAt,
		IsNotified: b.IsNotified,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func toBadge(m *models.UserBadge) *badges.UserBadge {
	return &badges.UserBadge{
		ID:         m.ID,
		UserID:     m.UserID,
		Scope:      domain.BadgeScope(m.BadgeScope),
		Sub:        domain.SubScopeFromNullable(m.SubScope),
		Rank:       m.Rank,
		AchievedAt: m.AchievedAt,
		IsNotified: m.IsNotified,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
