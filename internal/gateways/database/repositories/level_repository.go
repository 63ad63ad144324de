package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/progression/internal/config"
	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/domain/points"
	"github.com/ellavondegurechaff/progression/internal/gateways/database/models"
)

// levelRepository stores the point ledger and the level snapshots derived
// from it.
type levelRepository struct {
	BaseRepository
}

var _ points.Repository = &levelRepository{}

func NewLevelRepository(db *bun.DB) points.Repository {
	return &levelRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *levelRepository) InsertTransaction(ctx context.Context, tx *points.PointTransaction) error {
	row := toTransactionModel(tx)
	_, err := r.Exec(ctx, "insert", "point_transactions", r.defaultTimeout, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().Model(row).Exec(ctx)
	})
	return err
}

func (r *levelRepository) InsertTransactions(ctx context.Context, txs []*points.PointTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	rows := make([]*models.PointTransaction, len(txs))
	for i, tx := range txs {
		rows[i] = toTransactionModel(tx)
	}
	_, err := r.Exec(ctx, "batch_insert", "point_transactions", config.BatchQueryTimeout, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().Model(&rows).Exec(ctx)
	})
	return err
}

func (r *levelRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]*points.PointTransaction, error) {
	var rows []*models.PointTransaction
	err := r.Select(ctx, "list", "point_transactions", r.defaultTimeout, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Where("pt.user_id = ?", userID).
			OrderExpr("pt.created_at DESC, pt.id DESC").
			Limit(limit).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]*points.PointTransaction, len(rows))
	for i, row := range rows {
		out[i] = toTransaction(row)
	}
	return out, nil
}

func (r *levelRepository) SumTransactions(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.Select(ctx, "sum", "point_transactions", r.defaultTimeout, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model((*models.PointTransaction)(nil)).
			ColumnExpr("COALESCE(SUM(pt.amount), 0)").
			Where("pt.user_id = ?", userID).
			Scan(ctx, &total)
	})
	return total, err
}

func (r *levelRepository) GetLevelState(ctx context.Context, userID string) (*points.UserLevelState, error) {
	row := new(models.UserLevelState)
	err := r.Select(ctx, "get", "user_level_states", r.defaultTimeout, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(row).
			Where("uls.user_id = ?", userID).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return toLevelState(row), nil
}

func (r *levelRepository) GetLevelStates(ctx context.Context, userIDs []string) ([]*points.UserLevelState, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var rows []*models.UserLevelState
	err := r.Select(ctx, "batch_get", "user_level_states", config.BatchQueryTimeout, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Where("uls.user_id IN (?)", bun.In(userIDs)).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]*points.UserLevelState, len(rows))
	for i, row := range rows {
		out[i] = toLevelState(row)
	}
	return out, nil
}

// SaveLevelStates upserts states in one statement. An existing row is only
// overwritten when its version is exactly one below the incoming state, so a
// stale writer gets its user id left out of the result instead of clobbering
// a newer snapshot.
func (r *levelRepository) SaveLevelStates(ctx context.Context, states []*points.UserLevelState) ([]string, error) {
	if len(states) == 0 {
		return nil, nil
	}
	rows := make([]*models.UserLevelState, len(states))
	for i, s := range states {
		rows[i] = toLevelStateModel(s)
	}

	var written []string
	_, err := r.Exec(ctx, "upsert", "user_level_states", config.BatchQueryTimeout, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().
			Model(&rows).
			On("CONFLICT (user_id) DO UPDATE").
			Set("level = EXCLUDED.level").
			Set("cumulative_points = EXCLUDED.cumulative_points").
			Set("version = EXCLUDED.version").
			Set("updated_at = EXCLUDED.updated_at").
			Where("uls.version = EXCLUDED.version - 1").
			Returning("user_id").
			Exec(ctx, &written)
	})
	if errors.Is(err, domain.ErrNotFound) {
		// every row lost its version guard
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return written, nil
}

func (r *levelRepository) AcknowledgeLevel(ctx context.Context, userID string, level int) error {
	affected, err := r.Exec(ctx, "acknowledge", "user_level_states", r.defaultTimeout, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewUpdate().
			Model((*models.UserLevelState)(nil)).
			Set("last_notified_level = GREATEST(uls.last_notified_level, LEAST(?, uls.level))", level).
			Where("uls.user_id = ?", userID).
			Exec(ctx)
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("level state of %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

func toTransactionModel(tx *points.PointTransaction) *models.PointTransaction {
	return &models.PointTransaction{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Amount:      tx.Amount,
		SourceType:  string(tx.SourceType),
		SourceID:    tx.SourceID,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

func toTransaction(m *models.PointTransaction) *points.PointTransaction {
	return &points.PointTransaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		SourceType:  points.SourceType(m.SourceType),
		SourceID:    m.SourceID,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func toLevelStateModel(s *points.UserLevelState) *models.UserLevelState {
	return &models.UserLevelState{
		UserID:            s.UserID,
		Level:             s.Level,
		CumulativePoints:  s.CumulativePoints,
		LastNotifiedLevel: s.LastNotifiedLevel,
		Version:           s.Version,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toLevelState(m *models.UserLevelState) *points.UserLevelState {
	return &points.UserLevelState{
		UserID:            m.UserID,
		Level:             m.Level,
		CumulativePoints:  m.CumulativePoints,
		LastNotifiedLevel: m.LastNotifiedLevel,
		Version:           m.Version,
		UpdatedAt:         m.UpdatedAt,
	}
}
