package points

import "context"

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	InsertTransaction(ctx context.Context, tx *PointTransaction) error
	// InsertTransactions writes all rows in a single statement.
	InsertTransactions(ctx context.Context, txs []*PointTransaction) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]*PointTransaction, error)
	SumTransactions(ctx context.Context, userID string) (int, error)

	// GetLevelState returns domain.ErrNotFound for unknown users.
	GetLevelState(ctx context.Context, userID string) (*UserLevelState, error)
	// GetLevelStates fetches one chunk; callers bound the size of userIDs.
	GetLevelStates(ctx context.Context, userIDs []string) ([]*UserLevelState, error)
	// SaveLevelStates upserts each state only if the stored version is
	// state.Version-1 (or no row exists and state.Version is 1). It returns
	// the user ids that were written.
	SaveLevelStates(ctx context.Context, states []*UserLevelState) ([]string, error)
	// AcknowledgeLevel raises last_notified_level to min(level, current level).
	AcknowledgeLevel(ctx context.Context, userID string, level int) error
}
