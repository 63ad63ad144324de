package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/progression/internal/config"
	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/logger"
)

// BaseRepository provides the timeout and error conventions shared by every
// repository.
type BaseRepository struct {
	db             *bun.DB
	defaultTimeout time.Duration
}

func NewBaseRepository(db *bun.DB) BaseRepository {
	return BaseRepository{
		db:             db,
		defaultTimeout: config.DefaultQueryTimeout,
	}
}

// RepositoryError represents a repository-level error
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

func (br BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

func (br BaseRepository) WithCustomTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// HandleError maps sql.ErrNoRows to domain.ErrNotFound and wraps everything
// else in a RepositoryError.
func (br BaseRepository) HandleError(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", operation, entity, domain.ErrNotFound)
	}
	return &RepositoryError{
		Operation: operation,
		Entity:    entity,
		Err:       err,
	}
}

// Exec runs a write under timeout, logs its duration and returns the number
// of affected rows.
func (br BaseRepository) Exec(ctx context.Context, operation, entity string, timeout time.Duration, query func(context.Context) (sql.Result, error)) (int64, error) {
	timeoutCtx, cancel := br.WithCustomTimeout(ctx, timeout)
	defer cancel()

	ql := logger.NewQueryLogger(operation, entity)
	result, err := query(timeoutCtx)
	var affected int64
	if err == nil && result != nil {
		affected, _ = result.RowsAffected()
	}
	ql.Log(err, affected)
	return affected, br.HandleError(operation, entity, err)
}

// Select runs a read under timeout; not-found is not logged as a failure.
func (br BaseRepository) Select(ctx context.Context, operation, entity string, timeout time.Duration, query func(context.Context) error) error {
	timeoutCtx, cancel := br.WithCustomTimeout(ctx, timeout)
	defer cancel()

	ql := logger.NewQueryLogger(operation, entity)
	err := query(timeoutCtx)
	if errors.Is(err, sql.ErrNoRows) {
		ql.Log(nil, 0)
	} else {
		ql.Log(err, 0)
	}
	return br.HandleError(operation, entity, err)
}
