package points

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/domain/progression"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

type Service interface {
	GrantPoints(ctx context.Context, req GrantRequest) (*UserLevelState, error)
	GrantPointsBatch(ctx context.Context, reqs []GrantRequest) ([]PerUserResult, error)
	Reconcile(ctx context.Context, userID string) (*UserLevelState, error)
	GetProgress(ctx context.Context, userID string) (*Progress, error)
	AcknowledgeLevel(ctx context.Context, userID string, level int) error
	History(ctx context.Context, userID string, limit int) ([]*PointTransaction, error)
}

type Config struct {
	BatchChunkSize int
	// MaxRetries bounds re-reads after a version conflict.
	MaxRetries int
	CacheSize  int
	CacheTTL   time.Duration
}

func DefaultConfig() Config {
	return Config{
		BatchChunkSize: 500,
		MaxRetries:     3,
		CacheSize:      10000,
		CacheTTL:       5 * time.Minute,
	}
}

type cachedProgress struct {
	progress  Progress
	expiresAt time.Time
}

type service struct {
	repository Repository
	cfg        Config
	cache      *lru.Cache
	now        func() time.Time
}

func NewService(repository Repository, cfg Config) *service {
	defaults := DefaultConfig()
	if cfg.BatchChunkSize <= 0 {
		cfg.BatchChunkSize = defaults.BatchChunkSize
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaults.CacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}

	cache, _ := lru.New(cfg.CacheSize)
	return &service{
		repository: repository,
		cfg:        cfg,
		cache:      cache,
		now:        time.Now,
	}
}

func (s *service) GrantPoints(ctx context.Context, req GrantRequest) (*UserLevelState, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repository.InsertTransaction(ctx, newTransaction(req, now)); err != nil {
		return nil, domain.InsertFailed("insert point transaction", err)
	}

	state, err := s.writeWithRetry(ctx, req.UserID, func(current *UserLevelState) *UserLevelState {
		return current.WithPoints(req.Amount, now)
	})
	s.invalidate(req.UserID)
	if err != nil {
		return nil, err
	}

	slog.Debug("Points granted",
		slog.String("type", "points"),
		slog.String("user_id", req.UserID),
		slog.Int("amount", req.Amount),
		slog.Int("level", state.Level),
		slog.Int("cumulative_points", state.CumulativePoints),
	)
	return state, nil
}

// Reconcile rebuilds a user's state from the sum of their ledger rows.
func (s *service) Reconcile(ctx context.Context, userID string) (*UserLevelState, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	var total int
	state, err := s.writeWithRetry(ctx, userID, func(current *UserLevelState) *UserLevelState {
		return current.WithTotal(total, s.now())
	}, func(ctx context.Context) error {
		sum, err := s.repository.SumTransactions(ctx, userID)
		if err != nil {
			return err
		}
		total = sum
		return nil
	})
	s.invalidate(userID)
	if err != nil {
		return nil, err
	}

	slog.Info("Level state reconciled",
		slog.String("type", "points"),
		slog.String("user_id", userID),
		slog.Int("cumulative_points", state.CumulativePoints),
		slog.Int("level", state.Level),
	)
	return state, nil
}

// writeWithRetry reads the user's state, applies next and writes it guarded
// by version. before runs ahead of every read.
func (s *service) writeWithRetry(
	ctx context.Context,
	userID string,
	next func(current *UserLevelState) *UserLevelState,
	before ...func(ctx context.Context) error,
) (*UserLevelState, error) {
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		for _, fn := range before {
			if err := fn(ctx); err != nil {
				return nil, domain.LookupFailed("load ledger", err)
			}
		}

		current, err := s.loadState(ctx, userID)
		if err != nil {
			return nil, domain.LookupFailed("load level state", err)
		}

		updated := next(current)
		written, err := s.repository.SaveLevelStates(ctx, []*UserLevelState{updated})
		if err != nil {
			return nil, domain.WriteFailed("save level state", err)
		}
		if len(written) == 1 {
			return updated, nil
		}

		slog.Debug("Level state version conflict, retrying",
			slog.String("type", "points"),
			slog.String("user_id", userID),
			slog.Int("attempt", attempt+1),
		)
	}

	return nil, domain.WriteFailed("save level state",
		fmt.Errorf("%w: version changed %d times", domain.ErrConflict, s.cfg.MaxRetries+1))
}

func (s *service) loadState(ctx context.Context, userID string) (*UserLevelState, error) {
	state, err := s.repository.GetLevelState(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return NewLevelState(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *service) GetProgress(ctx context.Context, userID string) (*Progress, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	if v, ok := s.cache.Get(userID); ok {
		entry := v.(cachedProgress)
		if s.now().Before(entry.expiresAt) {
			p := entry.progress
			return &p, nil
		}
		s.cache.Remove(userID)
	}

	state, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, domain.LookupFailed("load level state", err)
	}

	p := Progress{
		UserID:            userID,
		Progress:          progression.Snapshot(state.CumulativePoints),
		LastNotifiedLevel: state.LastNotifiedLevel,
		NeedsNotification: state.NeedsNotification(),
	}
	s.cache.Add(userID, cachedProgress{progress: p, expiresAt: s.now().Add(s.cfg.CacheTTL)})
	return &p, nil
}

// AcknowledgeLevel records that the user has been told about level.
func (s *service) AcknowledgeLevel(ctx context.Context, userID string, level int) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	if level < 1 || level > progression.MaxLevel {
		return fmt.Errorf("%w: %d", domain.ErrInvalidLevel, level)
	}

	err := s.repository.AcknowledgeLevel(ctx, userID, level)
	s.invalidate(userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("acknowledge level for %s: %w", userID, err)
	case err != nil:
		return domain.WriteFailed("acknowledge level", err)
	}
	return nil
}

// History returns the user's ledger rows, newest first.
func (s *service) History(ctx context.Context, userID string, limit int) ([]*PointTransaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	txs, err := s.repository.ListTransactions(ctx, userID, limit)
	if err != nil {
		return nil, domain.LookupFailed("list point transactions", err)
	}
	return txs, nil
}

func (s *service) invalidate(userID string) {
	s.cache.Remove(userID)
}

func newTransaction(req GrantRequest, at time.Time) *PointTransaction {
	return &PointTransaction{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Amount:      req.Amount,
		SourceType:  req.SourceType,
		SourceID:    req.SourceID,
		Description: req.Description,
		CreatedAt:   at,
	}
}
