package badges

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/progression/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

type Service interface {
	UpdateBadge(ctx context.Context, userID string, scope domain.BadgeScope, sub domain.SubScope, rank int) (UpdateResult, error)
	ListBadges(ctx context.Context, userID string) ([]*UserBadge, error)
	PendingNotifications(ctx context.Context, userID string) ([]*UserBadge, error)
	MarkNotified(ctx context.Context, userID string, ids []int64) (int, error)
}

type service struct {
	repository Repository
	now        func() time.Time
}

func NewService(repository Repository) *service {
	return &service{
		repository: repository,
		now:        time.Now,
	}
}

// UpdateBadge records rank for the key if it beats the user's best so far.
// Ranks never get worse: an equal or worse rank leaves the badge untouched.
func (s *service) UpdateBadge(ctx context.Context, userID string, scope domain.BadgeScope, sub domain.SubScope, rank int) (UpdateResult, error) {
	if userID == "" {
		return UpdateResult{}, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	if rank < 1 {
		return UpdateResult{}, fmt.Errorf("%w: rank must be at least 1, got %d", domain.ErrInvalidRequest, rank)
	}
	if err := domain.ValidateBadgeKey(scope, sub); err != nil {
		return UpdateResult{}, err
	}

	result, err := s.update(ctx, userID, scope, sub, rank)
	if errors.Is(err, domain.ErrConflict) {
		// lost an insert race; the row exists now
		result, err = s.update(ctx, userID, scope, sub, rank)
	}
	if err != nil {
		return UpdateResult{Rank: rank}, err
	}

	if result.Updated {
		slog.Debug("Badge improved",
			slog.String("type", "badge"),
			slog.String("user_id", userID),
			slog.String("scope", string(scope)),
			slog.String("sub_scope", sub.String()),
			slog.Int("rank", rank),
			slog.Int("previous_rank", result.PreviousRank),
		)
	}
	return result, nil
}

func (s *service) update(ctx context.Context, userID string, scope domain.BadgeScope, sub domain.SubScope, rank int) (UpdateResult, error) {
	existing, err := s.repository.FindBadge(ctx, userID, scope, sub)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		now := s.now()
		err := s.repository.InsertBadge(ctx, &UserBadge{
			UserID:     userID,
			Scope:      scope,
			Sub:        sub,
			Rank:       rank,
			AchievedAt: now,
			IsNotified: false,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if errors.Is(err, domain.ErrConflict) {
			return UpdateResult{Rank: rank}, err
		}
		if err != nil {
			return UpdateResult{Rank: rank}, domain.InsertFailed("insert badge", err)
		}
		return UpdateResult{Updated: true, Rank: rank}, nil
	case err != nil:
		return UpdateResult{Rank: rank}, domain.LookupFailed("find badge", err)
	}

	if rank >= existing.Rank {
		return UpdateResult{Rank: existing.Rank, PreviousRank: existing.Rank}, nil
	}

	changed, err := s.repository.ImproveBadge(ctx, existing.ID, rank, s.now())
	if err != nil {
		return UpdateResult{Rank: existing.Rank}, domain.WriteFailed("improve badge", err)
	}
	if !changed {
		// a concurrent writer stored an equal or better rank first
		return UpdateResult{Rank: existing.Rank, PreviousRank: existing.Rank}, nil
	}
	return UpdateResult{Updated: true, Rank: rank, PreviousRank: existing.Rank}, nil
}

func (s *service) ListBadges(ctx context.Context, userID string) ([]*UserBadge, error) {
	badges, err := s.repository.ListBadges(ctx, userID)
	if err != nil {
		return nil, domain.LookupFailed("list badges", err)
	}
	return badges, nil
}

// PendingNotifications lists badges won or improved since the user was last told.
func (s *service) PendingNotifications(ctx context.Context, userID string) ([]*UserBadge, error) {
	badges, err := s.repository.ListUnnotified(ctx, userID)
	if err != nil {
		return nil, domain.LookupFailed("list unnotified badges", err)
	}
	return badges, nil
}

// MarkNotified flags the given badges of userID as delivered. An empty ids
// list marks every pending badge of the user.
func (s *service) MarkNotified(ctx context.Context, userID string, ids []int64) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	n, err := s.repository.MarkNotified(ctx, userID, ids)
	if err != nil {
		return 0, domain.WriteFailed("mark badges notified", err)
	}
	return n, nil
}
