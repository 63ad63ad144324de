package badges

import (
	"context"
	"time"

	"github.com/ellavondegurechaff/progression/internal/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	// FindBadge returns domain.ErrNotFound when the user holds no badge for the key.
	FindBadge(ctx context.Context, userID string, scope domain.BadgeScope, sub domain.SubScope) (*UserBadge, error)
	// InsertBadge returns domain.ErrConflict if the key already exists.
	InsertBadge(ctx context.Context, badge *UserBadge) error
	// ImproveBadge lowers the rank of badge id only if rank is strictly better
	// than the stored one, and reports whether a row changed.
	ImproveBadge(ctx context.Context, id int64, rank int, at time.Time) (bool, error)
	ListBadges(ctx context.Context, userID string) ([]*UserBadge, error)
	ListUnnotified(ctx context.Context, userID string) ([]*UserBadge, error)
	MarkNotified(ctx context.Context, userID string, ids []int64) (int, error)
}
