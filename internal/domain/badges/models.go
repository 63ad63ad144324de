package badges

import (
	"time"

	"github.com/ellavondegurechaff/progression/internal/domain"
)

// UserBadge is the best rank a user ever reached in one scope.
type UserBadge struct {
	ID         int64             `json:"id"`
	UserID     string            `json:"user_id"`
	Scope      domain.BadgeScope `json:"badge_scope"`
	Sub        domain.SubScope   `json:"sub_scope"`
	Rank       int               `json:"rank"`
	AchievedAt time.Time         `json:"achieved_at"`
	IsNotified bool              `json:"is_notified"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type UpdateResult struct {
	Updated      bool `json:"updated"`
	Rank         int  `json:"rank"`
	PreviousRank int  `json:"previous_rank,omitempty"`
}
