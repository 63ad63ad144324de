package points

import (
	"fmt"
	"time"

	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/domain/progression"
)

type SourceType string

const (
	SourceChallengeCompletion SourceType = "CHALLENGE_COMPLETION"
	SourceBonus               SourceType = "BONUS"
)

func (s SourceType) Valid() bool {
	return s == SourceChallengeCompletion || s == SourceBonus
}

// PointTransaction is an immutable ledger row.
type PointTransaction struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Amount      int        `json:"amount"`
	SourceType  SourceType `json:"source_type"`
	SourceID    *string    `json:"source_id,omitempty"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserLevelState is the per-user snapshot derived from the ledger.
// Level is always progression.CalculateLevel(CumulativePoints).
type UserLevelState struct {
	UserID            string    `json:"user_id"`
	Level             int       `json:"level"`
	CumulativePoints  int       `json:"cumulative_points"`
	LastNotifiedLevel int       `json:"last_notified_level"`
	Version           int       `json:"version"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewLevelState is the state of a user that has never been granted points.
func NewLevelState(userID string) *UserLevelState {
	return &UserLevelState{
		UserID:            userID,
		Level:             1,
		CumulativePoints:  0,
		LastNotifiedLevel: 1,
		Version:           0,
	}
}

// WithTotal returns the next version of s holding total points.
func (s *UserLevelState) WithTotal(total int, at time.Time) *UserLevelState {
	next := *s
	next.CumulativePoints = total
	next.Level = progression.CalculateLevel(total)
	next.Version = s.Version + 1
	next.UpdatedAt = at
	return &next
}

func (s *UserLevelState) WithPoints(delta int, at time.Time) *UserLevelState {
	return s.WithTotal(s.CumulativePoints+delta, at)
}

func (s *UserLevelState) NeedsNotification() bool {
	return s.Level > s.LastNotifiedLevel
}

type GrantRequest struct {
	UserID      string     `json:"user_id"`
	Amount      int        `json:"amount"`
	SourceType  SourceType `json:"source_type"`
	SourceID    *string    `json:"source_id,omitempty"`
	Description *string    `json:"description,omitempty"`
}

func (r GrantRequest) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", domain.ErrInvalidRequest, r.Amount)
	}
	if !r.SourceType.Valid() {
		return fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidRequest, r.SourceType)
	}
	return nil
}

// PerUserResult reports the outcome of a batch grant for one distinct user.
type PerUserResult struct {
	UserID              string `json:"user_id"`
	Success             bool   `json:"success"`
	NewCumulativePoints int    `json:"new_cumulative_points"`
	NewLevel            int    `json:"new_level"`
	Err                 error  `json:"-"`
}

// Progress is what a profile page needs about a user's level.
type Progress struct {
	UserID string `json:"user_id"`
	progression.Progress
	LastNotifiedLevel int  `json:"last_notified_level"`
	NeedsNotification bool `json:"needs_notification"`
}
