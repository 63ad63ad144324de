package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/ellavondegurechaff/progression/internal/domain"
)

// TieBreak orders users with equal point totals.
type TieBreak string

const (
	// TieBreakUserID ranks equal totals by ascending user id.
	TieBreakUserID TieBreak = "user_id"
	// TieBreakEarliest ranks first whoever reached the total first, then by user id.
	TieBreakEarliest TieBreak = "earliest"
)

func ParseTieBreak(v string) (TieBreak, error) {
	switch tb := TieBreak(v); tb {
	case TieBreakUserID, TieBreakEarliest:
		return tb, nil
	case "":
		return TieBreakEarliest, nil
	}
	return "", fmt.Errorf("%w: unknown tie break %q", domain.ErrInvalidRequest, v)
}

// Period is the half-open interval [Start, End).
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

type Query struct {
	Scope  domain.BadgeScope
	Sub    domain.SubScope
	Limit  int
	Period *Period
}

// Source returns the top users of a scope ordered by points earned, rank 1
// first. Ranks are contiguous and start at 1.
type Source interface {
	Rank(ctx context.Context, q Query) ([]domain.RankedUser, error)
}
