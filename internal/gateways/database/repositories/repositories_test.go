package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/domain/badges"
	"github.com/ellavondegurechaff/progression/internal/domain/ranking"
)

// offlineDB renders queries without ever opening a connection.
func offlineDB(t *testing.T) *bun.DB {
	t.Helper()
	db := bun.NewDB(sql.OpenDB(pgdriver.NewConnector()), pgdialect.New())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTieBreakOrder(t *testing.T) {
	tests := []struct {
		tb   ranking.TieBreak
		want string
	}{
		{ranking.TieBreakUserID, "pt.user_id ASC"},
		{ranking.TieBreakEarliest, "MAX(pt.created_at) ASC, pt.user_id ASC"},
		{"", "MAX(pt.created_at) ASC, pt.user_id ASC"},
	}
	for _, tt := range tests {
		if got := tieBreakOrder(tt.tb); got != tt.want {
			t.Errorf("tieBreakOrder(%q) = %q, want %q", tt.tb, got, tt.want)
		}
	}
}

func TestRankQuery(t *testing.T) {
	repo := &rankingRepository{BaseRepository: NewBaseRepository(offlineDB(t)), tieBreak: ranking.TieBreakUserID}
	day := ranking.Period{
		Start: time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		q       ranking.Query
		want    []string
		notWant []string
	}{
		{
			name: "global",
			q:    ranking.Query{Scope: domain.ScopeGlobal, Limit: 100},
			want: []string{
				"ROW_NUMBER() OVER (ORDER BY SUM(pt.amount) DESC, pt.user_id ASC)",
				"HAVING (SUM(pt.amount) > 0)",
				"LIMIT 100",
			},
			notWant: []string{"user_regions", "created_at >="},
		},
		{
			name: "daily",
			q:    ranking.Query{Scope: domain.ScopeDaily, Limit: 10, Period: &day},
			want: []string{"pt.created_at >= '2024-05-19 00:00:00", "pt.created_at < '2024-05-20 00:00:00"},
		},
		{
			name: "region",
			q:    ranking.Query{Scope: domain.ScopeRegion, Sub: domain.Named("75"), Limit: 5},
			want: []string{"JOIN user_regions AS ur ON ur.user_id = pt.user_id", "ur.region = '75'"},
		},
		{
			name: "challenge",
			q:    ranking.Query{Scope: domain.ScopeChallenge, Sub: domain.Named("c-1"), Limit: 5},
			want: []string{"pt.source_type = 'CHALLENGE_COMPLETION'", "pt.source_id = 'c-1'"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := repo.rankQuery(tt.q)
			if err != nil {
				t.Fatalf("rankQuery() error = %v", err)
			}
			sql := sel.String()
			for _, w := range tt.want {
				if !strings.Contains(sql, w) {
					t.Errorf("query %q missing %q", sql, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(sql, w) {
					t.Errorf("query %q should not contain %q", sql, w)
				}
			}
		})
	}
}

func TestRankQuery_Invalid(t *testing.T) {
	repo := &rankingRepository{BaseRepository: NewBaseRepository(offlineDB(t))}
	tests := []struct {
		name string
		q    ranking.Query
		want error
	}{
		{"daily without period", ranking.Query{Scope: domain.ScopeDaily, Limit: 10}, domain.ErrInvalidRequest},
		{"zero limit", ranking.Query{Scope: domain.ScopeGlobal}, domain.ErrInvalidRequest},
		{"region without name", ranking.Query{Scope: domain.ScopeRegion, Limit: 10}, domain.ErrInvalidBadgeKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.rankQuery(tt.q); !errors.Is(err, tt.want) {
				t.Errorf("rankQuery() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	br := NewBaseRepository(nil)

	if err := br.HandleError("get", "user_badges", nil); err != nil {
		t.Errorf("HandleError(nil) = %v", err)
	}
	if err := br.HandleError("get", "user_badges", sql.ErrNoRows); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("HandleError(ErrNoRows) = %v, want ErrNotFound", err)
	}

	cause := errors.New("connection reset")
	err := br.HandleError("get", "user_badges", cause)
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) || !errors.Is(err, cause) {
		t.Errorf("HandleError(cause) = %v, want RepositoryError wrapping cause", err)
	}
}

func TestBadgeModelKeepsNullSubScope(t *testing.T) {
	global := toBadge(toBadgeModel(&badges.UserBadge{UserID: "u1", Scope: domain.ScopeGlobal, Sub: domain.Global(), Rank: 3}))
	if !global.Sub.IsGlobal() {
		t.Errorf("global badge came back as %v", global.Sub)
	}
	if m := toBadgeModel(global); m.SubScope != nil {
		t.Errorf("global badge stored sub_scope %q, want NULL", *m.SubScope)
	}

	region := toBadge(toBadgeModel(&badges.UserBadge{UserID: "u1", Scope: domain.ScopeRegion, Sub: domain.Named("B"), Rank: 3}))
	if name, ok := region.Sub.Value(); !ok || name != "B" {
		t.Errorf("region badge came back as %v", region.Sub)
	}
}
