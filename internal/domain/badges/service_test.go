package badges_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/domain/badges"
	"github.com/ellavondegurechaff/progression/internal/domain/badges/mock"
)

type badgeKey struct {
	userID string
	scope  domain.BadgeScope
	sub    domain.SubScope
}

// memRepository enforces the same uniqueness and rank guard as the SQL store.
type memRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[badgeKey]*badges.UserBadge
}

func newMemRepository() *memRepository {
	return &memRepository{rows: make(map[badgeKey]*badges.UserBadge)}
}

func (m *memRepository) FindBadge(_ context.Context, userID string, scope domain.BadgeScope, sub domain.SubScope) (*badges.UserBadge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[badgeKey{userID, scope, sub}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memRepository) InsertBadge(_ context.Context, badge *badges.UserBadge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := badgeKey{badge.UserID, badge.Scope, badge.Sub}
	if _, ok := m.rows[key]; ok {
		return domain.ErrConflict
	}
	m.nextID++
	cp := *badge
	cp.ID = m.nextID
	m.rows[key] = &cp
	return nil
}

func (m *memRepository) ImproveBadge(_ context.Context, id int64, rank int, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.ID == id && b.Rank > rank {
			b.Rank = rank
			b.AchievedAt = at
			b.IsNotified = false
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepository) ListBadges(_ context.Context, userID string) ([]*badges.UserBadge, error) {
	return m.list(userID, func(*badges.UserBadge) bool { return true }), nil
}

func (m *memRepository) ListUnnotified(_ context.Context, userID string) ([]*badges.UserBadge, error) {
	return m.list(userID, func(b *badges.UserBadge) bool { return !b.IsNotified }), nil
}

func (m *memRepository) MarkNotified(_ context.Context, userID string, ids []int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	n := 0
	for _, b := range m.rows {
		if b.UserID == userID && !b.IsNotified && (len(ids) == 0 || want[b.ID]) {
			b.IsNotified = true
			n++
		}
	}
	return n, nil
}

func (m *memRepository) list(userID string, keep func(*badges.UserBadge) bool) []*badges.UserBadge {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*badges.UserBadge
	for _, b := range m.rows {
		if b.UserID == userID && keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out
}

func Test_service_UpdateBadge_Idempotent(t *testing.T) {
	repo := newMemRepository()
	s := badges.NewService(repo)
	ctx := context.Background()

	first, err := s.UpdateBadge(ctx, "u1", domain.ScopeGlobal, domain.Global(), 4)
	if err != nil || !first.Updated {
		t.Fatalf("first UpdateBadge() = %+v, %v, want updated", first, err)
	}
	again, err := s.UpdateBadge(ctx, "u1", domain.ScopeGlobal, domain.Global(), 4)
	if err != nil || again.Updated {
		t.Fatalf("repeat UpdateBadge() = %+v, %v, want not updated", again, err)
	}
	if len(repo.rows) != 1 {
		t.Errorf("rows = %d, want 1", len(repo.rows))
	}
}

func Test_service_UpdateBadge_Monotonic(t *testing.T) {
	repo := newMemRepository()
	s := badges.NewService(repo)
	ctx := context.Background()

	ranks := []int{5, 3, 3, 8, 1}
	want := []bool{true, true, false, false, true}
	for i, rank := range ranks {
		got, err := s.UpdateBadge(ctx, "u1", domain.ScopeRegion, domain.Named("75"), rank)
		if err != nil {
			t.Fatalf("UpdateBadge(%d) error = %v", rank, err)
		}
		if got.Updated != want[i] {
			t.Errorf("UpdateBadge(%d).Updated = %v, want %v", rank, got.Updated, want[i])
		}
	}

	b, err := repo.FindBadge(ctx, "u1", domain.ScopeRegion, domain.Named("75"))
	if err != nil {
		t.Fatalf("FindBadge() error = %v", err)
	}
	if b.Rank != 1 {
		t.Errorf("final rank = %d, want 1", b.Rank)
	}
}

func Test_service_UpdateBadge_NullKeyIndependence(t *testing.T) {
	repo := newMemRepository()
	s := badges.NewService(repo)
	ctx := context.Background()

	if _, err := s.UpdateBadge(ctx, "u1", domain.ScopeGlobal, domain.Global(), 10); err != nil {
		t.Fatalf("UpdateBadge(GLOBAL) error = %v", err)
	}
	got, err := s.UpdateBadge(ctx, "u1", domain.ScopeRegion, domain.Named("B"), 20)
	if err != nil {
		t.Fatalf("UpdateBadge(REGION B) error = %v", err)
	}
	if !got.Updated {
		t.Errorf("REGION B badge should be created independently of GLOBAL")
	}
	if len(repo.rows) != 2 {
		t.Errorf("rows = %d, want 2", len(repo.rows))
	}
	g, _ := repo.FindBadge(ctx, "u1", domain.ScopeGlobal, domain.Global())
	if g.Rank != 10 {
		t.Errorf("GLOBAL rank = %d, want 10", g.Rank)
	}
}

func Test_service_UpdateBadge_Validation(t *testing.T) {
	tests := []struct {
		name    string
		scope   domain.BadgeScope
		sub     domain.SubScope
		rank    int
		wantErr error
	}{
		{"zero rank", domain.ScopeGlobal, domain.Global(), 0, domain.ErrInvalidRequest},
		{"global with name", domain.ScopeGlobal, domain.Named("x"), 1, domain.ErrInvalidBadgeKey},
		{"challenge without name", domain.ScopeChallenge, domain.Global(), 1, domain.ErrInvalidBadgeKey},
	}

	s := badges.NewService(mock.NewMockRepository(gomock.NewController(t)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.UpdateBadge(context.Background(), "u1", tt.scope, tt.sub, tt.rank)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateBadge() error = %v, want %v", err, tt.wantErr)
			}
			if got.Updated {
				t.Errorf("UpdateBadge() updated on invalid input")
			}
		})
	}
}

func Test_service_UpdateBadge_LookupFailed(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().
		FindBadge(gomock.Any(), "u1", domain.ScopeDaily, domain.Global()).
		Return(nil, errors.New("connection reset"))

	s := badges.NewService(repo)
	got, err := s.UpdateBadge(context.Background(), "u1", domain.ScopeDaily, domain.Global(), 2)
	if !errors.Is(err, domain.ErrLookupFailed) {
		t.Fatalf("UpdateBadge() error = %v, want ErrLookupFailed", err)
	}
	if got.Updated {
		t.Errorf("UpdateBadge() updated after lookup failure")
	}
}

func Test_service_UpdateBadge_InsertRace(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	gomock.InOrder(
		repo.EXPECT().
			FindBadge(gomock.Any(), "u1", domain.ScopeGlobal, domain.Global()).
			Return(nil, domain.ErrNotFound),
		repo.EXPECT().
			InsertBadge(gomock.Any(), gomock.Any()).
			Return(domain.ErrConflict),
		repo.EXPECT().
			FindBadge(gomock.Any(), "u1", domain.ScopeGlobal, domain.Global()).
			Return(&badges.UserBadge{ID: 7, UserID: "u1", Scope: domain.ScopeGlobal, Rank: 9}, nil),
		repo.EXPECT().
			ImproveBadge(gomock.Any(), int64(7), 3, gomock.Any()).
			Return(true, nil),
	)

	s := badges.NewService(repo)
	got, err := s.UpdateBadge(context.Background(), "u1", domain.ScopeGlobal, domain.Global(), 3)
	if err != nil {
		t.Fatalf("UpdateBadge() error = %v", err)
	}
	want := badges.UpdateResult{Updated: true, Rank: 3, PreviousRank: 9}
	if got != want {
		t.Errorf("UpdateBadge() = %+v, want %+v", got, want)
	}
}

func Test_service_UpdateBadge_ConcurrentImprovementWins(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().
		FindBadge(gomock.Any(), "u1", domain.ScopeGlobal, domain.Global()).
		Return(&badges.UserBadge{ID: 7, UserID: "u1", Scope: domain.ScopeGlobal, Rank: 9}, nil)
	repo.EXPECT().
		ImproveBadge(gomock.Any(), int64(7), 5, gomock.Any()).
		Return(false, nil)

	s := badges.NewService(repo)
	got, err := s.UpdateBadge(context.Background(), "u1", domain.ScopeGlobal, domain.Global(), 5)
	if err != nil {
		t.Fatalf("UpdateBadge() error = %v", err)
	}
	if got.Updated {
		t.Errorf("UpdateBadge() = %+v, want not updated when guard rejects", got)
	}
}

func Test_service_Notifications(t *testing.T) {
	repo := newMemRepository()
	s := badges.NewService(repo)
	ctx := context.Background()

	for _, sub := range []string{"A", "B"} {
		if _, err := s.UpdateBadge(ctx, "u1", domain.ScopeRegion, domain.Named(sub), 2); err != nil {
			t.Fatalf("UpdateBadge() error = %v", err)
		}
	}

	pending, err := s.PendingNotifications(ctx, "u1")
	if err != nil || len(pending) != 2 {
		t.Fatalf("PendingNotifications() = %d, %v, want 2", len(pending), err)
	}

	n, err := s.MarkNotified(ctx, "u1", []int64{pending[0].ID})
	if err != nil || n != 1 {
		t.Fatalf("MarkNotified() = %d, %v, want 1", n, err)
	}
	if pending, _ = s.PendingNotifications(ctx, "u1"); len(pending) != 1 {
		t.Errorf("pending after ack = %d, want 1", len(pending))
	}

	// improving an acknowledged badge makes it pending again
	if _, err := s.UpdateBadge(ctx, "u1", domain.ScopeRegion, domain.Named("A"), 1); err != nil {
		t.Fatalf("UpdateBadge() error = %v", err)
	}
	if _, err := s.MarkNotified(ctx, "u1", nil); err != nil {
		t.Fatalf("MarkNotified(all) error = %v", err)
	}
	if pending, _ = s.PendingNotifications(ctx, "u1"); len(pending) != 0 {
		t.Errorf("pending after ack all = %d, want 0", len(pending))
	}
}
