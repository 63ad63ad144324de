package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/progression/internal/api"
	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/domain/badges"
	badgesmock "github.com/ellavondegurechaff/progression/internal/domain/badges/mock"
	"github.com/ellavondegurechaff/progression/internal/domain/orchestrator"
	"github.com/ellavondegurechaff/progression/internal/domain/points"
	pointsmock "github.com/ellavondegurechaff/progression/internal/domain/points/mock"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubRunner struct {
	summary orchestrator.Summary
	busy    bool
	calls   int
}

func (r *stubRunner) RunOnce(context.Context) (orchestrator.Summary, bool) {
	r.calls++
	if r.busy {
		return orchestrator.Summary{}, false
	}
	return r.summary, true
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *api.APIError   `json:"error"`
}

type fixture struct {
	points *pointsmock.MockService
	badges *badgesmock.MockService
	runner *stubRunner
	server *api.Server
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		points: pointsmock.NewMockService(ctrl),
		badges: badgesmock.NewMockService(ctrl),
		runner: &stubRunner{},
	}
	f.server = &api.Server{
		Points:  f.points,
		Badges:  f.badges,
		Runner:  f.runner,
		DB:      stubPinger{},
		Version: "test",
	}
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := api.NewApp(f.server).Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode body: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t)
	status, env := f.do(t, http.MethodGet, "/health", "")
	if status != http.StatusOK || !env.Success {
		t.Errorf("GET /health = %d %+v", status, env)
	}

	f.server.DB = stubPinger{err: errors.New("connection refused")}
	status, env = f.do(t, http.MethodGet, "/health", "")
	if status != http.StatusServiceUnavailable || env.Success {
		t.Errorf("GET /health with db down = %d %+v", status, env)
	}
}

func TestGrantPoints(t *testing.T) {
	f := newFixture(t)
	f.points.EXPECT().
		GrantPoints(gomock.Any(), points.GrantRequest{UserID: "u1", Amount: 120, SourceType: points.SourceBonus}).
		Return(&points.UserLevelState{UserID: "u1", Level: 3, CumulativePoints: 120, Version: 1}, nil)

	status, env := f.do(t, http.MethodPost, "/points/grant", `{"user_id":"u1","amount":120,"source_type":"BONUS"}`)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%+v)", status, env)
	}
	var state points.UserLevelState
	if err := json.Unmarshal(env.Data, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Level != 3 || state.CumulativePoints != 120 {
		t.Errorf("state = %+v", state)
	}
}

func TestGrantPoints_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("%w: amount must be positive", domain.ErrInvalidRequest), http.StatusBadRequest},
		{"insert failed", domain.InsertFailed("insert point transaction", errors.New("pq: disk full")), http.StatusInternalServerError},
		{"retries exhausted", domain.WriteFailed("save level state", domain.ErrConflict), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.points.EXPECT().GrantPoints(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			status, env := f.do(t, http.MethodPost, "/points/grant", `{"user_id":"u1","amount":0,"source_type":"BONUS"}`)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if env.Success || env.Error == nil {
				t.Fatalf("envelope = %+v, want error", env)
			}
			if strings.Contains(env.Error.Message, "disk full") {
				t.Errorf("storage detail leaked: %q", env.Error.Message)
			}
		})
	}
}

func TestGrantPoints_BadBody(t *testing.T) {
	f := newFixture(t)
	status, _ := f.do(t, http.MethodPost, "/points/grant", `{"user_id":`)
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestGrantPointsBatch(t *testing.T) {
	f := newFixture(t)
	f.points.EXPECT().
		GrantPointsBatch(gomock.Any(), gomock.Len(3)).
		Return([]points.PerUserResult{
			{UserID: "u1", Success: true, NewCumulativePoints: 150, NewLevel: 3},
			{UserID: "u2", Success: false, Err: domain.InsertFailed("insert ledger chunk", errors.New("timeout"))},
		}, nil)

	body := `{"grants":[
		{"user_id":"u1","amount":100,"source_type":"BONUS"},
		{"user_id":"u1","amount":50,"source_type":"BONUS"},
		{"user_id":"u2","amount":30,"source_type":"CHALLENGE_COMPLETION","source_id":"c1"}
	]}`
	status, env := f.do(t, http.MethodPost, "/points/batch", body)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%+v)", status, env)
	}

	var results []struct {
		UserID   string `json:"user_id"`
		Success  bool   `json:"success"`
		NewLevel int    `json:"new_level"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(env.Data, &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 2 || results[0].NewLevel != 3 || results[1].Success {
		t.Fatalf("results = %+v", results)
	}
	if !strings.Contains(results[1].Error, "insert failed") {
		t.Errorf("u2 error = %q, want insert failure", results[1].Error)
	}
}

func TestGrantPointsBatch_TooLarge(t *testing.T) {
	f := newFixture(t)

	var b strings.Builder
	b.WriteString(`{"grants":[`)
	for i := 0; i <= 10000; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"user_id":"u%d","amount":1,"source_type":"BONUS"}`, i)
	}
	b.WriteString(`]}`)

	status, _ := f.do(t, http.MethodPost, "/points/batch", b.String())
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestGrantPointsBatch_FetchFailed(t *testing.T) {
	f := newFixture(t)
	f.points.EXPECT().
		GrantPointsBatch(gomock.Any(), gomock.Any()).
		Return(nil, domain.BatchFetchFailed("fetch level states", errors.New("timeout")))

	status, env := f.do(t, http.MethodPost, "/points/batch", `{"grants":[{"user_id":"u1","amount":1,"source_type":"BONUS"}]}`)
	if status != http.StatusInternalServerError || env.Success {
		t.Errorf("status = %d %+v, want 500", status, env)
	}
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	f.points.EXPECT().History(gomock.Any(), "u1", points.DefaultHistoryLimit).Return(nil, nil)
	f.points.EXPECT().History(gomock.Any(), "u1", 5).Return([]*points.PointTransaction{{ID: "t1", UserID: "u1", Amount: 10}}, nil)

	if status, _ := f.do(t, http.MethodGet, "/users/u1/history", ""); status != http.StatusOK {
		t.Errorf("default limit status = %d", status)
	}
	status, env := f.do(t, http.MethodGet, "/users/u1/history?limit=5", "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"t1"`) {
		t.Errorf("limit=5: %d %s", status, env.Data)
	}
	if status, _ := f.do(t, http.MethodGet, "/users/u1/history?limit=-3", ""); status != http.StatusBadRequest {
		t.Errorf("negative limit status = %d, want 400", status)
	}
}

func TestAcknowledgeLevel(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.points.EXPECT().AcknowledgeLevel(gomock.Any(), "u1", 4).Return(nil),
		f.points.EXPECT().AcknowledgeLevel(gomock.Any(), "ghost", 2).
			Return(fmt.Errorf("acknowledge level for ghost: %w", domain.ErrNotFound)),
	)

	if status, _ := f.do(t, http.MethodPost, "/users/u1/level/ack", `{"level":4}`); status != http.StatusOK {
		t.Errorf("ack status = %d, want 200", status)
	}
	if status, _ := f.do(t, http.MethodPost, "/users/ghost/level/ack", `{"level":2}`); status != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", status)
	}
}

func TestGetProgressAndReconcile(t *testing.T) {
	f := newFixture(t)
	f.points.EXPECT().GetProgress(gomock.Any(), "u1").Return(&points.Progress{UserID: "u1", NeedsNotification: true}, nil)
	f.points.EXPECT().Reconcile(gomock.Any(), "u1").Return(&points.UserLevelState{UserID: "u1", Level: 2}, nil)

	status, env := f.do(t, http.MethodGet, "/users/u1/progress", "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"needs_notification":true`) {
		t.Errorf("progress = %d %s", status, env.Data)
	}
	if status, _ := f.do(t, http.MethodPost, "/points/reconcile/u1", ""); status != http.StatusOK {
		t.Errorf("reconcile status = %d", status)
	}
}

func TestBadges(t *testing.T) {
	f := newFixture(t)
	f.badges.EXPECT().ListBadges(gomock.Any(), "u1").Return(nil, nil)
	f.badges.EXPECT().PendingNotifications(gomock.Any(), "u1").Return([]*badges.UserBadge{
		{ID: 3, UserID: "u1", Scope: domain.ScopeGlobal, Sub: domain.Global(), Rank: 2},
	}, nil)
	f.badges.EXPECT().MarkNotified(gomock.Any(), "u1", gomock.Nil()).Return(1, nil)
	f.badges.EXPECT().MarkNotified(gomock.Any(), "u1", []int64{3}).Return(1, nil)

	status, env := f.do(t, http.MethodGet, "/users/u1/badges", "")
	if status != http.StatusOK || string(env.Data) != "[]" {
		t.Errorf("empty badge list = %d %s, want []", status, env.Data)
	}

	status, env = f.do(t, http.MethodGet, "/users/u1/badges/pending", "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"sub_scope":null`) {
		t.Errorf("pending = %d %s", status, env.Data)
	}

	if status, _ := f.do(t, http.MethodPost, "/users/u1/badges/ack", ""); status != http.StatusOK {
		t.Errorf("ack all status = %d", status)
	}
	if status, _ := f.do(t, http.MethodPost, "/users/u1/badges/ack", `{"ids":[3]}`); status != http.StatusOK {
		t.Errorf("ack ids status = %d", status)
	}
}

func TestRecalculateBadges(t *testing.T) {
	f := newFixture(t)
	f.runner.summary = orchestrator.Summary{Success: true, UpdatedCount: 4}

	status, env := f.do(t, http.MethodPost, "/badges/recalculate", "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"updated_count":4`) {
		t.Errorf("recalculate = %d %s", status, env.Data)
	}

	f.runner.busy = true
	if status, _ := f.do(t, http.MethodPost, "/badges/recalculate", ""); status != http.StatusConflict {
		t.Errorf("busy recalculate status = %d, want 409", status)
	}
	if f.runner.calls != 2 {
		t.Errorf("runner calls = %d, want 2", f.runner.calls)
	}
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)
	status, env := f.do(t, http.MethodGet, "/nope", "")
	if status != http.StatusNotFound || env.Success {
		t.Errorf("GET /nope = %d %+v", status, env)
	}
}
