package points_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/ellavondegurechaff/progression/internal/domain"
	"github.com/ellavondegurechaff/progression/internal/domain/points"
)

// memRepository is a version-guarded in-memory Repository.
type memRepository struct {
	mu     sync.Mutex
	txs    []*points.PointTransaction
	states map[string]points.UserLevelState

	stateReads int

	// failInsertFor fails any ledger insert carrying a row of these users.
	failInsertFor map[string]bool
	// failBatchSave fails SaveLevelStates calls with more than one state.
	failBatchSave bool
	// beforeSave runs once, ahead of the first SaveLevelStates call.
	beforeSave func(m *memRepository)
}

func newMemRepository() *memRepository {
	return &memRepository{states: make(map[string]points.UserLevelState)}
}

func (m *memRepository) InsertTransaction(ctx context.Context, tx *points.PointTransaction) error {
	return m.InsertTransactions(ctx, []*points.PointTransaction{tx})
}

func (m *memRepository) InsertTransactions(_ context.Context, txs []*points.PointTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range txs {
		if m.failInsertFor[tx.UserID] {
			return errors.New("ledger unavailable")
		}
	}
	m.txs = append(m.txs, txs...)
	return nil
}

func (m *memRepository) ListTransactions(_ context.Context, userID string, limit int) ([]*points.PointTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*points.PointTransaction
	for i := len(m.txs) - 1; i >= 0 && len(out) < limit; i-- {
		if m.txs[i].UserID == userID {
			out = append(out, m.txs[i])
		}
	}
	return out, nil
}

func (m *memRepository) SumTransactions(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, tx := range m.txs {
		if tx.UserID == userID {
			total += tx.Amount
		}
	}
	return total, nil
}

func (m *memRepository) GetLevelState(_ context.Context, userID string) (*points.UserLevelState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stateReads++
	state, ok := m.states[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &state, nil
}

func (m *memRepository) GetLevelStates(_ context.Context, userIDs []string) ([]*points.UserLevelState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*points.UserLevelState
	for _, id := range userIDs {
		if state, ok := m.states[id]; ok {
			out = append(out, &state)
		}
	}
	return out, nil
}

func (m *memRepository) SaveLevelStates(_ context.Context, states []*points.UserLevelState) ([]string, error) {
	m.mu.Lock()
	if hook := m.beforeSave; hook != nil {
		m.beforeSave = nil
		m.mu.Unlock()
		hook(m)
		m.mu.Lock()
	}
	defer m.mu.Unlock()

	if m.failBatchSave && len(states) > 1 {
		return nil, errors.New("batch upsert rejected")
	}

	var written []string
	for _, s := range states {
		cur, ok := m.states[s.UserID]
		if (!ok && s.Version == 1) || (ok && cur.Version == s.Version-1) {
			m.states[s.UserID] = *s
			written = append(written, s.UserID)
		}
	}
	return written, nil
}

func (m *memRepository) AcknowledgeLevel(_ context.Context, userID string, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[userID]
	if !ok {
		return domain.ErrNotFound
	}
	state.LastNotifiedLevel = max(state.LastNotifiedLevel, min(level, state.Level))
	m.states[userID] = state
	return nil
}

func (m *memRepository) state(userID string) (points.UserLevelState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[userID]
	return s, ok
}

func (m *memRepository) ledgerUsers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []string
	for _, tx := range m.txs {
		users = append(users, tx.UserID)
	}
	sort.Strings(users)
	return users
}
