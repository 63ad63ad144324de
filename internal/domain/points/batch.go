package points

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/progression/internal/domain"
)

// ledgerChunk holds whole users: a user's rows are never split across chunks.
type ledgerChunk struct {
	users []string
	rows  []*PointTransaction
}

// GrantPointsBatch applies many grants, reporting one result per distinct user
// in first-appearance order. A failed state fetch aborts the whole batch
// before anything is written; later failures only affect the users involved.
func (s *service) GrantPointsBatch(ctx context.Context, reqs []GrantRequest) ([]PerUserResult, error) {
	if len(reqs) == 0 {
		return []PerUserResult{}, nil
	}
	for i, req := range reqs {
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
	}

	now := s.now()
	order := make([]string, 0, len(reqs))
	deltas := make(map[string]int, len(reqs))
	rows := make(map[string][]*PointTransaction, len(reqs))
	for _, req := range reqs {
		if _, seen := deltas[req.UserID]; !seen {
			order = append(order, req.UserID)
		}
		deltas[req.UserID] += req.Amount
		rows[req.UserID] = append(rows[req.UserID], newTransaction(req, now))
	}

	current, err := s.fetchStates(ctx, order)
	if err != nil {
		return nil, err
	}

	next := make(map[string]*UserLevelState, len(order))
	for _, userID := range order {
		state, ok := current[userID]
		if !ok {
			state = NewLevelState(userID)
		}
		next[userID] = state.WithPoints(deltas[userID], now)
	}

	failed := make(map[string]error)
	for _, chunk := range chunkLedger(order, rows, s.cfg.BatchChunkSize) {
		if err := s.repository.InsertTransactions(ctx, chunk.rows); err != nil {
			slog.Error("Failed to insert ledger chunk",
				slog.String("type", "points"),
				slog.Int("users", len(chunk.users)),
				slog.Int("rows", len(chunk.rows)),
				slog.Any("error", err),
			)
			for _, userID := range chunk.users {
				failed[userID] = domain.InsertFailed("insert point transactions", err)
			}
		}
	}

	landed := make([]*UserLevelState, 0, len(order))
	for _, userID := range order {
		if _, ok := failed[userID]; !ok {
			landed = append(landed, next[userID])
		}
	}

	for _, userID := range s.saveStates(ctx, landed, failed) {
		delta := deltas[userID]
		state, err := s.writeWithRetry(ctx, userID, func(c *UserLevelState) *UserLevelState {
			return c.WithPoints(delta, now)
		})
		if err != nil {
			failed[userID] = err
			continue
		}
		next[userID] = state
	}

	results := make([]PerUserResult, 0, len(order))
	for _, userID := range order {
		s.invalidate(userID)
		if err, ok := failed[userID]; ok {
			results = append(results, PerUserResult{UserID: userID, Err: err})
			continue
		}
		results = append(results, PerUserResult{
			UserID:              userID,
			Success:             true,
			NewCumulativePoints: next[userID].CumulativePoints,
			NewLevel:            next[userID].Level,
		})
	}

	slog.Info("Batch grant applied",
		slog.String("type", "points"),
		slog.Int("requests", len(reqs)),
		slog.Int("users", len(order)),
		slog.Int("failed", len(failed)),
	)
	return results, nil
}

func (s *service) fetchStates(ctx context.Context, userIDs []string) (map[string]*UserLevelState, error) {
	states := make(map[string]*UserLevelState, len(userIDs))
	for start := 0; start < len(userIDs); start += s.cfg.BatchChunkSize {
		end := min(start+s.cfg.BatchChunkSize, len(userIDs))
		fetched, err := s.repository.GetLevelStates(ctx, userIDs[start:end])
		if err != nil {
			return nil, domain.BatchFetchFailed("fetch level states", err)
		}
		for _, state := range fetched {
			states[state.UserID] = state
		}
	}
	return states, nil
}

// saveStates writes states in chunks and returns the users whose version
// guard rejected the write. Write errors are recorded in failed.
func (s *service) saveStates(ctx context.Context, states []*UserLevelState, failed map[string]error) []string {
	var conflicted []string
	for start := 0; start < len(states); start += s.cfg.BatchChunkSize {
		chunk := states[start:min(start+s.cfg.BatchChunkSize, len(states))]

		written, err := s.repository.SaveLevelStates(ctx, chunk)
		if err != nil {
			slog.Warn("Batched level state write failed, falling back to per-user writes",
				slog.String("type", "points"),
				slog.Int("users", len(chunk)),
				slog.Any("error", err),
			)
			conflicted = append(conflicted, s.saveEach(ctx, chunk, failed)...)
			continue
		}

		ok := make(map[string]struct{}, len(written))
		for _, userID := range written {
			ok[userID] = struct{}{}
		}
		for _, state := range chunk {
			if _, hit := ok[state.UserID]; !hit {
				conflicted = append(conflicted, state.UserID)
			}
		}
	}
	return conflicted
}

func (s *service) saveEach(ctx context.Context, states []*UserLevelState, failed map[string]error) []string {
	var conflicted []string
	for _, state := range states {
		written, err := s.repository.SaveLevelStates(ctx, []*UserLevelState{state})
		switch {
		case err != nil:
			failed[state.UserID] = domain.WriteFailed("save level state", err)
		case len(written) == 0:
			conflicted = append(conflicted, state.UserID)
		}
	}
	return conflicted
}

// chunkLedger packs users' rows into chunks of at most size rows. A user with
// more than size rows gets a chunk of their own.
func chunkLedger(order []string, rows map[string][]*PointTransaction, size int) []ledgerChunk {
	var (
		chunks  []ledgerChunk
		current ledgerChunk
	)
	for _, userID := range order {
		userRows := rows[userID]
		if len(current.rows) > 0 && len(current.rows)+len(userRows) > size {
			chunks = append(chunks, current)
			current = ledgerChunk{}
		}
		current.users = append(current.users, userID)
		current.rows = append(current.rows, userRows...)
	}
	if len(current.rows) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
