package points

import "time"

func (s *service) SetClock(now func() time.Time) {
	s.now = now
}

// LedgerChunkUsers exposes the user grouping of chunkLedger.
func LedgerChunkUsers(order []string, rows map[string][]*PointTransaction, size int) [][]string {
	var users [][]string
	for _, chunk := range chunkLedger(order, rows, size) {
		users = append(users, chunk.users)
	}
	return users
}
