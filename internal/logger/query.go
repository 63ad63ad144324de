package logger

import (
	"log/slog"
	"time"
)

// QueryLogger times one repository call and logs its outcome.
type QueryLogger struct {
	Operation string
	Table     string
	StartTime time.Time
}

func NewQueryLogger(operation, table string) *QueryLogger {
	return &QueryLogger{
		Operation: operation,
		Table:     table,
		StartTime: time.Now(),
	}
}

// Log records err at error level and successes at debug level.
func (l *QueryLogger) Log(err error, rowsAffected int64) {
	duration := time.Since(l.StartTime)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", l.Operation),
			slog.String("table", l.Table),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", l.Operation),
		slog.String("table", l.Table),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", rowsAffected),
	)
}
