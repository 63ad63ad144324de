package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/ellavondegurechaff/progression/internal/config"
	"github.com/ellavondegurechaff/progression/internal/gateways/database/models"
)

// DB owns a pgx pool for raw statements and a bun handle for repositories.
type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	if err := waitReachable(cfg); err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connected",
		slog.String("type", "db"),
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
	)
	return &DB{pool: pool, bunDB: newBunDB(cfg)}, nil
}

// waitReachable dials the server a few times before handing over to pgx, so a
// database that is still starting does not fail the first pool acquire.
func waitReachable(cfg config.DBConfig) error {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	var err error
	for i := 0; i < config.DialRetries; i++ {
		var conn net.Conn
		conn, err = net.DialTimeout("tcp", addr, config.NetworkDialTimeout)
		if err == nil {
			return conn.Close()
		}
		time.Sleep(config.DialRetryInterval)
	}
	return fmt.Errorf("database server unreachable after %d attempts: %w", config.DialRetries, err)
}

func buildConnString(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func newBunDB(cfg config.DBConfig) *bun.DB {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, sslMode)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if cfg.PoolSize > 0 {
		sqldb.SetMaxOpenConns(cfg.PoolSize)
	}
	return bun.NewDB(sqldb, pgdialect.New())
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", sql),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", sql),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", result.RowsAffected()),
	)
	return result, nil
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

var schemaTables = []any{
	(*models.PointTransaction)(nil),
	(*models.UserLevelState)(nil),
	(*models.UserBadge)(nil),
	(*models.Challenge)(nil),
	(*models.UserRegion)(nil),
}

var schemaIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_point_transactions_user_id ON point_transactions(user_id);",
	"CREATE INDEX IF NOT EXISTS idx_point_transactions_created_at ON point_transactions(created_at);",
	"CREATE INDEX IF NOT EXISTS idx_point_transactions_challenge ON point_transactions(source_id) WHERE source_type = 'CHALLENGE_COMPLETION';",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_badges_key ON user_badges(user_id, badge_scope, COALESCE(sub_scope, ''));",
	"CREATE INDEX IF NOT EXISTS idx_user_badges_unnotified ON user_badges(user_id) WHERE is_notified = false;",
	"CREATE INDEX IF NOT EXISTS idx_user_regions_region ON user_regions(region);",
	"CREATE INDEX IF NOT EXISTS idx_challenges_uncapped ON challenges(id) WHERE max_completions IS NULL AND is_visible = true;",
}

var schemaChecks = []string{
	"ALTER TABLE point_transactions ADD CONSTRAINT chk_point_transactions_source CHECK (source_type IN ('CHALLENGE_COMPLETION', 'BONUS'))",
	"ALTER TABLE user_level_states ADD CONSTRAINT chk_user_level_states_bounds CHECK (level >= 1 AND cumulative_points >= 0)",
	"ALTER TABLE user_badges ADD CONSTRAINT chk_user_badges_rank CHECK (rank >= 1)",
	"ALTER TABLE user_badges ADD CONSTRAINT chk_user_badges_scope CHECK (badge_scope IN ('GLOBAL', 'DAILY', 'REGION', 'CHALLENGE'))",
}

// InitializeSchema creates the engine's tables, constraints and indexes. It
// is safe to run repeatedly.
func (db *DB) InitializeSchema(ctx context.Context) error {
	for _, model := range schemaTables {
		if _, err := db.bunDB.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, stmt := range schemaChecks {
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			if isDuplicateObject(err) {
				continue
			}
			return fmt.Errorf("failed to add constraint: %w", err)
		}
	}

	for _, idx := range schemaIndexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	slog.Info("Database schema initialized", slog.String("type", "db"), slog.Int("tables", len(schemaTables)))
	return nil
}

// ResetTables empties every engine table.
func (db *DB) ResetTables(ctx context.Context) error {
	names := []string{"point_transactions", "user_level_states", "user_badges", "challenges", "user_regions"}
	stmt := "TRUNCATE TABLE " + strings.Join(names, ", ") + " RESTART IDENTITY CASCADE"
	if _, err := db.ExecWithLog(ctx, stmt); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	slog.Warn("Engine tables truncated", slog.String("type", "db"), slog.Any("tables", names))
	return nil
}

func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	// 42710 duplicate_object
	return errors.As(err, &pgErr) && pgErr.Code == "42710"
}
