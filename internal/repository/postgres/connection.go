package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"docit/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Profiles         string
	Folders          string
	Lists            string
	Items            string
	Products         string
	Prices           string
	CheckoutSessions string
	Subscriptions    string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Profiles:         fmt.Sprintf("%sprofiles", prefix),
		Folders:          fmt.Sprintf("%sfolders", prefix),
		Lists:            fmt.Sprintf("%slists", prefix),
		Items:            fmt.Sprintf("%sitems", prefix),
		Products:         fmt.Sprintf("%sproducts", prefix),
		Prices:           fmt.Sprintf("%sprices", prefix),
		CheckoutSessions: fmt.Sprintf("%scheckout_sessions", prefix),
		Subscriptions:    fmt.Sprintf("%ssubscriptions", prefix),
	}
}

// All returns every table, children before parents, for drop/truncate.
func (t *TableNames) All() []string {
	return []string{
		t.Items, t.Lists, t.Folders, t.Profiles,
		t.Subscriptions, t.CheckoutSessions, t.Prices, t.Products,
	}
}

// DBTX is an interface that both *pgxpool.Pool and pgx.Tx implement
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...interface{}) pgx.Row
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Port 6543 is Supabase's transaction pooler (PgBouncer), which does not
// support prepared statements. There we switch to QueryExecModeCacheDescribe
// unless the connection string already picked a mode via
// ?default_query_exec_mode=...
//
// Table prefixes are interpolated with fmt.Sprintf before the SQL reaches
// the server, so each environment gets its own cached statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or the pool when the
// call is not part of a transaction.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if tx, ok := repositories.TxFrom[pgx.Tx](ctx); ok {
		return tx
	}
	return pool
}
