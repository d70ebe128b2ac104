package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cookshelf/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations.
// DB is the default executor (normally a *pgxpool.Pool); repositories that
// find a transaction in the context use it instead.
type RepositoryConfig struct {
	DB     repositories.DBTX
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users       string
	RecipeBooks string
	Recipes     string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:       fmt.Sprintf("%susers", prefix),
		RecipeBooks: fmt.Sprintf("%srecipe_books", prefix),
		Recipes:     fmt.Sprintf("%srecipes", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// By default pgx caches prepared statements (QueryExecModeCacheStatement).
// PgBouncer in transaction pooling mode (port 6543 on Supabase) does not
// support prepared statements, so when that port is detected the pool is
// switched to QueryExecModeCacheDescribe, which keeps the extended protocol
// but caches statement descriptions instead of server-side statements. An
// explicit ?default_query_exec_mode= parameter in the connection string
// takes precedence over the auto-detection.
//
// The fmt.Sprintf table prefixes (dev_, test_, prod_) are safe with
// prepared statements because the SQL string is interpolated before being
// sent to the database; each environment gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction;
// otherwise it returns the configured default executor. This lets
// repositories automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, db repositories.DBTX) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return db
}
