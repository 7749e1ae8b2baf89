package store

import (
	"context"
	"database/sql"
)

// DBTX is what the Postgres plan and user stores query through: the pool
// for single statements, or the *sql.Tx handed out by RunInTransaction so
// a plan rewrite and its task rows commit together.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
