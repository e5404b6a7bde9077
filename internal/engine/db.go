package engine

import (
	"context"
	"database/sql"
)

// DB is the subset of *sql.DB and *sql.Conn the engine needs. Jobs pass a single
// *sql.Conn so session settings apply to every statement.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
