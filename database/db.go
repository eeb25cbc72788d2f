package database

import (
	"context"
	"database/sql"
)

type contextKey string

const dbContextKey contextKey = "db"

// WithDB adds a database connection to the context.
func WithDB(ctx context.Context, db Database) context.Context {
	return context.WithValue(ctx, dbContextKey, db)
}

// FromContext gets the database connection from the context.
func FromContext(ctx context.Context) Database {
	db, ok := ctx.Value(dbContextKey).(Database)
	if !ok {
		return nil
	}
	return db
}

// Database represents a connection to a database.
type Database interface {
	// QueryContext executes a query that returns rows.
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	// QueryRowContext executes a query that returns a single row.
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	// ExecContext executes a query that doesn't return rows.
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Close() error
}
