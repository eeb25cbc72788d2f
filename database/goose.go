package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// MigrateUpFS applies all pending migrations from an embedded filesystem.
func MigrateUpFS(ctx context.Context, db Database, fsys fs.FS, dir string) error {
	rawDB, ok := db.(*sql.DB)
	if !ok {
		return errors.New("db is not a *sql.DB")
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.UpContext(ctx, rawDB, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// RunGooseMigration runs a goose migration command against the database at
// dbPath with migrations read from fsys.
func RunGooseMigration(ctx context.Context, command string, dbPath string, fsys fs.FS, dir string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to revert migration: %w", err)
		}
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
	return nil
}
