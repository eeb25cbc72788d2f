package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Import SQLite driver

	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/tmeire/polyglot/database"
)

// New creates a new SQLite database connection with OpenTelemetry tracing.
func New(dbPath string) (database.Database, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	sqlDB, err := otelsql.Open("sqlite3", dbPath, otelsql.WithAttributes(
		semconv.DBSystemSqlite,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Register DB stats to meter
	_, err = otelsql.RegisterDBStatsMetrics(sqlDB, otelsql.WithAttributes(
		semconv.DBSystemSqlite,
	))
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to register db metrics: %w", err)
	}

	return sqlDB, nil
}
