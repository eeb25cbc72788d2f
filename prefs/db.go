package prefs

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/tmeire/polyglot"
	"github.com/tmeire/polyglot/database"
)

//go:embed migrations
var migrations embed.FS

// DBStore persists preferences in the preferences table, one row per client.
type DBStore struct {
	db database.Database
}

var _ Store = (*DBStore)(nil)

// NewDBStore applies the schema migrations and returns a database-backed
// preference store.
func NewDBStore(ctx context.Context, db database.Database) (*DBStore, error) {
	if err := database.MigrateUpFS(ctx, db, migrations, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to migrate preferences database: %w", err)
	}
	return &DBStore{db: db}, nil
}

// Migrate runs a goose migration command (up, down, status) against the
// preferences database at dbPath.
func Migrate(ctx context.Context, command, dbPath string) error {
	return database.RunGooseMigration(ctx, command, dbPath, migrations, "migrations")
}

func (s *DBStore) Load(ctx context.Context, clientID string) (Preferences, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT language, theme FROM preferences WHERE client_id = ?", clientID)

	var lang, theme string
	if err := row.Scan(&lang, &theme); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Preferences{}, false, nil
		}
		return Preferences{}, false, err
	}
	return Preferences{Language: polyglot.Language(lang), Theme: Theme(theme)}, true, nil
}

func (s *DBStore) Save(ctx context.Context, clientID string, p Preferences) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (client_id, language, theme, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(client_id) DO UPDATE SET
			language = excluded.language,
			theme = excluded.theme,
			updated_at = CURRENT_TIMESTAMP`,
		clientID, string(p.Language), string(p.Theme))
	return err
}
