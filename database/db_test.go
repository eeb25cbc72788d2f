package database

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Fatal("empty context should carry no database")
	}

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	ctx := WithDB(context.Background(), db)
	assert.Equal(t, Database(db), FromContext(ctx))
}

func TestMiddleware(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	var seen Database
	h := Middleware(db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, Database(db), seen)
}

func TestMigrateUpFSRequiresSQLDB(t *testing.T) {
	err := MigrateUpFS(context.Background(), fakeDatabase{}, nil, "migrations")
	require.Error(t, err)
}

type fakeDatabase struct{}

func (fakeDatabase) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}
func (fakeDatabase) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}
func (fakeDatabase) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}
func (fakeDatabase) Close() error { return nil }
