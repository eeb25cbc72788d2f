package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmeire/polyglot"
	"github.com/tmeire/polyglot/prefs"
)

// memPrefsStore is an in-memory prefs.Store for handler tests.
type memPrefsStore struct {
	mu   sync.Mutex
	data map[string]prefs.Preferences
}

func newMemPrefsStore() *memPrefsStore {
	return &memPrefsStore{data: make(map[string]prefs.Preferences)}
}

func (m *memPrefsStore) Load(ctx context.Context, clientID string) (prefs.Preferences, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.data[clientID]
	return p, ok, nil
}

func (m *memPrefsStore) Save(ctx context.Context, clientID string, p prefs.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[clientID] = p
	return nil
}

// newTestServer builds a server over an in-memory registry with every pair
// registered.
func newTestServer(t *testing.T, prefsStore prefs.Store) *Server {
	t.Helper()

	registry := polyglot.NewRegistry()
	for _, ns := range polyglot.Namespaces() {
		for _, lang := range polyglot.Languages() {
			registry.Register(ns, lang, func(ctx context.Context) (*polyglot.Bundle, error) {
				return polyglot.NewBundle(map[string]any{
					"title": string(ns) + "/" + string(lang),
				}), nil
			})
		}
	}
	require.NoError(t, registry.Validate())

	loader := polyglot.NewLoader(registry)
	return New(Config{
		Registry:        registry,
		Loader:          loader,
		Store:           polyglot.NewStore(loader),
		Routes:          polyglot.DefaultRouteTable(),
		PrefsStore:      prefsStore,
		DefaultLanguage: polyglot.Hebrew,
	})
}

func TestHandleTranslations(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/translations/en/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "dashboard/en", body["title"])
}

func TestHandleTranslationsUnknownLanguage(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/translations/fr/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleTranslationsUnknownNamespace(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/translations/en/payments", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleTranslationsFetchFailure(t *testing.T) {
	registry := polyglot.NewRegistry()
	registry.Register(polyglot.NamespaceCommon, polyglot.English,
		func(ctx context.Context) (*polyglot.Bundle, error) {
			return nil, errors.New("backend down")
		})
	loader := polyglot.NewLoader(registry)
	srv := New(Config{
		Registry: registry,
		Loader:   loader,
		Store:    polyglot.NewStore(loader),
		Routes:   polyglot.DefaultRouteTable(),
	})

	req := httptest.NewRequest(http.MethodGet, "/translations/en/common", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleTranslationsUnregisteredPair(t *testing.T) {
	registry := polyglot.NewRegistry()
	loader := polyglot.NewLoader(registry)
	srv := New(Config{
		Registry: registry,
		Loader:   loader,
		Store:    polyglot.NewStore(loader),
		Routes:   polyglot.DefaultRouteTable(),
	})

	req := httptest.NewRequest(http.MethodGet, "/translations/en/common", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandlePreload(t *testing.T) {
	srv := newTestServer(t, nil)

	body := strings.NewReader(`{"path": "/billing", "language": "en"}`)
	req := httptest.NewRequest(http.MethodPost, "/preload", body)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Namespaces []polyglot.Namespace `json:"namespaces"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []polyglot.Namespace{polyglot.NamespaceCommon, polyglot.NamespaceBilling}, resp.Namespaces)

	assert.True(t, srv.loader.IsCached(polyglot.English, polyglot.NamespaceCommon))
	assert.True(t, srv.loader.IsCached(polyglot.English, polyglot.NamespaceBilling))
}

func TestHandlePreloadUnknownRoute(t *testing.T) {
	srv := newTestServer(t, nil)

	body := strings.NewReader(`{"path": "/nowhere"}`)
	req := httptest.NewRequest(http.MethodPost, "/preload", body)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Namespaces []polyglot.Namespace `json:"namespaces"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []polyglot.Namespace{polyglot.NamespaceCommon}, resp.Namespaces)
}

func TestHandlePreloadInvalidBody(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/preload", strings.NewReader("{oops"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePreloadUnknownLanguage(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/preload", strings.NewReader(`{"path": "/", "language": "fr"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPreferencesDefaults(t *testing.T) {
	handler := newTestServer(t, newMemPrefsStore()).Handler()

	req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var p prefs.Preferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, prefs.Defaults(), p)

	// Side effects surface as response headers.
	assert.Equal(t, "he", rec.Header().Get("Content-Language"))
	assert.Equal(t, "rtl", rec.Header().Get("X-Text-Direction"))
	assert.Equal(t, "light", rec.Header().Get("X-Theme"))
}

func TestPutPreferences(t *testing.T) {
	store := newMemPrefsStore()
	handler := newTestServer(t, store).Handler()

	body := strings.NewReader(`{"language": "en", "theme": "dark"}`)
	req := httptest.NewRequest(http.MethodPut, "/preferences", body)
	req.AddCookie(&http.Cookie{Name: clientCookie, Value: "client-1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var p prefs.Preferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, polyglot.English, p.Language)
	assert.Equal(t, prefs.Dark, p.Theme)

	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	assert.Equal(t, "ltr", rec.Header().Get("X-Text-Direction"))
	assert.Equal(t, "dark", rec.Header().Get("X-Theme"))

	// Persisted under the cookie's client id.
	stored, ok, err := store.Load(context.Background(), "client-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p, stored)
}

func TestPutPreferencesRejectsUnknownLanguage(t *testing.T) {
	handler := newTestServer(t, newMemPrefsStore()).Handler()

	req := httptest.NewRequest(http.MethodPut, "/preferences", strings.NewReader(`{"language": "fr"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPreferences(t *testing.T) {
	store := newMemPrefsStore()
	store.data["client-1"] = prefs.Preferences{Language: polyglot.English, Theme: prefs.Dark}
	handler := newTestServer(t, store).Handler()

	req := httptest.NewRequest(http.MethodDelete, "/preferences", nil)
	req.AddCookie(&http.Cookie{Name: clientCookie, Value: "client-1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	stored, ok, err := store.Load(context.Background(), "client-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, prefs.Defaults(), stored)
}

func TestPreferencesDisabled(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "healthy", report.Status)
}

func TestHealthUnhealthyRegistry(t *testing.T) {
	// An empty registry fails validation, which is a critical check.
	registry := polyglot.NewRegistry()
	loader := polyglot.NewLoader(registry)
	srv := New(Config{
		Registry: registry,
		Loader:   loader,
		Store:    polyglot.NewStore(loader),
		Routes:   polyglot.DefaultRouteTable(),
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz?detailed=true", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var report struct {
		Status     string `json:"status"`
		Components []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "unhealthy", report.Status)
	require.Len(t, report.Components, 1)
	assert.Equal(t, "registry", report.Components[0].Name)
	assert.NotEmpty(t, report.Components[0].Error)
}
