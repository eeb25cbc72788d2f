package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"

	"github.com/tmeire/polyglot"
)

// Middleware wraps an HTTP handler.
type Middleware func(h http.Handler) http.Handler

// Middlewares applies a middleware stack in declaration order.
type Middlewares []Middleware

func (ms Middlewares) Wrap(h http.Handler) http.Handler {
	for i := len(ms) - 1; i >= 0; i-- {
		h = ms[i](h)
	}
	return h
}

// CatchAll recovers panics so no partial output reaches the client.
func CatchAll(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}

			slog.Error("recovered a panic", "panic", v, "path", req.URL.Path)
			debug.PrintStack()

			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Something went wrong: %s", v)
		}()

		handler.ServeHTTP(w, req)
	})
}

type clientIDKey struct{}

const clientCookie = "polyglot_client"

// ClientID guarantees every request carries a stable client id, issuing a
// cookie on first contact. The id keys the preference store.
func ClientID(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var id string
		if cookie, err := req.Cookie(clientCookie); err == nil && cookie.Value != "" {
			id = cookie.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     clientCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				MaxAge:   31536000, // 1 year
			})
		}

		ctx := context.WithValue(req.Context(), clientIDKey{}, id)
		handler.ServeHTTP(w, req.WithContext(ctx))
	})
}

// clientIDFromContext returns the client id set by the ClientID middleware.
func clientIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(clientIDKey{}).(string); ok {
		return id
	}
	return ""
}

// DetectLanguage detects the preferred language for a request:
// query parameter, cookie, stored preference, Accept-Language header,
// then the default.
func (s *Server) DetectLanguage(r *http.Request) polyglot.Language {
	// 1. Query parameter: ?locale=en
	if locale := r.URL.Query().Get("locale"); locale != "" && polyglot.ValidLanguage(locale) {
		return polyglot.Language(strings.ToLower(locale))
	}

	// 2. Cookie: locale=en
	if cookie, err := r.Cookie("locale"); err == nil && polyglot.ValidLanguage(cookie.Value) {
		return polyglot.Language(cookie.Value)
	}

	// 3. Stored preference for this client
	if id := clientIDFromContext(r.Context()); id != "" && s.prefsStore != nil {
		if p, ok, err := s.prefsStore.Load(r.Context(), id); err == nil && ok {
			if polyglot.ValidLanguage(string(p.Language)) {
				return p.Language
			}
		}
	}

	// 4. Accept-Language header, e.g. "he-IL,he;q=0.9,en;q=0.8"
	if acceptLang := r.Header.Get("Accept-Language"); acceptLang != "" {
		first := strings.Split(acceptLang, ",")[0]
		first = strings.TrimSpace(strings.Split(first, ";")[0])
		base := strings.ToLower(strings.Split(first, "-")[0])
		if polyglot.ValidLanguage(base) {
			return polyglot.Language(base)
		}
	}

	// 5. Default language
	return s.defaultLang
}

// Language adds the detected language and the translation store to every
// request context.
func (s *Server) Language(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := polyglot.WithLanguage(req.Context(), s.DetectLanguage(req))
		ctx = polyglot.WithStore(ctx, s.store)
		handler.ServeHTTP(w, req.WithContext(ctx))
	})
}
