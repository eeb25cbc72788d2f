package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tmeire/polyglot"
	"github.com/tmeire/polyglot/prefs"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleTranslations serves the bundle for one (language, namespace) pair.
func (s *Server) handleTranslations(w http.ResponseWriter, r *http.Request) {
	lang := r.PathValue("lang")
	ns := r.PathValue("ns")

	if !polyglot.ValidLanguage(lang) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown language: " + lang})
		return
	}
	if !polyglot.ValidNamespace(ns) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown namespace: " + ns})
		return
	}

	b, err := s.loader.Load(r.Context(), polyglot.Language(lang), polyglot.Namespace(ns))
	if err != nil {
		slog.Error("failed to load translations", "language", lang, "namespace", ns, "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, polyglot.ErrNotRegistered) {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorResponse{Error: "failed to load translations"})
		return
	}

	writeJSON(w, http.StatusOK, b)
}

type preloadRequest struct {
	Path     string `json:"path"`
	Language string `json:"language"`
}

type preloadResponse struct {
	Namespaces []polyglot.Namespace `json:"namespaces"`
}

// handlePreload warms the cache for the namespaces a route needs. Warming is
// best-effort: failures are reported but the route itself keeps working
// through on-demand loads.
func (s *Server) handlePreload(w http.ResponseWriter, r *http.Request) {
	var req preloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	lang := polyglot.LanguageFromContext(r.Context())
	if req.Language != "" {
		if !polyglot.ValidLanguage(req.Language) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown language: " + req.Language})
			return
		}
		lang = polyglot.Language(req.Language)
	}

	namespaces := s.routes.NamespacesForRoute(req.Path)
	if err := s.loader.Preload(r.Context(), lang, namespaces...); err != nil {
		slog.Warn("preload failed", "path", req.Path, "language", lang, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "preload failed"})
		return
	}

	writeJSON(w, http.StatusOK, preloadResponse{Namespaces: namespaces})
}

// headerApplier surfaces preference side effects on the HTTP response, the
// server-side equivalent of mutating the document root attributes.
type headerApplier struct {
	header http.Header
}

func (a headerApplier) Apply(dir polyglot.Direction, lang polyglot.Language, dark bool) {
	a.header.Set("Content-Language", string(lang))
	a.header.Set("X-Text-Direction", string(dir))
	theme := prefs.Light
	if dark {
		theme = prefs.Dark
	}
	a.header.Set("X-Theme", string(theme))
}

func (s *Server) prefsService(w http.ResponseWriter, r *http.Request) (*prefs.Service, bool) {
	if s.prefsStore == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "preferences are not enabled"})
		return nil, false
	}
	id := clientIDFromContext(r.Context())
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing client id"})
		return nil, false
	}
	return prefs.New(r.Context(), s.prefsStore, headerApplier{header: w.Header()}, id), true
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.prefsService(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, svc.Preferences())
}

type putPreferencesRequest struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var req putPreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	svc, ok := s.prefsService(w, r)
	if !ok {
		return
	}

	if req.Language != "" {
		if err := svc.SetLanguage(r.Context(), polyglot.Language(req.Language)); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	if req.Theme != "" {
		if err := svc.SetTheme(r.Context(), prefs.Theme(req.Theme)); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, svc.Preferences())
}

func (s *Server) handleResetPreferences(w http.ResponseWriter, r *http.Request) {
	if s.prefsStore == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "preferences are not enabled"})
		return
	}
	id := clientIDFromContext(r.Context())
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing client id"})
		return
	}

	if err := s.prefsStore.Save(r.Context(), id, prefs.Defaults()); err != nil {
		slog.Error("failed to reset preferences", "client", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to reset preferences"})
		return
	}
	writeJSON(w, http.StatusOK, prefs.Defaults())
}

type healthStatus string

const (
	statusHealthy   healthStatus = "healthy"
	statusDegraded  healthStatus = "degraded"
	statusUnhealthy healthStatus = "unhealthy"
)

type componentHealth struct {
	Name         string       `json:"name"`
	Status       healthStatus `json:"status"`
	Error        string       `json:"error,omitempty"`
	ResponseTime string       `json:"response_time,omitempty"`
}

type healthReport struct {
	Status     healthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []componentHealth `json:"components,omitempty"`
}

type healthCheck struct {
	name     string
	check    func(context.Context) error
	critical bool
}

func (s *Server) healthChecks() []healthCheck {
	checks := []healthCheck{
		{
			name:     "registry",
			check:    func(context.Context) error { return s.registry.Validate() },
			critical: true,
		},
	}
	if s.db != nil {
		checks = append(checks, healthCheck{
			name: "database",
			check: func(ctx context.Context) error {
				_, err := s.db.ExecContext(ctx, "SELECT 1")
				return err
			},
			critical: false,
		})
	}
	return checks
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	detailed := r.URL.Query().Get("detailed") == "true"

	report := healthReport{
		Status:    statusHealthy,
		Timestamp: time.Now(),
	}

	for _, check := range s.healthChecks() {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		start := time.Now()
		err := check.check(ctx)
		cancel()

		comp := componentHealth{
			Name:         check.name,
			Status:       statusHealthy,
			ResponseTime: time.Since(start).String(),
		}
		if err != nil {
			comp.Error = err.Error()
			if check.critical {
				comp.Status = statusUnhealthy
				report.Status = statusUnhealthy
			} else {
				comp.Status = statusDegraded
				if report.Status == statusHealthy {
					report.Status = statusDegraded
				}
			}
		}
		if detailed {
			report.Components = append(report.Components, comp)
		}
	}

	status := http.StatusOK
	if report.Status == statusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}
