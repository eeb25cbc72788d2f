// Package server exposes the translation loader, preload strategy and
// preference store over HTTP. Bundles are fetched lazily on first request
// and served from the process cache afterwards.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tmeire/polyglot"
	"github.com/tmeire/polyglot/database"
	"github.com/tmeire/polyglot/otel"
	"github.com/tmeire/polyglot/prefs"
)

// Server wires the delivery endpoints together.
type Server struct {
	registry    *polyglot.Registry
	loader      *polyglot.Loader
	store       *polyglot.Store
	routes      *polyglot.RouteTable
	prefsStore  prefs.Store
	db          database.Database
	hub         *Hub
	defaultLang polyglot.Language
}

// Config carries the server's collaborators. Registry, Loader, Store and
// Routes are required; the rest are optional.
type Config struct {
	Registry        *polyglot.Registry
	Loader          *polyglot.Loader
	Store           *polyglot.Store
	Routes          *polyglot.RouteTable
	PrefsStore      prefs.Store
	DB              database.Database
	DefaultLanguage polyglot.Language
}

// New creates a server.
func New(c Config) *Server {
	lang := c.DefaultLanguage
	if !polyglot.ValidLanguage(string(lang)) {
		lang = polyglot.DefaultLanguage
	}
	return &Server{
		registry:    c.Registry,
		loader:      c.Loader,
		store:       c.Store,
		routes:      c.Routes,
		prefsStore:  c.PrefsStore,
		db:          c.DB,
		hub:         NewHub(),
		defaultLang: lang,
	}
}

// Hub returns the live-reload hub, for wiring to a translation watcher.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler builds the HTTP handler with the full middleware stack.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /translations/{lang}/{ns}", s.handleTranslations)
	mux.HandleFunc("POST /preload", s.handlePreload)
	mux.HandleFunc("GET /preferences", s.handleGetPreferences)
	mux.HandleFunc("PUT /preferences", s.handlePutPreferences)
	mux.HandleFunc("DELETE /preferences", s.handleResetPreferences)
	mux.Handle("GET /live", s.hub.handler())

	ms := Middlewares{otel.Trace, CatchAll}
	if s.db != nil {
		ms = append(ms, database.Middleware(s.db))
	}
	ms = append(ms, ClientID, s.Language)

	return ms.Wrap(mux)
}

// Run starts the HTTP server on port and blocks until it stops or an OS
// signal is received.
func (s *Server) Run(port int) error {
	return Serve(s.Handler(), port)
}

// Serve runs h with graceful shutdown on SIGHUP/SIGINT/SIGTERM/SIGQUIT.
func Serve(h http.Handler, port int) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: h,
	}

	done := make(chan struct{})

	var err error
	go func() {
		defer close(done)

		slog.Info("starting server", "port", port)
		err = server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
		}
	}()

	select {
	case <-sigc:
		if cerr := server.Close(); cerr != nil {
			slog.Error("failed to close server", "error", cerr)
		}
	case <-done:
	}
	return err
}
