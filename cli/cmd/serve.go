package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmeire/polyglot"
	"github.com/tmeire/polyglot/database/sqlite"
	"github.com/tmeire/polyglot/otel"
	"github.com/tmeire/polyglot/prefs"
	"github.com/tmeire/polyglot/server"
)

func ServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the translation delivery server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conf, err := polyglot.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			shutdown, err := otel.Setup(ctx, "polyglot", conf.OTLPEndpoint)
			if err != nil {
				return fmt.Errorf("failed to set up telemetry: %w", err)
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					slog.Error("telemetry shutdown failed", "error", err)
				}
			}()

			registry := polyglot.NewRegistry()
			if err := registry.RegisterFS(os.DirFS(conf.TranslationsDir), "."); err != nil {
				return fmt.Errorf("failed to register translations: %w", err)
			}
			if err := registry.Validate(); err != nil {
				return err
			}

			loader := polyglot.NewLoader(registry)
			store := polyglot.NewStore(loader)

			routes := polyglot.DefaultRouteTable()
			if conf.RoutesFile != "" {
				routes, err = polyglot.LoadRouteTable(conf.RoutesFile)
				if err != nil {
					return fmt.Errorf("failed to load route table: %w", err)
				}
			}

			db, err := sqlite.New(conf.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			prefsStore, err := prefs.NewDBStore(ctx, db)
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Registry:        registry,
				Loader:          loader,
				Store:           store,
				Routes:          routes,
				PrefsStore:      prefsStore,
				DB:              db,
				DefaultLanguage: polyglot.ParseLanguage(conf.DefaultLanguage),
			})

			// Warm the critical namespaces so first requests hit the cache.
			// Best-effort: a cold cache still serves through on-demand loads.
			for _, lang := range polyglot.Languages() {
				if err := routes.PreloadCritical(ctx, loader, lang); err != nil {
					slog.Warn("critical preload failed", "language", lang, "error", err)
				}
			}

			if conf.Dev {
				watcher, err := polyglot.NewWatcher(loader, conf.TranslationsDir, srv.Hub().NotifyReload)
				if err != nil {
					return fmt.Errorf("failed to watch translations: %w", err)
				}
				defer watcher.Close()
			}

			return srv.Run(conf.Port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config/config.json", "path to the config file")
	return cmd
}
