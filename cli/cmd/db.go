package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tmeire/polyglot/prefs"
)

func DbCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the preferences database",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "data/polyglot.sqlite", "path to the database file")

	migrate := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return prefs.Migrate(cmd.Context(), args[0], dbPath)
		},
	}
	cmd.AddCommand(migrate)

	return cmd
}
