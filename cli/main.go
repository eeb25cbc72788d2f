package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmeire/polyglot/cli/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "polyglot",
		Short: "Polyglot CLI",
		Long: `A command line interface for the polyglot translation delivery service.
This CLI runs the server and provides utilities for managing translation bundles.`,
	}
	rootCmd.AddCommand(cmd.VersionCmd())
	rootCmd.AddCommand(cmd.ServeCmd())
	rootCmd.AddCommand(cmd.ValidateCmd())
	rootCmd.AddCommand(cmd.DbCmd())
	rootCmd.AddCommand(cmd.GenerateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
