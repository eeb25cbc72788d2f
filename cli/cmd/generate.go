package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"github.com/spf13/cobra"

	"github.com/tmeire/polyglot"
)

func GenerateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate translation scaffolding",
	}
	cmd.PersistentFlags().StringVarP(&dir, "dir", "d", "translations", "translations directory")

	namespace := &cobra.Command{
		Use:   "namespace [name]",
		Short: "Scaffold translation files for a new namespace in every language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strcase.ToSnake(args[0])
			nsDir := filepath.Join(dir, name)
			if err := os.MkdirAll(nsDir, 0755); err != nil {
				return err
			}

			for _, lang := range polyglot.Languages() {
				path := filepath.Join(nsDir, string(lang)+".json")
				if _, err := os.Stat(path); err == nil {
					fmt.Printf("skip  %s (exists)\n", path)
					continue
				}
				if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.AddCommand(namespace)

	return cmd
}
