package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmeire/polyglot"
)

func ValidateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every (namespace, language) pair has a parseable translation file",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := polyglot.NewRegistry()
			if err := registry.RegisterFS(os.DirFS(dir), "."); err != nil {
				return fmt.Errorf("failed to scan translations: %w", err)
			}
			if err := registry.Validate(); err != nil {
				return err
			}

			loader := polyglot.NewLoader(registry)
			var failed bool
			for _, ns := range polyglot.Namespaces() {
				for _, lang := range polyglot.Languages() {
					b, err := loader.Load(cmd.Context(), lang, ns)
					if err != nil {
						failed = true
						fmt.Printf("FAIL  %s/%s: %v\n", ns, lang, err)
						continue
					}
					fmt.Printf("ok    %s/%s: %d keys\n", ns, lang, b.Len())
				}
			}
			if failed {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "translations", "translations directory")
	return cmd
}
