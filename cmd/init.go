package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the scope directory layout",
		Long: `Create a .modekit directory with one subdirectory per component type and
a default config.yaml. Existing files are left alone, so running init twice
is safe.

Examples:
  modekit init
  modekit init --global`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				project, globalStore := a.resolver.Scopes()
				store := project
				if global {
					store = globalStore
				}

				if err := store.Initialize(); err != nil {
					return err
				}
				a.resolver.ClearCache()

				_, err := fmt.Fprintf(a.out, "Initialized %s scope at %s\n", scopeName(global), store.Root())
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Initialize the global scope")
	return cmd
}
