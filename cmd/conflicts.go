package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/presentation"
	"github.com/zjrosen/modekit/internal/tracing"
)

func newConflictsCmd(a *app) *cobra.Command {
	var (
		typeName string
		diff     bool
	)

	cmd := &cobra.Command{
		Use:   "conflicts <name>",
		Short: "Show every scope that defines a component",
		Long: `Show every scope that defines a component name, the winning scope first.

Without --type every component type is checked. With --diff the winning
copy is compared line by line against each copy it shadows.

Examples:
  modekit conflicts architect
  modekit conflicts architect --type mode --diff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(ctx context.Context) error {
				types := component.AllTypes()
				if typeName != "" {
					typ, err := component.ParseType(typeName)
					if err != nil {
						return err
					}
					types = []component.Type{typ}
				}

				f := a.formatter()
				found := 0
				for _, typ := range types {
					versions := a.resolver.ComponentConflicts(args[0], typ)
					if len(versions) == 0 {
						continue
					}
					found++

					key := component.Key{Name: args[0], Type: typ}
					if err := f.FormatConflicts(key, versions); err != nil {
						return err
					}
					if diff && !f.JSON() {
						if err := a.printDiffs(versions); err != nil {
							return err
						}
					}
				}

				tracing.Annotate(ctx, attribute.Int(tracing.AttrResults, found))
				if found == 0 {
					return fmt.Errorf("%w named %q", ErrNoMatch, args[0])
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Only check this component type")
	cmd.Flags().BoolVarP(&diff, "diff", "d", false, "Diff the winning copy against each shadowed copy")
	return cmd
}

// printDiffs diffs each shadowed copy against the winner, versions[0].
func (a *app) printDiffs(versions []component.Resolved) error {
	if len(versions) < 2 {
		return nil
	}
	winner, err := a.resolver.Read(versions[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", versions[0].Path, err)
	}

	for _, shadowed := range versions[1:] {
		content, err := a.resolver.Read(shadowed)
		if err != nil {
			return fmt.Errorf("reading %s: %w", shadowed.Path, err)
		}
		out := presentation.RenderDiff(
			string(shadowed.Origin)+": "+shadowed.Path,
			string(versions[0].Origin)+": "+versions[0].Path,
			string(content),
			string(winner),
		)
		if _, err := fmt.Fprintf(a.out, "\n%s\n", out); err != nil {
			return err
		}
	}
	return nil
}
