package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/tracing"
)

func newListCmd(a *app) *cobra.Command {
	var (
		where      string
		withSource bool
	)

	cmd := &cobra.Command{
		Use:   "list [type]",
		Short: "List resolved components",
		Long: `List components with scope precedence applied: each name appears once,
taken from the highest-precedence scope that defines it.

Use --all to include shadowed copies from lower scopes.
Use --where to filter with an expression over component metadata. The
expression sees name, kind (the component type), origin, path, format (the
metadata format), description, tags and meta (every metadata field).

Examples:
  modekit list
  modekit list modes
  modekit list --all workflow
  modekit list --where 'origin == "project"'
  modekit list --where '"review" in tags'
  modekit list --where 'meta.priority == 2' --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(ctx context.Context) error {
				var typ *component.Type
				if len(args) == 1 {
					t, err := component.ParseType(args[0])
					if err != nil {
						return err
					}
					typ = &t
				}

				list := a.listComponents(typ, withSource)
				if where != "" {
					filtered, err := a.resolver.Filter(list, where)
					if err != nil {
						return err
					}
					list = filtered
				}

				tracing.Annotate(ctx, attribute.Int(tracing.AttrResults, len(list)))
				return a.formatter().FormatComponents(list)
			})
		},
	}

	cmd.Flags().StringVarP(&where, "where", "w", "", "Filter expression over component metadata")
	cmd.Flags().BoolVarP(&withSource, "all", "a", false, "Include components shadowed by a higher scope")
	return cmd
}

// listComponents returns the merged view for typ, or for every type in type
// order when typ is nil.
func (a *app) listComponents(typ *component.Type, withSource bool) []component.Resolved {
	types := component.AllTypes()
	if typ != nil {
		types = []component.Type{*typ}
	}

	var list []component.Resolved
	for _, t := range types {
		if withSource {
			list = append(list, a.resolver.ComponentsByTypeWithSource(t)...)
		} else {
			list = append(list, a.resolver.ComponentsByType(t)...)
		}
	}
	return list
}
