package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/modekit/internal/tracing"
)

const defaultSuggestions = 5

func newSuggestCmd(a *app) *cobra.Command {
	var (
		typeName string
		count    int
	)

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Print \"did you mean\" names for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(ctx context.Context) error {
				typ, err := parseTypeFlag(typeName)
				if err != nil {
					return err
				}

				suggestions := a.resolver.GenerateSuggestions(args[0], typ, count)
				tracing.Annotate(ctx,
					attribute.String(tracing.AttrQuery, args[0]),
					attribute.Int(tracing.AttrResults, len(suggestions)),
				)
				return a.formatter().FormatSuggestions(args[0], suggestions)
			})
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Only suggest this component type")
	cmd.Flags().IntVarP(&count, "count", "n", defaultSuggestions, "Maximum number of suggestions")
	return cmd
}
