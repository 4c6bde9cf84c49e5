package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/modekit/internal/fuzzy"
	"github.com/zjrosen/modekit/internal/tracing"
)

func newFindCmd(a *app) *cobra.Command {
	var (
		typeName string
		opts     fuzzy.Options
	)

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Rank components by how well they match a query",
		Long: `Rank every component from every scope against an approximate name.

Exact names score 100, prefixes 80, substrings 60 and acronyms up to 70
("apm" for autonomous-project-manager). Results that also exist in another
scope list the shadowed scopes.

Examples:
  modekit find eng
  modekit find apm --type agent
  modekit find review --min-score 50 --limit 3
  modekit find planning --boost --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(ctx context.Context) error {
				typ, err := parseTypeFlag(typeName)
				if err != nil {
					return err
				}

				if opts.MinScore == 0 {
					opts.MinScore = fuzzy.AnyScore
				}
				matches := a.resolver.FindComponents(args[0], typ, opts)
				tracing.Annotate(ctx,
					attribute.String(tracing.AttrQuery, args[0]),
					attribute.String(tracing.AttrType, typeName),
					attribute.Int(tracing.AttrResults, len(matches)),
				)
				return a.formatter().FormatMatches(matches)
			})
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Only search this component type")
	cmd.Flags().IntVarP(&opts.MaxResults, "limit", "n", fuzzy.DefaultMaxResults, "Maximum number of results")
	cmd.Flags().IntVar(&opts.MinScore, "min-score", fuzzy.DefaultMinScore, "Drop matches scoring below this (0 keeps everything)")
	cmd.Flags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "Match case exactly")
	cmd.Flags().BoolVar(&opts.MetadataBoost, "boost", false, "Boost matches whose description or tags mention the query")
	return cmd
}
