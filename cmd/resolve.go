package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/fuzzy"
	"github.com/zjrosen/modekit/internal/log"
	"github.com/zjrosen/modekit/internal/presentation"
	"github.com/zjrosen/modekit/internal/tracing"
	"github.com/zjrosen/modekit/internal/ui/picker"
	"github.com/zjrosen/modekit/internal/ui/styles"
)

func newResolveCmd(a *app) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "resolve <query>",
		Short: "Resolve a query to exactly one component",
		Long: `Resolve an approximate name to a single component.

Interactive terminals get a picker when several components match.
With --non-interactive (or when stdin is not a terminal) the best match is
chosen only when it is clearly ahead: an exact name, or a score of at least
80 that leads the runner-up by more than 20. Otherwise the ranked
candidates are printed to stderr and the command fails.

Examples:
  modekit resolve architect
  modekit resolve eng --type mode
  modekit resolve apm --non-interactive --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(ctx context.Context) error {
				typ, err := parseTypeFlag(typeName)
				if err != nil {
					return err
				}

				tracing.Annotate(ctx,
					attribute.String(tracing.AttrQuery, args[0]),
					attribute.String(tracing.AttrType, typeName),
				)

				match, err := a.resolveOne(args[0], typ, fuzzy.ModeOptions{Interactive: a.interactive()})
				if err != nil {
					return err
				}
				return a.printResolved(match)
			})
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Only consider this component type")
	return cmd
}

// resolveOne narrows a query to one match, prompting when opts allow it.
// Misses print suggestions and ambiguous results print the ranked
// candidates, both on stderr.
func (a *app) resolveOne(query string, typ *component.Type, opts fuzzy.ModeOptions) (fuzzy.Match, error) {
	matches := a.resolver.ResolveQuery(query, typ, opts)

	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) > 1:
		return a.pick(query, matches)
	}

	ranked := a.resolver.FindComponents(query, typ, opts.Options)
	if len(ranked) == 0 {
		suggestions := a.resolver.GenerateSuggestions(query, typ, defaultSuggestions)
		if len(suggestions) > 0 {
			_ = presentation.NewFormatter(a.errOut).FormatSuggestions(query, suggestions)
		}
		return fuzzy.Match{}, fmt.Errorf("%w for %q", ErrNoMatch, query)
	}

	log.Debug(log.CatCLI, "ambiguous query", "query", query, "candidates", len(ranked))
	_ = presentation.NewFormatter(a.errOut).FormatMatches(ranked)
	return fuzzy.Match{}, fmt.Errorf("%w: %q matches %d components", ErrAmbiguous, query, len(ranked))
}

func (a *app) pick(query string, matches []fuzzy.Match) (fuzzy.Match, error) {
	options := make([]picker.Option, len(matches))
	for i, m := range matches {
		options[i] = picker.Option{
			Label:  string(m.Component.Type) + "/" + m.Name,
			Value:  strconv.Itoa(i),
			Detail: fmt.Sprintf("%s · %d", m.Origin, m.Score),
			Color:  styles.OriginColor(string(m.Origin)),
		}
	}

	chosen, ok, err := picker.Run(fmt.Sprintf("Components matching %q", query), options, a.in, a.errOut)
	if err != nil {
		return fuzzy.Match{}, err
	}
	if !ok {
		return fuzzy.Match{}, ErrCancelled
	}
	i, err := strconv.Atoi(chosen.Value)
	if err != nil || i < 0 || i >= len(matches) {
		return fuzzy.Match{}, fmt.Errorf("invalid picker value %q", chosen.Value)
	}
	return matches[i], nil
}

func (a *app) printResolved(m fuzzy.Match) error {
	f := a.formatter()
	if f.JSON() {
		return f.Encode(presentation.FromMatch(m))
	}

	line := fmt.Sprintf("%s/%s %s",
		m.Component.Type,
		m.Name,
		styles.MutedStyle.Render(fmt.Sprintf("(%s, score %d)", m.Origin, m.Score)),
	)
	if _, err := fmt.Fprintln(a.out, line); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(a.out, m.Component.Path); err != nil {
		return err
	}
	for _, c := range m.ConflictsWith {
		msg := fmt.Sprintf("shadows %s copy at %s", c.Origin, c.Path)
		if c.Origin.Precedence() > m.Origin.Precedence() {
			msg = fmt.Sprintf("shadowed by %s copy at %s", c.Origin, c.Path)
		}
		if _, err := fmt.Fprintln(a.out, styles.WarningStyle.Render(msg)); err != nil {
			return err
		}
	}
	return nil
}
