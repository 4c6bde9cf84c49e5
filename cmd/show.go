package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/modekit/internal/fuzzy"
	"github.com/zjrosen/modekit/internal/presentation"
	"github.com/zjrosen/modekit/internal/tracing"
	"github.com/zjrosen/modekit/internal/ui/styles"
)

const defaultShowWidth = 80

func newShowCmd(a *app) *cobra.Command {
	var (
		typeName string
		raw      bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "show <query>",
		Short: "Print the body of a resolved component",
		Long: `Resolve a query like "resolve" does and print the component's file.
Markdown components are rendered for the terminal unless --raw is given.

Examples:
  modekit show architect
  modekit show commit --type command --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(ctx context.Context) error {
				typ, err := parseTypeFlag(typeName)
				if err != nil {
					return err
				}
				tracing.Annotate(ctx, attribute.String(tracing.AttrQuery, args[0]))

				match, err := a.resolveOne(args[0], typ, fuzzy.ModeOptions{Interactive: a.interactive()})
				if err != nil {
					return err
				}

				content, err := a.resolver.Read(match.Component)
				if err != nil {
					return fmt.Errorf("reading %s: %w", match.Component.Path, err)
				}

				f := a.formatter()
				if f.JSON() {
					return f.Encode(struct {
						presentation.ComponentDTO
						Content string `json:"content"`
					}{presentation.FromResolved(match.Component), string(content)})
				}

				body := string(content)
				if !raw && presentation.IsMarkdown(match.Component.Path) {
					body, err = a.renderMarkdown(body, width)
					if err != nil {
						return err
					}
				}

				header := styles.HeaderStyle.Render(fmt.Sprintf("%s/%s", match.Component.Type, match.Name)) +
					" " + styles.MutedStyle.Render("("+string(match.Origin)+")")
				_, err = fmt.Fprintf(a.out, "%s\n\n%s\n", header, body)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Only consider this component type")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without rendering")
	cmd.Flags().IntVar(&width, "width", defaultShowWidth, "Wrap rendered markdown at this width")
	return cmd
}

func (a *app) renderMarkdown(body string, width int) (string, error) {
	style := "dark"
	if !a.isTerminal(a.in) {
		style = "notty"
	}
	r, err := presentation.NewMarkdownRenderer(width, style)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	return r.Render(body)
}
