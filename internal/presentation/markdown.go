package presentation

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle removes document margins so rendered components line up
// with the rest of the CLI output.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// MarkdownRenderer renders markdown component bodies for the terminal.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a renderer that wraps at width.
// style should be "dark", "light" or "notty"; empty means "dark". A named
// style is used instead of auto detection so no terminal queries are sent.
func NewMarkdownRenderer(width int, style string) (*MarkdownRenderer, error) {
	if style == "" {
		style = "dark"
	}
	if width <= 0 {
		width = defaultWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *MarkdownRenderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *MarkdownRenderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// IsMarkdown reports whether a component path holds markdown.
func IsMarkdown(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
