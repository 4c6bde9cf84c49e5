package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/modekit/internal/component"
	"github.com/zjrosen/modekit/internal/fuzzy"
	"github.com/zjrosen/modekit/internal/ui/styles"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	json   bool
	width  int
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithJSON switches every Format method to indented JSON.
func WithJSON(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.json = enabled
	}
}

// WithWidth sets the terminal width used to truncate table descriptions.
func WithWidth(width int) FormatterOption {
	return func(f *Formatter) {
		f.width = width
	}
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, opts ...FormatterOption) *Formatter {
	f := &Formatter{
		writer: writer,
		width:  defaultWidth,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// JSON reports whether the formatter emits JSON.
func (f *Formatter) JSON() bool {
	return f.json
}

// Encode writes v as indented JSON.
func (f *Formatter) Encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatComponents writes a component listing.
func (f *Formatter) FormatComponents(list []component.Resolved) error {
	if f.json {
		return f.Encode(FromResolvedList(list))
	}
	if len(list) == 0 {
		return f.line(styles.MutedStyle.Render("No components found."))
	}

	rows := make([][]Cell, len(list))
	for i, c := range list {
		rows[i] = []Cell{
			{Text: c.Name},
			{Text: string(c.Type)},
			{Text: string(c.Origin), Style: originStyle(c.Origin)},
			{Text: c.Metadata.Description(), Style: styles.DescriptionStyle},
		}
	}
	return f.line(RenderTable([]string{"NAME", "TYPE", "ORIGIN", "DESCRIPTION"}, rows, f.width))
}

// FormatMatches writes ranked matches with their scores and conflicts.
func (f *Formatter) FormatMatches(matches []fuzzy.Match) error {
	if f.json {
		return f.Encode(FromMatches(matches))
	}
	if len(matches) == 0 {
		return f.line(styles.MutedStyle.Render("No matches."))
	}

	rows := make([][]Cell, len(matches))
	for i, m := range matches {
		rows[i] = []Cell{
			{Text: fmt.Sprintf("%d", m.Score), Style: styles.ScoreStyle(m.Score)},
			{Text: m.Name},
			{Text: string(m.Component.Type)},
			{Text: string(m.Origin), Style: originStyle(m.Origin)},
			{Text: string(m.MatchType), Style: styles.MutedStyle},
			{Text: conflictList(m.ConflictsWith), Style: styles.WarningStyle},
		}
	}
	return f.line(RenderTable([]string{"SCORE", "NAME", "TYPE", "ORIGIN", "MATCH", "SHADOWS"}, rows, f.width))
}

// FormatConflicts writes every origin that defines one component, the
// winning origin first.
func (f *Formatter) FormatConflicts(key component.Key, versions []component.Resolved) error {
	if f.json {
		return f.Encode(FromResolvedList(versions))
	}
	if len(versions) == 0 {
		return f.line(styles.MutedStyle.Render(fmt.Sprintf("No component %s.", key)))
	}

	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render(key.String()))
	for i, v := range versions {
		b.WriteString("\n")
		marker := "  "
		if i == 0 {
			marker = styles.SelectionIndicatorStyle.Render("* ")
		}
		b.WriteString(marker)
		b.WriteString(originStyle(v.Origin).Render(fmt.Sprintf("%-8s", v.Origin)))
		b.WriteString(" ")
		b.WriteString(styles.MutedStyle.Render(v.Path))
	}
	return f.line(b.String())
}

// FormatSuggestions writes "did you mean" candidates.
func (f *Formatter) FormatSuggestions(query string, suggestions []string) error {
	if f.json {
		return f.Encode(map[string]any{"query": query, "suggestions": nonNil(suggestions)})
	}
	if len(suggestions) == 0 {
		return f.line(styles.MutedStyle.Render(fmt.Sprintf("No suggestions for %q.", query)))
	}
	lines := []string{fmt.Sprintf("Did you mean one of these for %q?", query)}
	for _, s := range suggestions {
		lines = append(lines, "  "+s)
	}
	return f.line(strings.Join(lines, "\n"))
}

// FormatValue writes a config value. Maps and slices are written as JSON.
func (f *Formatter) FormatValue(v any) error {
	switch v.(type) {
	case map[string]any, []any:
		return f.Encode(v)
	}
	if f.json {
		return f.Encode(v)
	}
	return f.line(fmt.Sprint(v))
}

func (f *Formatter) line(s string) error {
	_, err := fmt.Fprintln(f.writer, s)
	return err
}

func conflictList(conflicts []component.Resolved) string {
	origins := make([]string, len(conflicts))
	for i, c := range conflicts {
		origins[i] = string(c.Origin)
	}
	return strings.Join(origins, ",")
}

func originStyle(o component.Origin) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.OriginColor(string(o)))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
