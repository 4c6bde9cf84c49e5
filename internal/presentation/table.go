package presentation

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/modekit/internal/ui/styles"
)

const (
	defaultWidth = 100
	minLastWidth = 12
	ellipsis     = "…"
)

// Cell is one table cell. Style is applied after padding so that column
// alignment is computed on the plain text.
type Cell struct {
	Text  string
	Style lipgloss.Style
}

// RenderTable lays out rows under headers. Columns are as wide as their
// widest cell; the last column is truncated so the row fits maxWidth.
func RenderTable(headers []string, rows [][]Cell, maxWidth int) string {
	if len(headers) == 0 {
		return ""
	}
	if maxWidth <= 0 {
		maxWidth = defaultWidth
	}

	widths := columnWidths(headers, rows)
	fitLastColumn(widths, maxWidth)

	var b strings.Builder
	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = styles.HeaderStyle.Render(pad(h, widths[i], i == len(headers)-1))
	}
	b.WriteString(strings.Join(headerCells, " "))

	for _, row := range rows {
		b.WriteString("\n")
		cells := make([]string, len(headers))
		for i := range headers {
			var cell Cell
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = cell.Style.Render(pad(cell.Text, widths[i], i == len(headers)-1))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]Cell) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i].Text))
		}
	}
	return widths
}

// fitLastColumn shrinks the last column until the row, including the single
// space separators, fits maxWidth. It never shrinks below minLastWidth.
func fitLastColumn(widths []int, maxWidth int) {
	last := len(widths) - 1
	used := last // separators
	for _, w := range widths[:last] {
		used += w
	}
	if used+widths[last] <= maxWidth {
		return
	}
	widths[last] = max(maxWidth-used, min(minLastWidth, widths[last]))
}

// pad truncates s to width and right-pads it. The trailing column is not
// padded.
func pad(s string, width int, trailing bool) string {
	if runewidth.StringWidth(s) > width {
		s = truncate.StringWithTail(s, uint(width), ellipsis)
	}
	if trailing {
		return s
	}
	return runewidth.FillRight(s, width)
}
