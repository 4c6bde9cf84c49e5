package presentation

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/modekit/internal/ui/styles"
)

// DiffLine is one line of a line-level diff.
type DiffLine struct {
	Op   diffmatchpatch.Operation
	Text string
}

// LineDiff computes a line-level diff from oldText to newText.
func LineDiff(oldText, newText string) []DiffLine {
	dmp := diffmatchpatch.New()
	oldChars, newChars, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(oldChars, newChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out []DiffLine
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if d.Text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			out = append(out, DiffLine{Op: d.Type, Text: line})
		}
	}
	return out
}

// RenderDiff renders a line diff with ---/+++ headers naming both sides.
func RenderDiff(oldLabel, newLabel, oldText, newText string) string {
	var b strings.Builder
	b.WriteString(styles.DiffHeaderStyle.Render("--- " + oldLabel))
	b.WriteString("\n")
	b.WriteString(styles.DiffHeaderStyle.Render("+++ " + newLabel))

	for _, line := range LineDiff(oldText, newText) {
		b.WriteString("\n")
		switch line.Op {
		case diffmatchpatch.DiffDelete:
			b.WriteString(styles.DiffRemovedStyle.Render("-" + line.Text))
		case diffmatchpatch.DiffInsert:
			b.WriteString(styles.DiffAddedStyle.Render("+" + line.Text))
		default:
			b.WriteString(" " + line.Text)
		}
	}
	return b.String()
}
