// Package picker provides the option picker shown when a query matches
// several components and the caller is interactive.
package picker

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/modekit/internal/keys"
	"github.com/zjrosen/modekit/internal/ui/styles"
)

const defaultBoxWidth = 48

// Option represents a picker option with label and value.
type Option struct {
	Label  string
	Value  string
	Detail string                 // Optional muted text after the label
	Color  lipgloss.TerminalColor // Optional color for the label
}

// Model holds the picker state.
type Model struct {
	title     string
	options   []Option
	selected  int
	boxWidth  int
	chosen    bool
	cancelled bool
	help      help.Model
}

// New creates a new picker with the given title and options.
func New(title string, options []Option) Model {
	return Model{
		title:   title,
		options: options,
		help:    help.New(),
	}
}

// SetBoxWidth sets the width of the picker box itself.
func (m Model) SetBoxWidth(width int) Model {
	m.boxWidth = width
	return m
}

// SetSelected sets the initially selected index.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.options) {
		m.selected = index
	}
	return m
}

// Selected returns the currently highlighted option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected]
	}
	return Option{}
}

// Chosen returns the confirmed option. It is false until the user presses
// enter, and stays false after a cancel.
func (m Model) Chosen() (Option, bool) {
	if !m.chosen || len(m.options) == 0 {
		return Option{}, false
	}
	return m.Selected(), true
}

// Cancelled reports whether the user dismissed the picker.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Picker.Down):
		if m.selected < len(m.options)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, keys.Picker.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, keys.Picker.Top):
		m.selected = 0
	case key.Matches(keyMsg, keys.Picker.Bottom):
		if len(m.options) > 0 {
			m.selected = len(m.options) - 1
		}
	case key.Matches(keyMsg, keys.Picker.Select):
		m.chosen = len(m.options) > 0
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Picker.Cancel):
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the picker box.
func (m Model) View() string {
	if m.chosen || m.cancelled {
		return ""
	}

	width := m.boxWidth
	if width == 0 {
		width = defaultBoxWidth
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)

	var options strings.Builder
	for i, opt := range m.options {
		labelStyle := lipgloss.NewStyle()
		if opt.Color != nil {
			labelStyle = labelStyle.Foreground(opt.Color)
		}

		prefix := " "
		if i == m.selected {
			prefix = styles.SelectionIndicatorStyle.Render(">")
			labelStyle = labelStyle.Bold(true)
		}

		line := prefix + labelStyle.Render(opt.Label)
		if opt.Detail != "" {
			line += " " + styles.MutedStyle.Render(opt.Detail)
		}
		options.WriteString(line)
		if i < len(m.options)-1 {
			options.WriteString("\n")
		}
	}

	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", width))

	content := titleStyle.Render(m.title) + "\n" +
		divider + "\n" +
		options.String() + "\n" +
		divider + "\n" +
		" " + m.help.ShortHelpView(keys.Picker.ShortHelp())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(content)
}

// Run shows the picker on out, reading keys from in, and returns the chosen
// option. ok is false when the user cancelled.
func Run(title string, options []Option, in io.Reader, out io.Writer) (Option, bool, error) {
	program := tea.NewProgram(New(title, options), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return Option{}, false, fmt.Errorf("running picker: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Option{}, false, fmt.Errorf("unexpected picker model %T", final)
	}
	chosen, ok := m.Chosen()
	return chosen, ok, nil
}

// FindIndexByValue returns the index of the option with the given value.
func FindIndexByValue(options []Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}
