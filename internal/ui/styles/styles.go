// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"} // Hints, paths, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#C98F00", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Origin colors, strongest scope first
	OriginProjectColor = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#54A0FF"}
	OriginGlobalColor  = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	OriginBuiltinColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	OverlayTitleColor       = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#C9C9C9"}
	OverlayBorderColor      = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#8C8C8C"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	HeaderStyle      = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	MutedStyle       = lipgloss.NewStyle().Foreground(TextMutedColor)
	DescriptionStyle = lipgloss.NewStyle().Foreground(TextDescriptionColor)
	ErrorStyle       = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
	WarningStyle     = lipgloss.NewStyle().Foreground(StatusWarningColor)

	DiffAddedStyle   = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	DiffRemovedStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	DiffHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
)

// OriginColor returns the color for an origin name.
func OriginColor(origin string) lipgloss.TerminalColor {
	switch origin {
	case "project":
		return OriginProjectColor
	case "global":
		return OriginGlobalColor
	default:
		return OriginBuiltinColor
	}
}

// ScoreStyle colors a match score by confidence.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return lipgloss.NewStyle().Foreground(StatusSuccessColor).Bold(true)
	case score >= 50:
		return lipgloss.NewStyle().Foreground(StatusWarningColor)
	default:
		return MutedStyle
	}
}

// SetColorEnabled switches the default renderer between its detected color
// profile and plain ASCII output.
func SetColorEnabled(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
