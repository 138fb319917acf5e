package ui

import (
	"io"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colors and pre-computed styles used to draw the navigator.
// Styles are built once from a renderer bound to the output terminal.
type Theme struct {
	Renderer *lipgloss.Renderer
	Profile  colorprofile.Profile

	// Colors
	Primary   lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor

	// Styles
	Base        lipgloss.Style
	Selected    lipgloss.Style
	Connector   lipgloss.Style // Tree glyphs and expansion markers
	Frame       lipgloss.Style // Border runes
	Title       lipgloss.Style // Top border title
	PathTitle   lipgloss.Style // Bottom border path
	Position    lipgloss.Style // "1-20 of 340"
	Status      lipgloss.Style // Transient messages in the footer
	ScrollThumb lipgloss.Style
	ScrollTrack lipgloss.Style
}

// Bg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals use the
// terminal's own background instead of a down-converted approximation.
func (t Theme) Bg(hex string) lipgloss.TerminalColor {
	if t.Profile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// Fg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func (t Theme) Fg(hex string) lipgloss.TerminalColor {
	if t.Profile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// DefaultTheme returns the Dracula-inspired adaptive theme for renderer r on
// a terminal with color profile p.
func DefaultTheme(r *lipgloss.Renderer, p colorprofile.Profile) Theme {
	t := Theme{
		Renderer: r,
		Profile:  p,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Warning:   lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Foreground(t.Fg("#F8F8F2")).
		Bold(true)
	if p < colorprofile.ANSI256 {
		// Without a usable background, reverse video is the only reliable cursor.
		t.Selected = r.NewStyle().Reverse(true).Bold(true)
	}

	t.Connector = r.NewStyle().Foreground(t.Muted)
	t.Frame = r.NewStyle().Foreground(t.Border)
	t.Title = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.PathTitle = r.NewStyle().Foreground(t.Subtext)
	t.Position = r.NewStyle().Foreground(t.Muted)
	t.Status = r.NewStyle().Foreground(t.Warning)
	t.ScrollThumb = r.NewStyle().Foreground(t.Primary)
	t.ScrollTrack = r.NewStyle().Foreground(t.Border)

	return t
}

// TestTheme returns a theme that renders without escape sequences, for
// tests that compare plain text.
func TestTheme() Theme {
	r := lipgloss.NewRenderer(io.Discard)
	return DefaultTheme(r, colorprofile.Ascii)
}
