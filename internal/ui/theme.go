// Package ui holds the dashboard's terminal styling: the color palette,
// status symbols, and the per-theme lipgloss style sets the renderer
// composes window content with.
package ui

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Theme names selectable in the config file.
const (
	ThemeStandard  = "standard"
	ThemeBarebones = "barebones"
)

// Theme is one coherent style set for the dashboard renderer.
type Theme struct {
	Name string

	// Panel frames a content window.
	Panel lipgloss.Style

	// Title styles a window's heading line.
	Title lipgloss.Style

	// Body styles a window's content text.
	Body lipgloss.Style

	// Muted styles secondary lines (timestamps, sender numbers).
	Muted lipgloss.Style

	// ErrorStrip styles the failed-sources indicator line.
	ErrorStrip lipgloss.Style

	// OnAir styles the live-stream marker.
	OnAir lipgloss.Style
}

// Standard is the full-decoration theme: rounded borders, accent titles.
func Standard() Theme {
	return Theme{
		Name: ThemeStandard,
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
		ErrorStrip: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		OnAir: lipgloss.NewStyle().
			Foreground(ColorOnAir).
			Bold(true),
	}
}

// Barebones is the minimal theme: no borders, plain text, for tiny or
// low-contrast displays.
func Barebones() Theme {
	return Theme{
		Name:       ThemeBarebones,
		Panel:      lipgloss.NewStyle().Padding(0, 1),
		Title:      lipgloss.NewStyle().Bold(true),
		Body:       lipgloss.NewStyle(),
		Muted:      lipgloss.NewStyle().Faint(true),
		ErrorStrip: lipgloss.NewStyle().Reverse(true),
		OnAir:      lipgloss.NewStyle().Bold(true),
	}
}

// ByName returns the named theme, defaulting to standard for anything
// unrecognized.
func ByName(name string) Theme {
	if name == ThemeBarebones {
		return Barebones()
	}
	return Standard()
}

// WithOpacity approximates a fractional opacity in cells: fully transparent
// content disappears, low opacity renders faint, and anything from
// half-opaque up renders normally.
func WithOpacity(style lipgloss.Style, opacity float64) (lipgloss.Style, bool) {
	switch {
	case opacity <= 0 || math.IsNaN(opacity):
		return style, false
	case opacity < 0.5:
		return style.Faint(true), true
	default:
		return style, true
	}
}
