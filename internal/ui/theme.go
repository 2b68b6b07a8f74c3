// Package ui provides terminal presentation for backendgen: the colour
// theme, TTY detection, and progress indicators with plain-text fallbacks.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the theme colours as hex strings.
type Palette struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
	Border    string
}

// DarkPalette is used on dark terminal backgrounds.
var DarkPalette = Palette{
	Primary:   "#DA7756",
	Secondary: "#7C3AED",
	Success:   "#10B981",
	Warning:   "#F59E0B",
	Error:     "#EF4444",
	Muted:     "#6B7280",
	Border:    "#4B5563",
}

// LightPalette is used on light terminal backgrounds.
var LightPalette = Palette{
	Primary:   "#C45A3C",
	Secondary: "#5B21B6",
	Success:   "#059669",
	Warning:   "#D97706",
	Error:     "#DC2626",
	Muted:     "#9CA3AF",
	Border:    "#D1D5DB",
}

// ThemeConfig selects a theme.
type ThemeConfig struct {
	NoColor bool
	// Mode is "dark" or "light". Anything else follows the terminal background.
	Mode string
}

// Theme is the resolved palette plus ready-made styles.
type Theme struct {
	NoColor bool
	Colors  Palette

	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Primary lipgloss.Style
	Bold    lipgloss.Style
	Card    lipgloss.Style
}

// NewTheme builds a Theme. With NoColor every style renders plain text.
func NewTheme(cfg ThemeConfig) *Theme {
	p := DarkPalette
	switch cfg.Mode {
	case "light":
		p = LightPalette
	case "dark":
	default:
		if !lipgloss.HasDarkBackground() {
			p = LightPalette
		}
	}

	t := &Theme{NoColor: cfg.NoColor, Colors: p}
	if cfg.NoColor {
		plain := lipgloss.NewStyle()
		t.Success, t.Warn, t.Error, t.Muted, t.Primary, t.Bold = plain, plain, plain, plain, plain, plain
		t.Card = plain.Padding(0, 2).MarginLeft(2)
		return t
	}

	t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success))
	t.Warn = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning))
	t.Error = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error))
	t.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted))
	t.Primary = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Primary)).Bold(true)
	t.Bold = lipgloss.NewStyle().Bold(true)
	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Border)).
		Padding(0, 2).
		MarginLeft(2)
	return t
}

// Symbols used in status lines.
func (t *Theme) SymSuccess() string  { return t.Success.Render("✓") }
func (t *Theme) SymError() string    { return t.Error.Render("✗") }
func (t *Theme) SymWarning() string  { return t.Warn.Render("!") }
func (t *Theme) SymProgress() string { return t.Muted.Render("○") }
