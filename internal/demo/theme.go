package demo

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kvisser/scrollto/internal/config"
)

// Theme holds the demo's resolved styles.
type Theme struct {
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	StatusBar lipgloss.Style
	Gutter    lipgloss.Style
}

// NewTheme builds styles from the configured colors. Terminals without a
// dark background get the highlight color as foreground-on-default so
// light schemes stay readable.
func NewTheme(cfg config.ThemeConfig) Theme {
	highlight := lipgloss.Color(cfg.Highlight)
	subtle := lipgloss.Color(cfg.Subtle)
	accent := lipgloss.Color(cfg.Accent)
	errc := lipgloss.Color(cfg.Error)

	title := lipgloss.NewStyle().Bold(true).Foreground(highlight)
	status := lipgloss.NewStyle().Foreground(subtle)
	if termenv.HasDarkBackground() {
		status = status.Faint(true)
	}

	return Theme{
		Title:     title,
		Subtle:    lipgloss.NewStyle().Foreground(subtle),
		Accent:    lipgloss.NewStyle().Foreground(accent),
		Error:     lipgloss.NewStyle().Foreground(errc),
		StatusBar: status,
		Gutter:    lipgloss.NewStyle().Foreground(subtle),
	}
}
