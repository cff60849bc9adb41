package teaport

import "github.com/charmbracelet/lipgloss"

// Styles holds the list's visual configuration.
type Styles struct {
	// Base wraps the rendered viewport block.
	Base lipgloss.Style
}

// DefaultStyles returns an unstyled viewport.
func DefaultStyles() Styles {
	return Styles{Base: lipgloss.NewStyle()}
}
