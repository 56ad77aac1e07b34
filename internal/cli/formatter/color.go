package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/drossen/unplug/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StateStyle returns the style for a focus state indicator.
func StateStyle(state domain.FocusState) lipgloss.Style {
	switch state {
	case domain.StateActive:
		return StyleGreen
	case domain.StateScheduled:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StateIndicator renders a colored indicator such as "● ACTIVE".
func StateIndicator(state domain.FocusState) string {
	switch state {
	case domain.StateActive:
		return StyleGreen.Render("● ACTIVE")
	case domain.StateScheduled:
		return StyleYellow.Render("◑ SCHEDULED")
	default:
		return StyleDim.Render("○ INACTIVE")
	}
}
