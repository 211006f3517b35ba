package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/echodeck/echodeck/internal/model"
)

var (
	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Underline(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	allClearStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	urgentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	importantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	routineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	noiseStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// tierStyle returns the style for a priority tier.
func tierStyle(c model.Category) lipgloss.Style {
	switch c {
	case model.CategoryUrgent:
		return urgentStyle
	case model.CategoryImportant:
		return importantStyle
	case model.CategoryRoutine:
		return routineStyle
	default:
		return noiseStyle
	}
}
