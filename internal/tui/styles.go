package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	errorColor   = lipgloss.Color("#EF4444") // Red

	// Layout styles
	AppStyle    = lipgloss.NewStyle().Padding(1, 2)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	PanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primaryColor).Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(errorColor)

	// Help bar
	HelpStyle    = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
)
