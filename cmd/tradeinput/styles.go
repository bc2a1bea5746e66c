package main

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	primaryColor  = lipgloss.Color("#7C3AED") // Purple
	acceptColor   = lipgloss.Color("#10B981") // Green
	errorColor    = lipgloss.Color("#EF4444") // Red
	mutedColor    = lipgloss.Color("#6B7280") // Gray
	borderColor   = lipgloss.Color("#374151")
	textColor     = lipgloss.Color("#F9FAFB")
	secondaryText = lipgloss.Color("#9CA3AF")
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	promptStyle = lipgloss.NewStyle().
			Foreground(textColor)

	hintStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(secondaryText)

	acceptedStyle = lipgloss.NewStyle().
			Foreground(acceptColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)
