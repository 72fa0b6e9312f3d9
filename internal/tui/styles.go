package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Identity rendering, used when showing old → new pairs
	IdentityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	// Warning styling
	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)
)
