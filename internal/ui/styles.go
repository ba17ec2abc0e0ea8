// Package ui renders aicommit's terminal output and prompts.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor  = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D7AFF"}
	successColor = lipgloss.AdaptiveColor{Light: "#1F8A3A", Dark: "#4AD66D"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF5F5F"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9A9A9A"}

	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	reverseStyle = lipgloss.NewStyle().Reverse(true)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			PaddingLeft(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// Panel draws body in a rounded box with title above it.
func Panel(title, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		panelTitleStyle.Render(title),
		panelStyle.Render(body),
	)
}
