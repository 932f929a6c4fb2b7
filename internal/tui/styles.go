package tui

import "github.com/charmbracelet/lipgloss"

var (
	ActiveStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	InactiveStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("105"))
	ItemSubtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("180")).
			Italic(true)
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
	StatusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))
	StatusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
	HelpStyle = lipgloss.NewStyle().Padding(0, 0, 0, 2)
)
