package ui

import "github.com/charmbracelet/lipgloss"

var (
	BannerStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2)
	BannerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	StepStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)
