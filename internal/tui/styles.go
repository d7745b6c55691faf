package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5733"))

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(22)
	activeItemStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	contentStyle    = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("69")).
			Padding(0, 1)

	statusStyles = map[string]lipgloss.Style{
		"affirmative": lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"tentative":   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"neutral":     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)
