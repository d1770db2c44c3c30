package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

	headerStyle = lipgloss.NewStyle().Bold(true)

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginBottom(0)

	repoNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))

	starsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))

	metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	linkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")).Underline(true)

	activeControlStyle = lipgloss.NewStyle().Bold(true)

	disabledControlStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
