package tui

import "github.com/charmbracelet/lipgloss"

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // validation messages, wrong answers
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // right answers
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#667eea")).
			Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(26)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("#667eea"))

	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#667eea")).
			MarginTop(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(1, 2)
)
