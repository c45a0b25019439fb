package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorIris  = lipgloss.Color("#5D3FD3")
	colorSlate = lipgloss.Color("#667085")
	colorWhite = lipgloss.Color("#FFFFFF")
	colorGreen = lipgloss.Color("42")
	colorRed   = lipgloss.Color("196")
	colorAmber = lipgloss.Color("214")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(colorIris).
			Foreground(colorWhite)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorSlate).
			Padding(0, 1)

	activePaneStyle = paneStyle.
			BorderForeground(colorIris)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorIris)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorSlate)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorAmber)

	errStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorIris).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorSlate).
			PaddingLeft(1)
)
