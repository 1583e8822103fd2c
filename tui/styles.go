package tui

import "github.com/charmbracelet/lipgloss"

// Panel colors, tuned for dark terminals.
const (
	colorBorder    = "#3A3F55"
	colorPrimary   = "#E6EAF2"
	colorSecondary = "#B1B8C7"
	colorAccent    = "#2DA44E"
	colorWorking   = "#22C55E"
	colorBreak     = "#F59E0B"
	colorClosed    = "#6D7383"
	colorError     = "#EF4444"
	colorHelp      = "240"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(1, 3)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true)

	labelWorkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWorking)).Bold(true)
	labelBreakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBreak)).Bold(true)
	labelOffStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary)).Bold(true)
	labelClosedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorClosed)).Bold(true)

	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBreak))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorHelp))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true)
)
