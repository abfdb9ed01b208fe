package cli

import "github.com/charmbracelet/lipgloss"

var (
	styleBold  = lipgloss.NewStyle().Bold(true)
	styleFaded = lipgloss.NewStyle().Faint(true)

	StyleError   = lipgloss.NewStyle().Foreground(lipgloss.Color(AnsiRed))
	StyleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color(AnsiGreen))
	StyleTitle   = styleBold
	StyleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color(AnsiYellow))
	StyleHint    = styleFaded

	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(AnsiBlue))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(AnsiGray))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()
)
