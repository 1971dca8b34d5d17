package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary   = lipgloss.Color("#7f57b4") // purple
	ColorSecondary = lipgloss.Color("#436b77") // teal
	ColorText      = lipgloss.Color("#d7d9da") // main text
	ColorMuted     = lipgloss.Color("#9ba0bf") // muted text
	ColorSuccess   = lipgloss.Color("#3f866b") // green
	ColorError     = lipgloss.Color("#b25a68") // red
	ColorWarning   = lipgloss.Color("#c78854") // warning
	ColorBorder    = lipgloss.Color("#273540") // border
)

// --- Reusable Styles ---

var (
	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MetaKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	MetaValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)
