package components

import (
	"github.com/charmbracelet/lipgloss"
)

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#273540")).
	Padding(1, 2).
	Width(56)

var (
	dialogHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)
	dialogBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
)

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	header := dialogHeaderStyle.Render(SanitizeOneLine(title))
	body := dialogBodyStyle.Render(SanitizeText(message))
	hint := dialogBodyStyle.Render("\ny: confirm | n: cancel")

	return dialogStyle.Render(header + "\n\n" + body + hint)
}
