package components

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const (
	panelBorderColor = lipgloss.Color("#273540")
	// border (2) plus horizontal padding (4)
	panelChrome = 6
	// widest label column in a Table
	labelCap = 24
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelBorderColor).
			Padding(1, 2)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f57b4")).
			Bold(true)

	rowLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#436b77")).
			Bold(true)

	rowKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ba0bf"))
	rowValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d7d9da"))

	errorPanelStyle = panelStyle.BorderForeground(lipgloss.Color("#7a2f3a"))
	errorTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06c75")).
			Bold(true)
	errorTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d6b5b5"))
)

// panelWidth picks the outer width of a panel: 70% of the terminal,
// between 40 and 80 columns, never wider than the terminal itself.
func panelWidth(termWidth int) int {
	if termWidth <= 0 {
		return 0
	}
	w := min(max(termWidth*70/100, 40), 80)
	return min(w, termWidth)
}

// Box renders content inside a bordered panel.
func Box(content string, width int) string {
	return panelStyle.Width(panelWidth(width)).Render(content)
}

// BoxContentWidth is the usable text width inside a panel.
func BoxContentWidth(width int) int {
	return max(panelWidth(width)-panelChrome, 0)
}

// ErrorBox renders a red panel with an optional heading.
func ErrorBox(title, message string, width int) string {
	body := errorTextStyle.Render(message)
	if title != "" {
		body = errorTitleStyle.Render(title) + "\n\n" + body
	}
	return errorPanelStyle.Width(panelWidth(width)).Render(body)
}

// TitledBox renders a panel with title set into its top border.
func TitledBox(title, content string, width int) string {
	boxed := Box(content, width)
	if title == "" {
		return boxed
	}

	lines := strings.Split(boxed, "\n")
	outer := lipgloss.Width(lines[0])
	if outer < 4 {
		return boxed
	}

	span := outer - 2
	label := cutRunes(" [ "+title+" ] ", span)
	fill := max(span-lipgloss.Width(label), 0)
	left := fill / 2

	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(panelBorderColor)
	lines[0] = edge.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		panelTitleStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, fill-left)+border.TopRight)
	return strings.Join(lines, "\n")
}

// InfoRow renders a single "label: value" line.
func InfoRow(label, value string) string {
	return rowKeyStyle.Render(SanitizeOneLine(label)+": ") + rowValueStyle.Render(SanitizeOneLine(value))
}

// TableRow is one label/value pair of a Table.
type TableRow struct {
	Label string
	Value string
}

// Table renders rows as two aligned columns in a titled panel. Values that
// do not fit the panel are cut.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(SanitizeOneLine(r.Label)))
	}
	labelWidth = min(labelWidth, labelCap)

	inner := BoxContentWidth(width)
	valueWidth := 0
	if inner > 0 {
		labelWidth = min(labelWidth, max(inner/2, 4))
		valueWidth = max(inner-labelWidth-2, 4)
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := cutRunes(SanitizeOneLine(r.Label), labelWidth)
		label += strings.Repeat(" ", max(labelWidth-lipgloss.Width(label), 0))
		value := SanitizeOneLine(r.Value)
		if valueWidth > 0 {
			value = cutRunes(value, valueWidth)
		}
		lines = append(lines, rowLabelStyle.Render(label)+"  "+rowValueStyle.Render(value))
	}
	return TitledBox(title, strings.Join(lines, "\n"), width)
}

// Indent prefixes every line of s with n spaces.
func Indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

// cutRunes keeps at most n runes of s.
func cutRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
