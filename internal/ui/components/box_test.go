package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestPanelWidthBounds(t *testing.T) {
	assert.Equal(t, 0, panelWidth(0))
	assert.Equal(t, 10, panelWidth(10))
	assert.Equal(t, 40, panelWidth(50))
	assert.Equal(t, 70, panelWidth(100))
	assert.Equal(t, 80, panelWidth(200))
	assert.Equal(t, 64, BoxContentWidth(100))
}

func TestBoxNarrowTerminalClampsWidth(t *testing.T) {
	out := TitledBox("Your Response", "line", 20)
	overflow := false
	for _, line := range strings.Split(out, "\n") {
		if lipgloss.Width(line) > 20 {
			overflow = true
			break
		}
	}
	assert.False(t, overflow)
}

func TestTitledBoxIncludesTitle(t *testing.T) {
	out := TitledBox("My Title", "Content", 80)
	assert.True(t, strings.Contains(out, "My Title"))
}

func TestTitledBoxEmptyTitleFallsBack(t *testing.T) {
	out := TitledBox("", "Content", 80)
	assert.True(t, strings.Contains(out, "Content"))
}

func TestErrorBoxIncludesMessage(t *testing.T) {
	out := ErrorBox("Error", "Something broke", 80)
	assert.True(t, strings.Contains(out, "Something broke"))
}

func TestCutRunes(t *testing.T) {
	assert.Equal(t, "", cutRunes("hello", 0))
	assert.Equal(t, "he", cutRunes("hello", 2))
	assert.Equal(t, "hello", cutRunes("hello", 9))
	assert.Equal(t, "你", cutRunes("你好", 1))
}

// TestTableClampsLongValues ensures table rows stay within the box width.
func TestTableClampsLongValues(t *testing.T) {
	rows := []TableRow{
		{
			Label: strings.Repeat("Label", 8),
			Value: strings.Repeat("value", 40),
		},
	}
	out := Table("Table", rows, 60)
	maxWidth := lipgloss.Width(strings.Split(Box("x", 60), "\n")[0])
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), maxWidth)
	}
}

func TestInfoRowSanitizesLabelAndValue(t *testing.T) {
	out := InfoRow("na\u202Eme\x1b]0;evil\x07", "va\x1b[2Jlu\u202Ee")
	assert.NotContains(t, out, "\u202E")
	assert.NotContains(t, out, "\x1b]")
	assert.NotContains(t, out, "\x1b[2J")

	clean := SanitizeText(out)
	assert.Contains(t, clean, "name: value")
}

func TestIndentPreservesLineCountAndAddsPadding(t *testing.T) {
	src := "a\nb\nc"
	out := Indent(src, 2)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}

func TestTableAlignsValues(t *testing.T) {
	out := SanitizeText(Table("Assessment", []TableRow{
		{Label: "Server", Value: "http://localhost:8000"},
		{Label: "Response", Value: "saved"},
	}, 100))

	assert.Contains(t, out, "Assessment")
	assert.Contains(t, out, "Server    http://localhost:8000")
	assert.Contains(t, out, "Response  saved")
}

func TestTableWithoutRowsIsEmpty(t *testing.T) {
	assert.Empty(t, Table("Assessment", nil, 80))
}
