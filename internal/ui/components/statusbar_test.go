package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHintIncludesKeyAndDesc(t *testing.T) {
	out := Hint("ctrl+s", "Save")
	assert.True(t, strings.Contains(out, "Save"))
	assert.True(t, strings.Contains(out, "ctrl+s"))
}

func TestToggleHintKeepsTextWhenDisabled(t *testing.T) {
	on := SanitizeText(ToggleHint("ctrl+x", "Submit", true))
	off := SanitizeText(ToggleHint("ctrl+x", "Submit", false))
	assert.Contains(t, on, "Submit")
	assert.Contains(t, off, "Submit")
	assert.Contains(t, off, "ctrl+x")
}

func TestStatusBarRendersHints(t *testing.T) {
	out := StatusBar([]string{Hint("ctrl+c", "Quit")}, 0)
	assert.True(t, strings.Contains(out, "Quit"))
	assert.True(t, strings.Contains(out, "ctrl+c"))
}

func TestWrapSegmentsWrapsWhenNarrow(t *testing.T) {
	segments := []string{"123456", "abcdef", "ghijkl"}
	rows := wrapSegments(segments, 10)
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.LessOrEqual(t, lipgloss.Width(row), 10)
	}
}
