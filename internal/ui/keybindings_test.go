package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.False(t, isQuit(runeKey('q')))
}

func TestIsBack(t *testing.T) {
	assert.True(t, isBack(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, isBack(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestSaveAndSubmitChords(t *testing.T) {
	assert.True(t, isSave(tea.KeyMsg{Type: tea.KeyCtrlS}))
	assert.False(t, isSave(runeKey('s')))
	assert.True(t, isSubmit(tea.KeyMsg{Type: tea.KeyCtrlX}))
	assert.False(t, isSubmit(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.True(t, isRetry(tea.KeyMsg{Type: tea.KeyCtrlR}))
}

func TestConfirmAnswers(t *testing.T) {
	assert.True(t, isYes(runeKey('y')))
	assert.True(t, isYes(runeKey('Y')))
	assert.False(t, isYes(runeKey('n')))
	assert.True(t, isNo(runeKey('n')))
	assert.True(t, isNo(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, isNo(runeKey('y')))
}
