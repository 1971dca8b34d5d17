package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Key Constants ---

const (
	keySave   = "ctrl+s"
	keySubmit = "ctrl+x"
	keyQuit   = "ctrl+c"
	keyRetry  = "ctrl+r"
)

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

// Plain letters belong to the editor, so only control chords act globally.
func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, keyQuit)
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isSave(msg tea.KeyMsg) bool {
	return isKey(msg, keySave)
}

func isSubmit(msg tea.KeyMsg) bool {
	return isKey(msg, keySubmit)
}

func isRetry(msg tea.KeyMsg) bool {
	return isKey(msg, keyRetry)
}

func isYes(msg tea.KeyMsg) bool {
	return isKey(msg, "y", "Y")
}

func isNo(msg tea.KeyMsg) bool {
	return isKey(msg, "n", "N") || isBack(msg)
}
