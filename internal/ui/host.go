package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/ora-response/cli/internal/response"
)

// stepHost is the terminal side of the response step. The controller calls
// into it synchronously from Update, and the models read it back when
// rendering or deciding follow-up commands.
type stepHost struct {
	region        response.Partial
	regionVersion int
	loadFailed    string
	actionErrors  map[string]string

	advancePending bool
	refreshPending bool

	confirmOpen   bool
	confirmPrompt string
}

func newStepHost() *stepHost {
	return &stepHost{actionErrors: make(map[string]string)}
}

func (h *stepHost) ReplaceRegion(p response.Partial) {
	h.region = p
	h.regionVersion++
	h.loadFailed = ""
}

func (h *stepHost) ReportLoadFailure(step string) {
	h.loadFailed = step
}

func (h *stepHost) ReportActionError(action, message string) {
	if message == "" {
		delete(h.actionErrors, action)
		return
	}
	h.actionErrors[action] = message
}

func (h *stepHost) AdvanceWorkflow() {
	h.advancePending = true
}

func (h *stepHost) RefreshDependentModules() {
	h.refreshPending = true
}

// Confirm opens the in-terminal dialog. The answer is delivered later by
// ResponseModel when the learner presses y or n.
func (h *stepHost) Confirm(prompt string) tea.Cmd {
	h.confirmOpen = true
	h.confirmPrompt = prompt
	return nil
}

func (h *stepHost) closeConfirm() {
	h.confirmOpen = false
	h.confirmPrompt = ""
}

// takeAdvance reports and clears a pending workflow advance.
func (h *stepHost) takeAdvance() bool {
	pending := h.advancePending
	h.advancePending = false
	return pending
}

// takeRefresh reports and clears a pending dependent-module refresh.
func (h *stepHost) takeRefresh() bool {
	pending := h.refreshPending
	h.refreshPending = false
	return pending
}
