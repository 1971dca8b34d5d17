// Package response drives the response-authoring step of an assessment
// workflow: the learner's draft, explicit saves, and the irrevocable final
// submission.
//
// Every network call and the confirmation prompt are asynchronous. They are
// issued as tea.Cmd values whose resolved messages must be handed back to
// Controller.Update on the same goroutine that handles edits.
package response

import (
	"errors"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/ora-response/cli/internal/api"
)

// StepName is the workflow step this controller renders.
const StepName = "response"

// Action names reported to Host.ReportActionError.
const (
	ActionSave   = "save"
	ActionSubmit = "submit"
)

// Status line texts.
const (
	StatusNotSaved = "This response has not been saved."
	StatusSaving   = "Saving..."
	StatusSaved    = "This response has been saved but not submitted."
	StatusError    = "Error"
)

// ConfirmPrompt is shown before a final submission.
const ConfirmPrompt = "You're about to submit your response for this assignment. " +
	"After you submit this response, you can't change it or submit a new response."

// Service is the remote side of the step.
type Service interface {
	RenderPartial(view string) (string, error)
	SaveDraft(text string) error
	SubmitFinal(text string) error
}

// Host is the surface the step is embedded in.
type Host interface {
	ReplaceRegion(p Partial)
	ReportLoadFailure(step string)
	// ReportActionError shows message for action. An empty message clears it.
	ReportActionError(action, message string)
	AdvanceWorkflow()
	RefreshDependentModules()
}

// Confirmer asks the learner to accept an irrevocable action. The returned
// command (which may be nil when the answer arrives later through the host's
// own input) must eventually deliver exactly one ConfirmedMsg.
type Confirmer interface {
	Confirm(prompt string) tea.Cmd
}

// --- Messages ---

type partialLoadedMsg struct {
	html string
	err  error
}

type draftSavedMsg struct {
	text string
	err  error
}

type submittedMsg struct {
	err error
}

// ConfirmedMsg resolves a pending confirmation.
type ConfirmedMsg struct {
	Accepted bool
}

// Controller owns the draft and the submission state machine.
type Controller struct {
	svc     Service
	host    Host
	confirm Confirmer
	log     *slog.Logger

	draft string
	saved string

	installed  bool
	submitting bool
	confirming bool
	complete   bool
	warnArmed  bool
	status     string
}

// NewController builds a controller. A nil logger falls back to slog.Default.
func NewController(svc Service, host Host, confirm Confirmer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		svc:     svc,
		host:    host,
		confirm: confirm,
		log:     logger.With("step", StepName),
	}
}

// Draft returns the live draft text.
func (c *Controller) Draft() string { return c.draft }

// Saved returns the text last confirmed persisted.
func (c *Controller) Saved() string { return c.saved }

// Installed reports whether the editing controls are bound.
func (c *Controller) Installed() bool { return c.installed }

// Complete reports whether the final submission went through.
func (c *Controller) Complete() bool { return c.complete }

// Confirming reports whether a confirmation prompt is outstanding.
func (c *Controller) Confirming() bool { return c.confirming }

// Load requests the step's partial. The result arrives as a message.
func (c *Controller) Load() tea.Cmd {
	svc := c.svc
	return func() tea.Msg {
		html, err := svc.RenderPartial(StepName)
		return partialLoadedMsg{html: html, err: err}
	}
}

// SetDraft records a user edit and recomputes derived state.
func (c *Controller) SetDraft(text string) {
	if !c.installed {
		return
	}
	c.draft = text
	c.OnDraftChanged()
}

// OnDraftChanged recomputes state after an edit. Calling it again without
// an intervening edit changes nothing.
func (c *Controller) OnDraftChanged() {
	if c.draft != c.saved {
		c.status = StatusNotSaved
		c.warnArmed = true
	}
}

// Save persists the current draft.
func (c *Controller) Save() tea.Cmd {
	if !c.installed {
		return nil
	}
	c.warnArmed = false
	c.status = StatusSaving
	c.host.ReportActionError(ActionSave, "")

	pending := c.draft
	svc := c.svc
	c.log.Debug("saving draft", "chars", len(pending))
	return func() tea.Msg {
		return draftSavedMsg{text: pending, err: svc.SaveDraft(pending)}
	}
}

// Submit starts the final submission by asking for confirmation.
func (c *Controller) Submit() tea.Cmd {
	if !c.installed || c.complete || c.submitting {
		return nil
	}
	c.submitting = true
	c.confirming = true
	return c.confirm.Confirm(ConfirmPrompt)
}

// Update applies a resolved request or confirmation.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case partialLoadedMsg:
		return c.handleLoaded(msg)
	case draftSavedMsg:
		c.handleSaved(msg)
	case ConfirmedMsg:
		return c.handleConfirmed(msg)
	case submittedMsg:
		return c.handleSubmitted(msg)
	}
	return nil
}

func (c *Controller) handleLoaded(msg partialLoadedMsg) tea.Cmd {
	if msg.err != nil {
		c.log.Warn("load failed", "error", msg.err)
		c.installed = false
		c.host.ReportLoadFailure(StepName)
		return nil
	}
	p, err := ParsePartial(msg.html)
	if err != nil {
		c.log.Warn("load failed", "error", err)
		c.installed = false
		c.host.ReportLoadFailure(StepName)
		return nil
	}

	c.host.ReplaceRegion(p)
	c.draft = p.Draft
	c.saved = p.Draft
	c.status = p.Status
	c.warnArmed = false
	c.submitting = false
	c.confirming = false
	c.installed = p.Editable && !c.complete
	c.log.Debug("partial loaded", "editable", p.Editable)
	return nil
}

func (c *Controller) handleSaved(msg draftSavedMsg) {
	if msg.err != nil {
		c.log.Warn("save failed", "error", msg.err)
		c.status = StatusError
		c.host.ReportActionError(ActionSave, msg.err.Error())
		return
	}
	c.saved = msg.text
	if c.draft == msg.text {
		c.status = StatusSaved
	}
	c.log.Debug("draft saved", "current", c.draft == msg.text)
}

func (c *Controller) handleConfirmed(msg ConfirmedMsg) tea.Cmd {
	if !c.confirming {
		return nil
	}
	c.confirming = false
	if !msg.Accepted {
		c.submitting = false
		return nil
	}

	c.host.ReportActionError(ActionSubmit, "")
	text := c.draft
	svc := c.svc
	c.log.Info("submitting response", "chars", len(text))
	return func() tea.Msg {
		return submittedMsg{err: svc.SubmitFinal(text)}
	}
}

func (c *Controller) handleSubmitted(msg submittedMsg) tea.Cmd {
	if msg.err == nil {
		return c.moveToNextStep()
	}

	var subErr *api.SubmitError
	if errors.As(msg.err, &subErr) {
		if subErr.Kind == api.SubmitErrorDuplicate {
			c.log.Info("response already submitted")
			return c.moveToNextStep()
		}
		if subErr.Message != "" {
			c.host.ReportActionError(ActionSubmit, subErr.Message)
		}
	} else {
		c.host.ReportActionError(ActionSubmit, msg.err.Error())
	}
	c.log.Warn("submit failed", "error", msg.err)
	c.submitting = false
	return nil
}

func (c *Controller) moveToNextStep() tea.Cmd {
	c.warnArmed = false
	c.complete = true
	c.installed = false
	c.submitting = false
	c.host.AdvanceWorkflow()
	c.host.RefreshDependentModules()
	return c.Load()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
