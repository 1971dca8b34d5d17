package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/AlecAivazis/survey/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/ora-response/cli/internal/response"
)

// consoleHost embeds the response step in a plain terminal session.
type consoleHost struct {
	out io.Writer
	log *slog.Logger

	region     response.Partial
	loadFailed string
	errors     map[string]string
	advanced   bool
}

func newConsoleHost(out io.Writer, logger *slog.Logger) *consoleHost {
	if logger == nil {
		logger = slog.Default()
	}
	return &consoleHost{out: out, log: logger, errors: make(map[string]string)}
}

func (h *consoleHost) ReplaceRegion(p response.Partial) {
	h.region = p
	h.loadFailed = ""
}

func (h *consoleHost) ReportLoadFailure(step string) {
	h.loadFailed = step
}

func (h *consoleHost) ReportActionError(action, message string) {
	if message == "" {
		delete(h.errors, action)
		return
	}
	h.errors[action] = message
}

func (h *consoleHost) AdvanceWorkflow() {
	h.advanced = true
	fmt.Fprintln(h.out, "Your response has been submitted.")
}

func (h *consoleHost) RefreshDependentModules() {
	h.log.Debug("dependent modules refresh requested")
}

// autoConfirm accepts every prompt, for --yes.
type autoConfirm struct{}

func (autoConfirm) Confirm(string) tea.Cmd {
	return func() tea.Msg { return response.ConfirmedMsg{Accepted: true} }
}

// promptConfirm asks on the terminal with a survey yes/no question.
type promptConfirm struct {
	out  io.Writer
	log  *slog.Logger
	opts []survey.AskOpt
}

func (p promptConfirm) logger() *slog.Logger {
	if p.log == nil {
		return slog.Default()
	}
	return p.log
}

func (p promptConfirm) Confirm(prompt string) tea.Cmd {
	return func() tea.Msg {
		fmt.Fprintln(p.out, prompt)
		accepted := false
		q := &survey.Confirm{Message: "Submit your response?", Default: false}
		if err := survey.AskOne(q, &accepted, p.opts...); err != nil {
			p.logger().Warn("confirmation prompt failed", "err", err)
			return response.ConfirmedMsg{}
		}
		return response.ConfirmedMsg{Accepted: accepted}
	}
}

// recordedConfirm remembers the answer the wrapped confirmer gave, so a
// declined prompt can be told apart from a refused submit.
type recordedConfirm struct {
	inner    response.Confirmer
	answered bool
	accepted bool
}

func (r *recordedConfirm) Confirm(prompt string) tea.Cmd {
	cmd := r.inner.Confirm(prompt)
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if m, ok := msg.(response.ConfirmedMsg); ok {
			r.answered = true
			r.accepted = m.Accepted
		}
		return msg
	}
}

func (r *recordedConfirm) declined() bool {
	return r.answered && !r.accepted
}
