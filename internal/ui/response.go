package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/ora-response/cli/internal/response"
	"github.com/gravitrone/ora-response/cli/internal/ui/components"
)

const responseTitle = "Your Response"

var actionErrorLabels = map[string]string{
	response.ActionSave:   "Unable to save your response",
	response.ActionSubmit: "Unable to submit your response",
}

// ResponseModel is the response step: prompt, editor, status line and the
// submit confirmation dialog.
type ResponseModel struct {
	ctrl   *response.Controller
	host   *stepHost
	editor textarea.Model

	regionVersion int
	loading       bool

	width  int
	height int
}

// NewResponseModel wires a controller to the terminal host.
func NewResponseModel(svc response.Service, logger *slog.Logger) ResponseModel {
	host := newStepHost()

	editor := textarea.New()
	editor.Placeholder = "Enter your response to the question above."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetHeight(8)
	editor.Focus()

	return ResponseModel{
		ctrl:    response.NewController(svc, host, host, logger),
		host:    host,
		editor:  editor,
		loading: true,
	}
}

func (m ResponseModel) Init() tea.Cmd {
	return tea.Batch(m.ctrl.Load(), textarea.Blink)
}

// UnsavedWarning reports whether leaving now would drop unsaved edits.
func (m ResponseModel) UnsavedWarning() bool {
	return m.ctrl.UnsavedWarning()
}

func (m *ResponseModel) setSize(width, height int) {
	m.width = width
	m.height = height
	if w := components.BoxContentWidth(width); w > 0 {
		m.editor.SetWidth(w)
	}
}

func (m ResponseModel) Update(msg tea.Msg) (ResponseModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeys(key)
	}

	cmd := m.ctrl.Update(msg)
	m.syncRegion()

	var editorCmd tea.Cmd
	m.editor, editorCmd = m.editor.Update(msg)
	return m, tea.Batch(cmd, editorCmd)
}

func (m ResponseModel) handleKeys(msg tea.KeyMsg) (ResponseModel, tea.Cmd) {
	if m.host.confirmOpen {
		var cmd tea.Cmd
		switch {
		case isYes(msg):
			m.host.closeConfirm()
			cmd = m.ctrl.Update(response.ConfirmedMsg{Accepted: true})
		case isNo(msg):
			m.host.closeConfirm()
			cmd = m.ctrl.Update(response.ConfirmedMsg{Accepted: false})
		}
		return m, cmd
	}

	if !m.ctrl.Installed() {
		if m.host.loadFailed != "" && isRetry(msg) {
			m.host.loadFailed = ""
			m.loading = true
			return m, m.ctrl.Load()
		}
		return m, nil
	}

	switch {
	case isSave(msg):
		if !m.ctrl.SaveEnabled() {
			return m, nil
		}
		return m, m.ctrl.Save()
	case isSubmit(msg):
		if !m.ctrl.SubmitEnabled() {
			return m, nil
		}
		return m, m.ctrl.Submit()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.ctrl.SetDraft(m.editor.Value())
	return m, cmd
}

// syncRegion resets the editor whenever the host received a new partial.
func (m *ResponseModel) syncRegion() {
	if m.host.regionVersion != m.regionVersion {
		m.regionVersion = m.host.regionVersion
		m.editor.SetValue(m.host.region.Draft)
		m.loading = false
	}
	if m.host.loadFailed != "" {
		m.loading = false
	}
}

func (m ResponseModel) View() string {
	if m.host.loadFailed != "" {
		return components.ErrorBox(
			"Unable to load",
			"This step could not be loaded. Press "+keyRetry+" to try again.",
			m.width,
		)
	}
	if m.loading {
		return components.Box(MutedStyle.Render("Loading your response..."), m.width)
	}

	var b strings.Builder
	if prompt := components.SanitizeText(m.host.region.Prompt); prompt != "" {
		b.WriteString(NormalStyle.Render(prompt))
		b.WriteString("\n\n")
	}

	if !m.ctrl.Installed() {
		b.WriteString(m.renderSubmitted())
		return components.TitledBox(responseTitle, b.String(), m.width)
	}

	state := m.ctrl.State()
	b.WriteString(m.editor.View())
	if status := renderStatus(state.Status); status != "" {
		b.WriteString("\n\n")
		b.WriteString(status)
	}
	for _, action := range []string{response.ActionSave, response.ActionSubmit} {
		if msg, ok := m.host.actionErrors[action]; ok {
			b.WriteString("\n")
			b.WriteString(ErrorStyle.Render(actionErrorLabels[action] + ": " + components.SanitizeOneLine(msg)))
		}
	}

	hints := components.StatusBar([]string{
		components.ToggleHint(keySave, "Save", state.SaveEnabled),
		components.ToggleHint(keySubmit, "Submit", state.SubmitEnabled),
		components.Hint(keyQuit, "Quit"),
	}, components.BoxContentWidth(m.width))
	b.WriteString("\n\n")
	b.WriteString(hints)

	view := components.TitledBox(responseTitle, b.String(), m.width)
	if m.host.confirmOpen {
		dialog := components.ConfirmDialog("Submit your response?", m.host.confirmPrompt)
		view = lipgloss.JoinVertical(lipgloss.Left, view, dialog)
	}
	return view
}

func (m ResponseModel) renderSubmitted() string {
	var b strings.Builder
	if answer := components.SanitizeText(m.host.region.Answer); answer != "" {
		b.WriteString(MetaKeyStyle.Render("Submitted"))
		b.WriteString("\n")
		b.WriteString(MetaValueStyle.Render(answer))
		b.WriteString("\n\n")
	}
	status := m.host.region.Status
	if status == "" {
		status = "Your response has been submitted."
	}
	b.WriteString(components.InfoRow("Status", status))
	return b.String()
}

func renderStatus(status string) string {
	switch status {
	case "":
		return ""
	case response.StatusError:
		return ErrorStyle.Render(status)
	case response.StatusSaved:
		return SuccessStyle.Render(status)
	case response.StatusNotSaved:
		return WarningStyle.Render(status)
	default:
		return MutedStyle.Render(components.SanitizeOneLine(status))
	}
}
