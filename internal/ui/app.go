package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/ora-response/cli/internal/api"
	"github.com/gravitrone/ora-response/cli/internal/config"
	"github.com/gravitrone/ora-response/cli/internal/response"
	"github.com/gravitrone/ora-response/cli/internal/ui/components"
)

// --- Messages ---

type clearToastMsg struct{}

type workflowLoadedMsg struct {
	info *api.WorkflowInfo
	err  error
}

// toastTTL is how long a toast stays on screen.
var toastTTL = 2500 * time.Millisecond

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model. It hosts the response step and a workflow
// panel that is refreshed whenever the step advances.
type App struct {
	client *api.Client
	config *config.Config
	log    *slog.Logger

	step        ResponseModel
	workflow    *api.WorkflowInfo
	workflowErr string
	submitted   bool

	toast       *appToast
	quitConfirm bool

	width  int
	height int
}

// NewApp creates the root application model.
func NewApp(client *api.Client, cfg *config.Config, logger *slog.Logger) App {
	if logger == nil {
		logger = slog.Default()
	}
	return App{
		client: client,
		config: cfg,
		log:    logger,
		step:   NewResponseModel(response.NewAPIService(client), logger),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.step.Init(), a.loadWorkflowCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.step.setSize(msg.Width, msg.Height)
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case workflowLoadedMsg:
		if msg.err != nil {
			a.log.Warn("workflow info unavailable", "err", msg.err)
			a.workflowErr = msg.err.Error()
			return a, nil
		}
		a.workflow = msg.info
		a.workflowErr = ""
		return a, nil

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isYes(msg):
				return a, tea.Quit
			case isNo(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if isQuit(msg) {
			if a.step.UnsavedWarning() {
				a.quitConfirm = true
				return a, nil
			}
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.step, cmd = a.step.Update(msg)
	return a, tea.Batch(cmd, a.followUps())
}

// followUps turns workflow requests recorded by the step host into commands.
func (a *App) followUps() tea.Cmd {
	var cmds []tea.Cmd
	if a.step.host.takeAdvance() {
		a.submitted = true
		cmds = append(cmds, a.setToast("success", "Your response has been submitted."))
	}
	if a.step.host.takeRefresh() {
		cmds = append(cmds, a.loadWorkflowCmd())
	}
	return tea.Batch(cmds...)
}

func (a App) loadWorkflowCmd() tea.Cmd {
	if a.client == nil {
		return nil
	}
	client := a.client
	return func() tea.Msg {
		info, err := client.WorkflowInfo()
		return workflowLoadedMsg{info: info, err: err}
	}
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	panel := centerBlockUniform(a.renderWorkflow(), a.width)

	content := a.step.View()
	if a.quitConfirm {
		content = a.renderQuitConfirm()
	}
	content = centerBlockUniform(content, a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}
	return fmt.Sprintf("%s\n%s\n\n%s%s", banner, panel, content, feedback)
}

func (a App) renderQuitConfirm() string {
	body := "You have unsaved changes. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

func (a App) renderWorkflow() string {
	var rows []components.TableRow
	if a.config != nil && a.config.BaseURL != "" {
		rows = append(rows, components.TableRow{Label: "Server", Value: a.config.BaseURL})
	}
	rows = append(rows, components.TableRow{Label: "Response", Value: a.responseProgress()})
	switch {
	case a.workflowErr != "":
		rows = append(rows, components.TableRow{Label: "Workflow", Value: "unavailable"})
	case a.workflow == nil:
		rows = append(rows, components.TableRow{Label: "Workflow", Value: "loading"})
	default:
		for _, step := range a.workflow.Steps {
			rows = append(rows, components.TableRow{
				Label: stepLabel(step.Name),
				Value: stepProgress(step, a.workflow.Status),
			})
		}
	}
	return components.Table("Assessment", rows, a.width)
}

func (a App) responseProgress() string {
	if a.submitted || (a.workflow != nil && a.workflow.SubmissionUUID != "") {
		return "submitted"
	}
	return "in progress"
}

func stepLabel(name string) string {
	switch name {
	case api.WorkflowPeer:
		return "Peer assessment"
	case api.WorkflowSelf:
		return "Self assessment"
	}
	if name == "" {
		return "Step"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func stepProgress(step api.WorkflowStep, current string) string {
	switch {
	case step.SubmitterOK:
		return "complete"
	case step.Name == current:
		return "current"
	default:
		return "waiting"
	}
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
