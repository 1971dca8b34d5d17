package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/ora-response/cli/internal/api"
	"github.com/gravitrone/ora-response/cli/internal/config"
	"github.com/gravitrone/ora-response/cli/internal/response"
)

var (
	errAlreadySubmitted = errors.New("response already submitted")
	errEmptyResponse    = errors.New("response is empty")
	errSubmitFailed     = errors.New("submit failed")
)

// dotenvPath is read before every command.
const dotenvPath = ".env"

func loadClient() (*config.Config, *api.Client, error) {
	cfg, err := config.Resolve(dotenvPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, api.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout), nil
}

// readDraft reads the response text from path, or from stdin when path is "-".
func readDraft(path string, stdin io.Reader) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--file is required")
	}
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}
	return string(data), nil
}

// openStep loads the response step and requires it to be editable.
func openStep(client *api.Client, host *consoleHost, confirm response.Confirmer) (*response.Controller, error) {
	c := response.NewController(response.NewAPIService(client), host, confirm, host.log)
	response.Drive(c, c.Load())
	if host.loadFailed != "" {
		return nil, fmt.Errorf("load %s step: service unavailable at %s", host.loadFailed, client.BaseURL())
	}
	if !c.Installed() {
		return nil, errAlreadySubmitted
	}
	return c, nil
}

// RunSave persists text as the draft.
func RunSave(client *api.Client, text string, out io.Writer, logger *slog.Logger) error {
	host := newConsoleHost(out, logger)
	c, err := openStep(client, host, autoConfirm{})
	if err != nil {
		return err
	}

	c.SetDraft(text)
	if !c.SaveEnabled() {
		if strings.TrimSpace(text) == "" {
			return errEmptyResponse
		}
		fmt.Fprintln(out, "Nothing to save: the draft matches the saved response.")
		return nil
	}

	response.Drive(c, c.Save())
	if msg, ok := host.errors[response.ActionSave]; ok {
		return fmt.Errorf("save failed: %s", msg)
	}
	fmt.Fprintln(out, c.State().Status)
	return nil
}

// RunSubmit submits text as the final response after confirm accepts.
// Declining the confirmation is not an error; a refused submit is.
func RunSubmit(client *api.Client, text string, confirm response.Confirmer, out io.Writer, logger *slog.Logger) error {
	host := newConsoleHost(out, logger)
	answer := &recordedConfirm{inner: confirm}
	c, err := openStep(client, host, answer)
	if err != nil {
		return err
	}

	c.SetDraft(text)
	if !c.SubmitEnabled() {
		return errEmptyResponse
	}

	response.Drive(c, c.Submit())
	switch {
	case c.Complete():
		return nil
	case answer.declined():
		fmt.Fprintln(out, "Submission cancelled.")
		return nil
	case host.errors[response.ActionSubmit] != "":
		return fmt.Errorf("%w: %s", errSubmitFailed, host.errors[response.ActionSubmit])
	default:
		return errSubmitFailed
	}
}

// RunStatus prints the workflow position and the response step's state.
func RunStatus(client *api.Client, out io.Writer) error {
	info, err := client.WorkflowInfo()
	if err != nil {
		return fmt.Errorf("workflow info: %w", err)
	}
	fmt.Fprintf(out, "workflow: %s\n", workflowLabel(info))
	if info.SubmissionUUID != "" {
		fmt.Fprintf(out, "submission: %s\n", info.SubmissionUUID)
	}
	for _, step := range info.Steps {
		state := "waiting"
		switch {
		case step.SubmitterOK:
			state = "complete"
		case step.Name == info.Status:
			state = "current"
		}
		fmt.Fprintf(out, "  %s: %s\n", step.Name, state)
	}

	raw, err := client.RenderPartial(response.StepName)
	if err != nil {
		return fmt.Errorf("render response: %w", err)
	}
	p, err := response.ParsePartial(raw)
	if err != nil {
		return err
	}
	if p.Status != "" {
		fmt.Fprintf(out, "response: %s\n", p.Status)
	} else if p.Editable {
		fmt.Fprintln(out, "response: "+response.StatusNotSaved)
	}
	return nil
}

func workflowLabel(info *api.WorkflowInfo) string {
	if info == nil || info.Status == "" {
		return "response"
	}
	return info.Status
}

// SaveCmd returns the `ora save` command.
func SaveCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a draft response without submitting it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readDraft(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, client, err := loadClient()
			if err != nil {
				return err
			}
			return RunSave(client, text, cmd.OutOrStdout(), slog.Default())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file holding the response text (- for stdin)")
	return cmd
}

// SubmitCmd returns the `ora submit` command.
func SubmitCmd() *cobra.Command {
	var (
		file string
		yes  bool
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the final response (cannot be changed afterwards)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readDraft(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, client, err := loadClient()
			if err != nil {
				return err
			}
			logger := slog.Default()
			var confirm response.Confirmer = promptConfirm{out: cmd.OutOrStdout(), log: logger}
			if yes {
				confirm = autoConfirm{}
			}
			return RunSubmit(client, text, confirm, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file holding the response text (- for stdin)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// StatusCmd returns the `ora status` command.
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the workflow and response status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}
			return RunStatus(client, cmd.OutOrStdout())
		},
	}
}
