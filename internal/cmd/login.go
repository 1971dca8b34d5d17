package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/ora-response/cli/internal/api"
	"github.com/gravitrone/ora-response/cli/internal/config"
)

// RunInteractiveLogin prompts for the service URL and API key, checks that
// the service answers, and persists config.
func RunInteractiveLogin(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "base url [%s]: ", api.DefaultBaseURL)
	baseURL, _ := reader.ReadString('\n')
	baseURL = strings.TrimSpace(baseURL)
	if baseURL != "" && !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return fmt.Errorf("base url must start with http:// or https://")
	}

	fmt.Fprint(out, "api key (optional): ")
	apiKey, _ := reader.ReadString('\n')
	apiKey = strings.TrimSpace(apiKey)

	cfg := config.Default()
	client := api.NewDefaultClient(apiKey, cfg.Timeout)
	if baseURL != "" {
		client = api.NewClient(baseURL, apiKey, cfg.Timeout)
	}
	cfg.BaseURL = client.BaseURL()
	cfg.APIKey = apiKey

	info, err := client.WorkflowInfo()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "connected to %s (%s)\n", cfg.BaseURL, workflowLabel(info))
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// LoginCmd returns the `ora login` command.
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Connect to an assessment service and save the config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunInteractiveLogin(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
