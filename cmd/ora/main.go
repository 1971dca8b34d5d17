package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/ora-response/cli/internal/api"
	"github.com/gravitrone/ora-response/cli/internal/cmd"
	"github.com/gravitrone/ora-response/cli/internal/config"
	"github.com/gravitrone/ora-response/cli/internal/ui"
)

const dotenvPath = ".env"

func main() {
	root := &cobra.Command{
		Use:   "ora",
		Short: "ora - open response assessment",
		Long:  "ora: write, save and submit your response to an open response assessment.",
		PersistentPreRun: func(c *cobra.Command, _ []string) {
			if c.Name() == "ora" {
				return
			}
			level := config.Default().SlogLevel()
			if cfg, err := config.Resolve(dotenvPath); err == nil {
				level = cfg.SlogLevel()
			}
			slog.SetDefault(cmd.NewLogger(os.Stderr, level))
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.SaveCmd())
	root.AddCommand(cmd.SubmitCmd())
	root.AddCommand(cmd.StatusCmd())
	root.AddCommand(cmd.ServeDevCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return fmt.Errorf("ora needs an interactive terminal; use 'ora save' or 'ora submit' instead")
	}

	cfg, err := config.Resolve(dotenvPath)
	if err != nil {
		return err
	}

	logger, closer, err := cmd.OpenLogFile(config.LogPath(), cfg.SlogLevel())
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	client := api.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	app := ui.NewApp(client, cfg, logger)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
