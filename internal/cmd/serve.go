package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/ora-response/cli/internal/devserver"
)

// ServeDevCmd returns the `ora serve-dev` command.
func ServeDevCmd() *cobra.Command {
	var (
		addr   string
		prompt string
	)
	cmd := &cobra.Command{
		Use:   "serve-dev",
		Short: "Run an in-memory assessment service for local development",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serveDev(ctx, devserver.New(prompt), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address")
	cmd.Flags().StringVar(&prompt, "prompt", "", "question shown to the learner")
	return cmd
}

// serveDev runs srv until ctx is cancelled.
func serveDev(ctx context.Context, srv *devserver.Server, addr string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
