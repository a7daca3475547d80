package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/daybrief/pkg/auth"
	"github.com/harrisonrobin/daybrief/pkg/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Re-run the Google consent flow",
	Long: `Discard any stored token and run the interactive consent flow again.

Useful after revoking access in your Google account, or to grant the
report scopes to a different account.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	mgr, err := newManager(cfg)
	if err != nil {
		return err
	}

	_, tokPath, err := resolvePaths()
	if err != nil {
		return err
	}
	if err := auth.NewTokenStore(tokPath).Delete(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := mgr.Token(ctx); err != nil {
		return err
	}
	cmd.Printf("Authentication successful. Token saved to %s\n", tokPath)
	return nil
}
