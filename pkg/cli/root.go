package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/daybrief/pkg/config"
)

var (
	credentialsPath string
	tokenPath       string
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "daybrief",
	Short: "One-shot summary of your Gmail, Google Tasks, Calendar, and habits",
	Long: `daybrief prints a combined report of your Gmail inbox, Google Tasks,
upcoming Google Calendar events, and a dedicated "Habits" task list.

All three services share one OAuth credential. The first run opens a
consent page in your browser and stores a refreshable token; later runs
reuse it silently. A failing service only blanks its own section, the
rest of the report still prints.`,
	RunE:          runReport,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		// Diagnostic logging is opt-in; the report itself goes to stdout.
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&credentialsPath, "credentials", "",
		"path to the OAuth client secrets file (default ~/.config/daybrief/credentials.json)")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token", "",
		"path to the stored token file (default ~/.config/daybrief/token.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log credential and fetch diagnostics to stderr")
}

// Execute runs the command tree. Partial reports exit zero; only
// configuration, authorization, and token-store failures are fatal.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolvePaths fills in the default file locations for anything not
// overridden on the command line.
func resolvePaths() (credentials, token string, err error) {
	credentials, token = credentialsPath, tokenPath
	if credentials != "" && token != "" {
		return credentials, token, nil
	}

	dir, err := config.Dir()
	if err != nil {
		return "", "", fmt.Errorf("could not resolve config directory: %w", err)
	}
	if credentials == "" {
		credentials = filepath.Join(dir, "credentials.json")
	}
	if token == "" {
		token = filepath.Join(dir, "token.json")
	}
	return credentials, token, nil
}
