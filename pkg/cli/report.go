package cli

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/daybrief/pkg/auth"
	"github.com/harrisonrobin/daybrief/pkg/config"
	"github.com/harrisonrobin/daybrief/pkg/google"
	"github.com/harrisonrobin/daybrief/pkg/render"
	"github.com/harrisonrobin/daybrief/pkg/report"
)

// fetchTimeout bounds the whole fan-out. A slow service shows up as its
// section being unavailable, not as the tool hanging.
const fetchTimeout = 30 * time.Second

var (
	flagDays       int
	flagMailMax    int64
	flagTasksMax   int64
	flagHabitsMax  int64
	flagEventsMax  int64
	flagHabitsList string
)

func init() {
	rootCmd.Flags().IntVar(&flagDays, "days", 0, "calendar window in days (default from config, 7)")
	rootCmd.Flags().Int64Var(&flagMailMax, "mail-max", 0, "max inbox messages to show")
	rootCmd.Flags().Int64Var(&flagTasksMax, "tasks-max", 0, "max tasks per task list")
	rootCmd.Flags().Int64Var(&flagHabitsMax, "habits-max", 0, "max habits to show")
	rootCmd.Flags().Int64Var(&flagEventsMax, "events-max", 0, "max calendar events to show")
	rootCmd.Flags().StringVar(&flagHabitsList, "habits-list", "", "display name of the habits task list")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	// An interrupt abandons in-flight fetches. The token store is only
	// written right after a successful auth step, never mid-fetch, so
	// cancellation cannot corrupt it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mgr, err := newManager(cfg)
	if err != nil {
		return err
	}
	cred, err := mgr.Token(ctx)
	if err != nil {
		return err
	}

	// The token source keeps the credential fresh across the fetches
	// themselves; the store already holds the latest refresh token.
	orch, err := buildOrchestrator(ctx, mgr, cred, cfg)
	if err != nil {
		return err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	rep := orch.Fetch(fetchCtx)

	renderer := &render.Renderer{Days: cfg.WindowDays}
	renderer.Report(cmd.OutOrStdout(), rep)
	return nil
}

// newManager wires the credential lifecycle from resolved paths. A
// missing client secrets file fails here, before any network call.
func newManager(cfg *config.Config) (*auth.Manager, error) {
	credPath, tokPath, err := resolvePaths()
	if err != nil {
		return nil, err
	}

	oauthConfig, err := auth.LoadClientSecrets(credPath)
	if err != nil {
		return nil, err
	}
	store := auth.NewTokenStore(tokPath)
	timeout := time.Duration(cfg.AuthTimeoutSecs) * time.Second
	return auth.NewManager(oauthConfig, store, cfg.AuthPort, timeout), nil
}

// buildOrchestrator constructs the three service clients from one
// credential and injects them. The orchestrator never builds clients on
// its own.
func buildOrchestrator(ctx context.Context, mgr *auth.Manager, cred *auth.Credential, cfg *config.Config) (*report.Orchestrator, error) {
	ts := mgr.TokenSource(ctx, cred)

	gmailSvc, err := google.NewGmailService(ctx, ts)
	if err != nil {
		return nil, err
	}
	tasksSvc, err := google.NewTasksService(ctx, ts)
	if err != nil {
		return nil, err
	}
	calendarSvc, err := google.NewCalendarService(ctx, ts)
	if err != nil {
		return nil, err
	}

	opts := report.Options{
		MailMax:    int64(cfg.MailMax),
		TasksMax:   int64(cfg.TasksMax),
		HabitsMax:  int64(cfg.HabitsMax),
		EventsMax:  int64(cfg.EventsMax),
		WindowDays: cfg.WindowDays,
		HabitsList: cfg.HabitsList,
	}
	return report.New(
		google.NewMailClient(gmailSvc),
		google.NewTasksClient(tasksSvc),
		google.NewCalendarClient(calendarSvc),
		opts,
	), nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("days") {
		cfg.WindowDays = flagDays
	}
	if f.Changed("mail-max") {
		cfg.MailMax = int(flagMailMax)
	}
	if f.Changed("tasks-max") {
		cfg.TasksMax = int(flagTasksMax)
	}
	if f.Changed("habits-max") {
		cfg.HabitsMax = int(flagHabitsMax)
	}
	if f.Changed("events-max") {
		cfg.EventsMax = int(flagEventsMax)
	}
	if f.Changed("habits-list") {
		cfg.HabitsList = flagHabitsList
	}
}
