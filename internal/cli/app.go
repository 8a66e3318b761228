// Package cli implements the reviewflow command surface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/reviewflow"
	"github.com/randalmurphal/reviewflow/config"
	rferrors "github.com/randalmurphal/reviewflow/errors"
	"github.com/randalmurphal/reviewflow/flow"
	"github.com/randalmurphal/reviewflow/notify"
)

// WorkflowRunner drives workflow runs. Satisfied by *reviewflow.Runner;
// tests substitute a mock.
type WorkflowRunner interface {
	Run(ctx context.Context, task string) (*reviewflow.Result, error)
	Resume(ctx context.Context, runID string) (*reviewflow.Result, error)
}

// App carries the CLI's collaborators. Commands read configuration from
// it and build a runner per invocation so per-command flags can adjust
// the config first.
type App struct {
	Config config.Config
	Out    io.Writer
	Err    io.Writer

	// NewRunner builds the workflow runner for a command invocation.
	// Defaults to the real constructor; tests inject a mock factory.
	NewRunner func(cfg config.Config) (WorkflowRunner, error)
}

// NewApp creates an App bound to the process's stdio.
func NewApp(cfg config.Config) *App {
	return &App{
		Config:    cfg,
		Out:       os.Stdout,
		Err:       os.Stderr,
		NewRunner: newWorkflowRunner,
	}
}

func newWorkflowRunner(cfg config.Config) (WorkflowRunner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	saver, err := flow.NewSQLiteSaver[reviewflow.State](cfg.CheckpointPath)
	if err != nil {
		return nil, err
	}

	notifier := notify.Notifier(notify.NewLogNotifier(slog.Default()))
	if cfg.WebhookURL != "" {
		notifier = notify.NewMultiNotifier(notifier, notify.NewWebhookNotifier(cfg.WebhookURL, nil))
	}

	return reviewflow.NewRunner(cfg,
		reviewflow.WithCheckpointer(saver),
		reviewflow.WithNotifier(notifier),
	)
}

// NewRootCommand builds the root command with all subcommands attached.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "reviewflow",
		Short:         "Multi-agent code review workflow",
		Long:          "reviewflow classifies a task, then generates, reviews, and documents code through a bounded multi-agent workflow.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.AddCommand(
		newGenerateCommand(app),
		newReviewCommand(app),
		newDocumentCommand(app),
		newResumeCommand(app),
		newStatusCommand(app),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	app := NewApp(cfg)
	root := NewRootCommand(app)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(app.Err, "Error:", rferrors.Friendly(err))
		return 1
	}
	return 0
}
