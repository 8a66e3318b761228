package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// runFlags are shared by the workflow-running commands.
type runFlags struct {
	model       string
	output      string
	format      string
	interactive bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Override the default model")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Save output to file")
	cmd.Flags().StringVar(&f.format, "format", formatPretty, "Output format (json|text|pretty)")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "Enable the human approval gate")
}

func newGenerateCommand(app *App) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "generate <task>",
		Short: "Generate code for a task",
		Long:  "Run the full workflow for a task: classify, generate, review (with bounded retries), document, and approve.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, app, flags, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

// runWorkflow builds a runner with the command's flag overrides applied,
// executes the task, and renders the result.
func runWorkflow(cmd *cobra.Command, app *App, flags *runFlags, task string) error {
	if err := validFormat(flags.format); err != nil {
		return err
	}

	cfg := app.Config
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.interactive {
		cfg.Interactive = true
	}

	runner, err := app.NewRunner(cfg)
	if err != nil {
		return err
	}

	result, err := runner.Run(cmd.Context(), task)
	if err != nil {
		return err
	}

	rendered, err := renderResult(result, flags.format)
	if err != nil {
		return err
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(app.Out, "Output saved to %s\n", flags.output)
		return nil
	}

	fmt.Fprintln(app.Out, rendered)
	return nil
}
