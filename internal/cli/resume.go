package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newResumeCommand(app *App) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "resume <run-id>",
		Short: "Resume an interrupted run",
		Long:  "Continue a run from its last checkpoint. Run IDs are listed by `reviewflow status`.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			result, err := runner.Resume(cmd.Context(), args[0])
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
		},
	}
	flags.register(cmd)
	return cmd
}
