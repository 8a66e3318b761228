package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReviewCommand(app *App) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "review <file>",
		Short: "Review code from a file",
		Long:  "Read a source file and run the workflow with a review task built from its contents.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			task := fmt.Sprintf("Please review this code for improvements:\n\n```\n%s\n```", code)
			return runWorkflow(cmd, app, flags, task)
		},
	}
	flags.register(cmd)
	return cmd
}
