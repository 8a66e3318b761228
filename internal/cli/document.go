package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDocumentCommand(app *App) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "document <file>",
		Short: "Add documentation to code from a file",
		Long:  "Read a source file and run the workflow with a documentation task built from its contents.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			task := fmt.Sprintf("Add comprehensive documentation to this code:\n\n```\n%s\n```", code)
			return runWorkflow(cmd, app, flags, task)
		},
	}
	flags.register(cmd)
	return cmd
}
