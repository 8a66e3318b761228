package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/reviewflow"
	"github.com/randalmurphal/reviewflow/flow"
)

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show environment status and recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sb strings.Builder

			sb.WriteString(titleStyle.Render("Environment") + "\n")
			if app.Config.APIKey != "" {
				fmt.Fprintf(&sb, "  API key:     set\n")
			} else {
				fmt.Fprintf(&sb, "  API key:     missing (set OPENAI_API_KEY)\n")
			}
			fmt.Fprintf(&sb, "  Model:       %s\n", app.Config.Model)
			fmt.Fprintf(&sb, "  Checkpoints: %s\n", app.Config.CheckpointPath)
			if app.Config.WebhookURL != "" {
				fmt.Fprintf(&sb, "  Webhook:     %s\n", app.Config.WebhookURL)
			}

			sb.WriteString("\n" + titleStyle.Render("Recent Runs") + "\n")
			saver, err := flow.NewSQLiteSaver[reviewflow.State](app.Config.CheckpointPath)
			if err != nil {
				return err
			}
			defer saver.Close()

			checkpoints, err := saver.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(checkpoints) == 0 {
				sb.WriteString("  none\n")
			}
			for _, cp := range checkpoints {
				phase := "in progress at " + cp.Next
				if cp.Next == flow.End {
					phase = "completed"
				}
				fmt.Fprintf(&sb, "  %-16s %-28s retries %d  %s\n",
					cp.RunID, phase, cp.Retries,
					cp.UpdatedAt.Local().Format(time.DateTime))
			}

			fmt.Fprint(app.Out, sb.String())
			return nil
		},
	}
}
