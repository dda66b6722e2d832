package cli

import (
	"fmt"

	"github.com/alexanderramin/uniguide/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the session identity used for all lookups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("session", app.SessionID))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.SessionID)
			return nil
		},
	}
}
