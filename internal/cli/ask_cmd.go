package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/uniguide/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   `ask "<question>"`,
		Short: "Answer a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(os.Stderr, "Thinking...")
			}
			res := app.Turns.ProcessTurn(cmd.Context(), app.SessionID, text)
			stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Reply)
			if verbose {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("turn=%s intent=%s route=%s score=%.2f kind=%s",
					res.TurnID, res.Intent, res.Route, res.Score, res.Kind)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print routing details")
	return cmd
}
