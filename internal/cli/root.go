package cli

import (
	"context"
	"io"
	"os"

	"github.com/alexanderramin/uniguide/internal/service"
	"github.com/spf13/cobra"
)

// Runner is a long-running component such as the HTTP server.
type Runner interface {
	Run(ctx context.Context) error
}

// App holds the services and I/O used by CLI commands.
type App struct {
	Turns     service.TurnService
	SessionID string
	Server    Runner

	// IsInteractive reports whether stdin is a terminal. Nil means line mode.
	IsInteractive func() bool
	// OnFullScreen runs before the chat view takes over the terminal.
	OnFullScreen func()

	In  io.Reader
	Out io.Writer
}

func (a *App) in() io.Reader {
	if a.In == nil {
		return os.Stdin
	}
	return a.In
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "uniguide" command and registers all
// subcommands against the provided App. With no subcommand it starts a chat.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "uniguide",
		Short:         "Campus assistant for courses, deadlines, events, and alerts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), app)
		},
	}
	// Parsed early by main; declared here so cobra accepts it.
	root.PersistentFlags().String("config", "", "path to uniguide.yaml")

	root.AddCommand(
		newChatCmd(app),
		newAskCmd(app),
		newServeCmd(app),
		newWhoAmICmd(app),
	)
	root.SetIn(app.in())
	root.SetOut(app.out())
	return root
}
