package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// lineQuitWords end a piped session.
var lineQuitWords = map[string]bool{"quit": true, "exit": true, "bye": true}

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), app)
		},
	}
}

// runChat starts the TUI on a terminal and the line loop otherwise.
func runChat(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !app.interactive() {
		return runLineChat(ctx, app)
	}
	if app.OnFullScreen != nil {
		app.OnFullScreen()
	}
	p := tea.NewProgram(newChatModel(ctx, app),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(app.in()),
		tea.WithOutput(app.out()),
	)
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// runLineChat reads one turn per line and prints "Bot: <reply>".
func runLineChat(ctx context.Context, app *App) error {
	out := app.out()
	scanner := bufio.NewScanner(app.in())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Fprintf(out, "Session ID: %s\n", app.SessionID)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		msg := scanner.Text()
		if lineQuitWords[strings.ToLower(strings.TrimSpace(msg))] {
			return nil
		}
		res := app.Turns.ProcessTurn(ctx, app.SessionID, msg)
		fmt.Fprintf(out, "Bot: %s\n", res.Reply)
		if ctx.Err() != nil {
			return nil
		}
	}
}
