package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/uniguide/internal/cli/formatter"
	"github.com/alexanderramin/uniguide/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// turnDoneMsg carries a finished turn back to the UI goroutine.
type turnDoneMsg struct {
	result service.TurnResult
}

// savedMsg reports the outcome of /save.
type savedMsg struct {
	path string
	err  error
}

// transcriptEntry is one line of plain-text history, kept for /save.
type transcriptEntry struct {
	speaker string
	text    string
}

// chatModel is the interactive chat view. Turns run in tea.Cmds so the
// spinner keeps animating while the model waits on the store or the LLM.
type chatModel struct {
	ctx   context.Context
	app   *App
	now   func() time.Time
	saveF func(path string, data []byte) error

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	rendered   []string
	transcript []transcriptEntry
	pending    bool
	quitting   bool
}

func newChatModel(ctx context.Context, app *App) *chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about classes, deadlines, exams, events..."
	ti.Prompt = ""
	ti.CharLimit = 1000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: formatter.SpinnerFrames, FPS: 80 * time.Millisecond}
	sp.Style = formatter.StylePurple

	m := &chatModel{
		ctx:      ctx,
		app:      app,
		now:      time.Now,
		saveF:    func(path string, data []byte) error { return os.WriteFile(path, data, 0o644) },
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
	m.reset()
	return m
}

func (m *chatModel) reset() {
	m.rendered = nil
	m.transcript = nil
	m.addBot(formatter.WelcomeText, service.KindCommand)
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case turnDoneMsg:
		m.pending = false
		m.addBot(msg.result.Reply, msg.result.Kind)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.addNotice(formatter.StyleRed.Render("Save failed: " + msg.err.Error()))
		} else {
			m.addNotice(formatter.Dim("Conversation saved to " + msg.path))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if text == "" || m.pending {
		return m, nil
	}

	fields := strings.Fields(text)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit":
		m.quitting = true
		return m, tea.Quit
	case "/clear":
		m.reset()
		return m, nil
	case "/save":
		path := fmt.Sprintf("chat_%s.txt", m.now().Format("2006-01-02_15-04-05"))
		if len(fields) > 1 {
			path = fields[1]
		}
		return m, m.save(path)
	}

	m.addUser(text)
	m.pending = true
	return m, tea.Batch(m.spinner.Tick, m.runTurn(text))
}

func (m *chatModel) runTurn(text string) tea.Cmd {
	ctx, turns, sessionID := m.ctx, m.app.Turns, m.app.SessionID
	return func() tea.Msg {
		return turnDoneMsg{result: turns.ProcessTurn(ctx, sessionID, text)}
	}
}

func (m *chatModel) save(path string) tea.Cmd {
	var b strings.Builder
	for _, e := range m.transcript {
		fmt.Fprintf(&b, "%s: %s\n", e.speaker, e.text)
	}
	data := []byte(b.String())
	write := m.saveF
	return func() tea.Msg {
		return savedMsg{path: path, err: write(path, data)}
	}
}

func (m *chatModel) addUser(text string) {
	m.transcript = append(m.transcript, transcriptEntry{speaker: "You", text: text})
	m.appendRendered(formatter.FormatUser(text, m.now()))
}

func (m *chatModel) addBot(text, kind string) {
	m.transcript = append(m.transcript, transcriptEntry{speaker: "Bot", text: text})
	m.appendRendered(formatter.FormatBot(text, kind, m.now()))
}

func (m *chatModel) addNotice(text string) {
	m.appendRendered(text)
}

func (m *chatModel) appendRendered(line string) {
	m.rendered = append(m.rendered, line)
	m.refresh()
}

func (m *chatModel) refresh() {
	content := strings.Join(m.rendered, "\n")
	if m.viewport.Width > 0 {
		content = lipgloss.NewStyle().Width(m.viewport.Width).Render(content)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m *chatModel) resize(width, height int) {
	// Header, divider, status and input lines.
	const chrome = 4
	m.viewport.Width = width
	m.viewport.Height = max(height-chrome, 3)
	m.input.Width = max(width-4, 10)
	m.refresh()
}

func (m *chatModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("Chatalogue"))
	b.WriteString(formatter.Dim("  /save  /clear  /quit"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.pending {
		b.WriteString(formatter.FormatThinking(m.spinner.View()))
	}
	b.WriteString("\n")
	b.WriteString(formatter.StylePurple.Render("> "))
	b.WriteString(m.input.View())
	return b.String()
}
