package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// WelcomeText opens every chat session.
const WelcomeText = "Welcome to Chatalogue, your campus companion! Ask me about courses, campus life, or support."

// FormatUser renders the user's line of the transcript.
func FormatUser(text string, at time.Time) string {
	return stamp(at) + StylePurple.Render("You: ") + text
}

// FormatBot renders a reply, colored by its kind. Multi-line replies keep
// their continuation lines aligned under the first.
func FormatBot(text, kind string, at time.Time) string {
	prefix := stamp(at) + StyleGreen.Render("Bot: ")
	indent := strings.Repeat(" ", lipgloss.Width(prefix))
	lines := strings.Split(text, "\n")
	style := KindStyle(kind)
	for i, l := range lines {
		lines[i] = style.Render(l)
		if i > 0 {
			lines[i] = indent + lines[i]
		}
	}
	return prefix + strings.Join(lines, "\n")
}

// FormatThinking is shown next to the spinner while a turn is running.
func FormatThinking(frame string) string {
	return "  " + frame + " " + Dim("Thinking...")
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

func stamp(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	return Dim(at.Format("15:04") + " ")
}
