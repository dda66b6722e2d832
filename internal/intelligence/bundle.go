package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/uniguide/internal/domain"
	"github.com/alexanderramin/uniguide/internal/weather"
)

// noContext stands in for an empty bundle so the prompt shape stays fixed.
const noContext = "NO_CONTEXT"

// ContextBundle is the grounding material handed to the model. Empty
// sections are omitted from the rendered prompt.
type ContextBundle struct {
	PreAnswer   string
	Course      *domain.Course
	Assignments []domain.Assignment
	Exams       []domain.Exam
	Events      []domain.Event
	Alerts      []domain.PoliceAlert
	Weather     *weather.Report
}

// Render formats the bundle as labeled sections.
func (b ContextBundle) Render() string {
	var sections []string
	add := func(label string, lines []string) {
		if len(lines) == 0 {
			return
		}
		sections = append(sections, "["+label+"]\n"+strings.Join(lines, "\n"))
	}

	if pre := strings.TrimSpace(b.PreAnswer); pre != "" {
		add("DB_PREGEN", []string{pre})
	}
	if c := b.Course; c != nil {
		add("COURSE", []string{fmt.Sprintf("%s: %s | %s %s | %s | Instructor: %s",
			c.Code, c.Title, c.Days, c.Time, c.Location(), c.Instructor)})
	}

	lines := make([]string, 0, len(b.Assignments))
	for _, a := range b.Assignments {
		lines = append(lines, fmt.Sprintf("- %s: %s (due %s, status: %s)", a.CourseCode, a.Title, a.DueDate, a.Status))
	}
	add("ASSIGNMENTS", lines)

	lines = make([]string, 0, len(b.Exams))
	for _, e := range b.Exams {
		lines = append(lines, fmt.Sprintf("- %s %s on %s at %s", e.CourseCode, e.ExamType, domain.HumanDateTime(e.ExamDatetime), e.Location))
	}
	add("EXAMS", lines)

	lines = make([]string, 0, len(b.Events))
	for _, e := range b.Events {
		lines = append(lines, fmt.Sprintf("- %s (%s at %s)", e.Title, e.StartDatetime, e.Location))
	}
	add("EVENTS", lines)

	lines = make([]string, 0, len(b.Alerts))
	for _, a := range b.Alerts {
		lines = append(lines, fmt.Sprintf("- %s (%s)", a.Title, a.AlertDate))
	}
	add("ALERTS", lines)

	if w := b.Weather; w != nil {
		add("WEATHER", []string{fmt.Sprintf("%s: %s, %.0f°C", w.City, w.Description, w.TempC)})
	}

	if len(sections) == 0 {
		return noContext
	}
	return strings.Join(sections, "\n\n")
}
