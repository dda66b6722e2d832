package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/uniguide/internal/domain"
	"github.com/alexanderramin/uniguide/internal/intelligence"
	"github.com/alexanderramin/uniguide/internal/repository"
	"github.com/alexanderramin/uniguide/internal/weather"
)

// Fixed responder texts.
const (
	askWeekday           = "Which day should I check? (e.g., Tuesday)"
	noAssignments        = "No assignments on record."
	noExams              = "No exams on record."
	noEvents             = "No events on record."
	noAlerts             = "No police alerts on record."
	weatherUnavailable   = "Weather info unavailable."
	noProfileCourses     = "No courses found in your profile."
	noCourseDetails      = "No detailed course info available."
	courseDetailNotFound = "I couldn't find details for %s."
)

// Repos groups the read repositories the router depends on.
type Repos struct {
	Courses     repository.CourseRepo
	Assignments repository.AssignmentRepo
	Exams       repository.ExamRepo
	Events      repository.EventRepo
	Alerts      repository.AlertRepo
}

type responder struct {
	repos   Repos
	weather weather.Provider
	tips    intelligence.TipService
	city    string
	logger  *slog.Logger
}

// NewResponder creates the deterministic responder. tips may be nil, in
// which case weather answers carry no suggestion.
func NewResponder(repos Repos, wp weather.Provider, tips intelligence.TipService, city string, logger *slog.Logger) Responder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &responder{repos: repos, weather: wp, tips: tips, city: city, logger: logger}
}

func (r *responder) Answer(ctx context.Context, sessionID string, in domain.Intent, slots domain.Slots) (string, bool, error) {
	switch in {
	case domain.IntentSchedule:
		return r.schedule(ctx, slots.Weekday)
	case domain.IntentAssignment:
		return r.assignments(ctx, sessionID, slots.CourseCode)
	case domain.IntentExam:
		return r.exams(ctx, sessionID, slots.CourseCode)
	case domain.IntentEvent:
		return r.events(ctx, sessionID)
	case domain.IntentAlert:
		return r.alerts(ctx, sessionID)
	case domain.IntentWeather:
		return r.currentWeather(ctx), true, nil
	case domain.IntentCourse:
		return r.course(ctx, sessionID, slots.CourseCode)
	}
	return "", false, nil
}

func (r *responder) schedule(ctx context.Context, day domain.Weekday) (string, bool, error) {
	if day == "" {
		return askWeekday, true, nil
	}
	courses, err := r.repos.Courses.ListByDays(ctx, domain.DayAbbreviations(day))
	if err != nil {
		return "", false, err
	}
	if len(courses) == 0 {
		return fmt.Sprintf("No classes on %s.", day.Title()), true, nil
	}
	lines := make([]string, 0, len(courses)+1)
	lines = append(lines, fmt.Sprintf("Classes on %s:", day.Title()))
	for _, c := range courses {
		lines = append(lines, fmt.Sprintf("- %s: %s — %s at %s in %s (Instructor: %s)",
			c.Code, c.Title, c.Days, c.Time, c.Location(), c.Instructor))
	}
	return strings.Join(lines, "\n"), true, nil
}

// assignments lists past and future records; any time window is ignored.
func (r *responder) assignments(ctx context.Context, sessionID, code string) (string, bool, error) {
	rows, err := r.repos.Assignments.List(ctx, sessionID, code)
	if err != nil {
		return "", false, err
	}
	rows = domain.DedupAssignments(rows)
	if len(rows) == 0 {
		return noAssignments, true, nil
	}
	lines := []string{header("assignments", code)}
	for _, a := range rows {
		lines = append(lines, fmt.Sprintf("- %s: %s (due %s, status: %s)", a.CourseCode, a.Title, a.DueDate, a.Status))
	}
	return strings.Join(lines, "\n"), true, nil
}

func (r *responder) exams(ctx context.Context, sessionID, code string) (string, bool, error) {
	rows, err := r.repos.Exams.List(ctx, sessionID, code)
	if err != nil {
		return "", false, err
	}
	rows = domain.DedupExams(rows)
	domain.SortExams(rows)
	if len(rows) == 0 {
		return noExams, true, nil
	}
	lines := []string{header("exams", code)}
	for _, e := range rows {
		lines = append(lines, fmt.Sprintf("- %s for %s → %s at %s",
			e.ExamType, e.CourseCode, domain.HumanDateTime(e.ExamDatetime), e.Location))
	}
	return strings.Join(lines, "\n"), true, nil
}

func header(kind, code string) string {
	if code == "" {
		return "All " + kind + ":"
	}
	return fmt.Sprintf("%s for %s:", strings.ToUpper(kind[:1])+kind[1:], code)
}

func (r *responder) events(ctx context.Context, sessionID string) (string, bool, error) {
	rows, err := r.repos.Events.List(ctx, sessionID)
	if err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return noEvents, true, nil
	}
	lines := []string{"Campus events:"}
	for _, e := range rows {
		lines = append(lines, fmt.Sprintf("- %s (%s at %s)", e.Title, domain.HumanDateTime(e.StartDatetime), e.Location))
	}
	return strings.Join(lines, "\n"), true, nil
}

func (r *responder) alerts(ctx context.Context, sessionID string) (string, bool, error) {
	rows, err := r.repos.Alerts.List(ctx, sessionID)
	if err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return noAlerts, true, nil
	}
	lines := []string{"Police alerts:"}
	for _, a := range rows {
		lines = append(lines, fmt.Sprintf("- %s (%s) → %s", a.Title, a.AlertDate, a.URL))
	}
	return strings.Join(lines, "\n"), true, nil
}

func (r *responder) currentWeather(ctx context.Context) string {
	if r.weather == nil {
		return weatherUnavailable
	}
	report, err := r.weather.Current(ctx, r.city)
	if err != nil {
		r.logger.WarnContext(ctx, "weather lookup failed", "city", r.city, "error", err)
		return weatherUnavailable
	}
	text := fmt.Sprintf("Weather in %s: %s, %.1f°C.", r.city, report.Description, report.TempC)
	if r.tips != nil {
		if tip, ok := r.tips.Tip(ctx, *report); ok {
			text += " " + tip
		}
	}
	return text
}

func (r *responder) course(ctx context.Context, sessionID, code string) (string, bool, error) {
	if code != "" {
		c, err := r.repos.Courses.GetByCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Sprintf(courseDetailNotFound, code), true, nil
		}
		if err != nil {
			return "", false, err
		}
		return courseSummary(c), true, nil
	}

	codes, err := r.repos.Assignments.ListCourseCodes(ctx, sessionID)
	if err != nil {
		return "", false, err
	}
	if len(codes) == 0 {
		return noProfileCourses, true, nil
	}
	var lines []string
	for _, code := range codes {
		c, err := r.repos.Courses.GetByCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", false, err
		}
		lines = append(lines, fmt.Sprintf("%s: %s — %s at %s in %s (Instructor: %s)",
			c.Code, c.Title, c.Days, c.Time, c.Location(), c.Instructor))
	}
	if len(lines) == 0 {
		return noCourseDetails, true, nil
	}
	return strings.Join(lines, "\n"), true, nil
}

func courseSummary(c *domain.Course) string {
	return fmt.Sprintf("%s: %s — %s at %s in %s room %s (Instructor: %s).",
		c.Code, c.Title, c.Days, c.Time, c.Building, c.Room, c.Instructor)
}
