package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alexanderramin/uniguide/internal/domain"
	"github.com/alexanderramin/uniguide/internal/intelligence"
	"github.com/alexanderramin/uniguide/internal/repository"
	"github.com/alexanderramin/uniguide/internal/weather"
)

// repoContextSource gathers the synthesis grounding bundle from the store
// and the weather provider.
type repoContextSource struct {
	repos   Repos
	weather weather.Provider
	city    string
	logger  *slog.Logger
}

// NewContextSource creates an intelligence.ContextSource over the store.
func NewContextSource(repos Repos, wp weather.Provider, city string, logger *slog.Logger) intelligence.ContextSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &repoContextSource{repos: repos, weather: wp, city: city, logger: logger}
}

// Gather loads every section it can. Assignments and exams are limited to
// the slot or active course when one is known. Failures are joined and returned
// alongside the partial bundle; weather failures are only logged.
func (s *repoContextSource) Gather(ctx context.Context, req intelligence.SynthesisRequest) (intelligence.ContextBundle, error) {
	var b intelligence.ContextBundle
	var errs []error

	code := req.Slots.CourseCode
	if code == "" {
		code = req.ActiveCourse
	}
	if code != "" {
		c, err := s.repos.Courses.GetByCode(ctx, code)
		switch {
		case err == nil:
			b.Course = c
		case !errors.Is(err, repository.ErrNotFound):
			errs = append(errs, err)
		}
	}

	assignments, err := s.repos.Assignments.List(ctx, req.SessionID, code)
	if err != nil {
		errs = append(errs, err)
	}
	b.Assignments = domain.DedupAssignments(assignments)

	exams, err := s.repos.Exams.List(ctx, req.SessionID, code)
	if err != nil {
		errs = append(errs, err)
	}
	b.Exams = domain.DedupExams(exams)
	domain.SortExams(b.Exams)

	if b.Events, err = s.repos.Events.List(ctx, req.SessionID); err != nil {
		errs = append(errs, err)
	}
	if b.Alerts, err = s.repos.Alerts.List(ctx, req.SessionID); err != nil {
		errs = append(errs, err)
	}

	if s.weather != nil {
		if report, err := s.weather.Current(ctx, s.city); err == nil {
			b.Weather = report
		} else {
			s.logger.DebugContext(ctx, "weather omitted from context", "error", err)
		}
	}

	return b, errors.Join(errs...)
}
