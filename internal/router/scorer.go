// Package router scores how well a turn can be answered from structured
// data and picks the DB or RAG route.
package router

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alexanderramin/uniguide/internal/domain"
	"github.com/alexanderramin/uniguide/internal/intent"
)

// DefaultThreshold is the score a turn must exceed to take the DB route.
const DefaultThreshold = 0.40

// ScoringWeights holds the additive weight of each signal.
type ScoringWeights struct {
	DepartmentCode float64
	TemporalWords  float64
	WeekdaySlot    float64
	CourseSlot     float64
	ActiveCourse   float64
	Advisory       float64
	OpenQuestion   float64
	LongInput      float64
}

// DefaultWeights returns the production weights.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		DepartmentCode: 0.5,
		TemporalWords:  0.3,
		WeekdaySlot:    0.25,
		CourseSlot:     0.2,
		ActiveCourse:   0.1,
		Advisory:       -0.5,
		OpenQuestion:   -0.3,
		LongInput:      -0.1,
	}
}

// ScoringInput is everything a signal may look at.
type ScoringInput struct {
	Text         string
	Intent       domain.Intent
	Slots        domain.Slots
	ActiveCourse string
	Weights      ScoringWeights

	lower string
	words []string
}

// Signal records one factor's contribution.
type Signal struct {
	Name  string
	Delta float64
}

// Decision is the scored route for one turn.
type Decision struct {
	Score   float64
	Route   domain.Route
	Forced  bool
	Signals []Signal
}

// Router scores turns.
type Router struct {
	weights   ScoringWeights
	threshold float64
	logger    *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

func WithWeights(w ScoringWeights) Option {
	return func(r *Router) { r.weights = w }
}

func WithThreshold(t float64) Option {
	return func(r *Router) { r.threshold = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a Router with default weights and threshold.
func New(opts ...Option) *Router {
	r := &Router{
		weights:   DefaultWeights(),
		threshold: DefaultThreshold,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type factor func(ScoringInput) (float64, *Signal)

var factors = []factor{
	scoreDepartmentCode,
	scoreTemporalWords,
	scoreWeekdaySlot,
	scoreCourseSlot,
	scoreActiveCourse,
	scoreAdvisory,
	scoreOpenQuestion,
	scoreLongInput,
}

// Score computes the clamped confidence and route. Schedule turns are
// forced to DB after scoring so the score is still logged.
func (r *Router) Score(ctx context.Context, in ScoringInput) Decision {
	in.Weights = r.weights
	in.lower = strings.ToLower(in.Text)
	in.words = strings.Fields(in.lower)

	var d Decision
	var score float64
	for _, f := range factors {
		delta, sig := f(in)
		score += delta
		if sig != nil {
			d.Signals = append(d.Signals, *sig)
		}
	}
	d.Score = clamp(score, -1, 1)

	d.Route = domain.RouteRAG
	if d.Score > r.threshold {
		d.Route = domain.RouteDB
	}
	if in.Intent == domain.IntentSchedule && d.Route != domain.RouteDB {
		d.Route = domain.RouteDB
		d.Forced = true
	}

	r.logger.DebugContext(ctx, "route scored",
		"score", d.Score,
		"route", string(d.Route),
		"forced", d.Forced,
		"intent", in.Intent.String(),
		"signals", signalNames(d.Signals),
	)
	return d
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func signalNames(sigs []Signal) []string {
	names := make([]string, len(sigs))
	for i, s := range sigs {
		names[i] = s.Name
	}
	return names
}

func scoreDepartmentCode(in ScoringInput) (float64, *Signal) {
	if !intent.HasDepartmentCode(in.lower) {
		return 0, nil
	}
	return signal("department_code", in.Weights.DepartmentCode)
}

var temporalWords = []string{
	"when", "due", "date", "time", "deadline", "tomorrow", "week", "next", "today",
	"where", "room", "building", "location",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func scoreTemporalWords(in ScoringInput) (float64, *Signal) {
	for _, w := range temporalWords {
		if strings.Contains(in.lower, w) {
			return signal("temporal_words", in.Weights.TemporalWords)
		}
	}
	return 0, nil
}

func scoreWeekdaySlot(in ScoringInput) (float64, *Signal) {
	if in.Slots.Weekday == "" {
		return 0, nil
	}
	return signal("weekday_slot", in.Weights.WeekdaySlot)
}

func scoreCourseSlot(in ScoringInput) (float64, *Signal) {
	if in.Slots.CourseCode == "" {
		return 0, nil
	}
	return signal("course_slot", in.Weights.CourseSlot)
}

func scoreActiveCourse(in ScoringInput) (float64, *Signal) {
	if in.ActiveCourse == "" {
		return 0, nil
	}
	return signal("active_course", in.Weights.ActiveCourse)
}

var advisoryWords = []string{
	"help", "improve", "struggling", "guide", "prepare", "tips", "advice", "better", "optimize", "explain",
}

func scoreAdvisory(in ScoringInput) (float64, *Signal) {
	for _, w := range advisoryWords {
		if strings.Contains(in.lower, w) {
			return signal("advisory", in.Weights.Advisory)
		}
	}
	return 0, nil
}

var openInterrogatives = map[string]bool{
	"how": true, "why": true, "should": true, "can": true, "could": true,
}

func scoreOpenQuestion(in ScoringInput) (float64, *Signal) {
	for i, w := range in.words {
		if i >= 3 {
			break
		}
		if openInterrogatives[strings.Trim(w, ".,?!;:'\"")] {
			return signal("open_question", in.Weights.OpenQuestion)
		}
	}
	return 0, nil
}

func scoreLongInput(in ScoringInput) (float64, *Signal) {
	if len(in.words) <= 18 {
		return 0, nil
	}
	return signal("long_input", in.Weights.LongInput)
}

func signal(name string, delta float64) (float64, *Signal) {
	return delta, &Signal{Name: name, Delta: delta}
}
