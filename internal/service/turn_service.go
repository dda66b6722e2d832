package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/uniguide/internal/domain"
	"github.com/alexanderramin/uniguide/internal/intelligence"
	"github.com/alexanderramin/uniguide/internal/intent"
	"github.com/alexanderramin/uniguide/internal/repository"
	"github.com/alexanderramin/uniguide/internal/router"
	"github.com/alexanderramin/uniguide/internal/session"
	"github.com/google/uuid"
)

// Fixed turn-level replies.
const (
	courseNotRegistered = "I couldn't find %s in your registered courses. Please check the course code or try another."
	courseCleared       = "Course context cleared. Which course should I use next?"
	greetingReply       = "Is there anything else I can help you with today?"
	askCourse           = "Sure — which course? (e.g., CS101)"
	askCourseFor        = "Which course should I check for %ss? (e.g., CS101)"
	emptyOutput         = "I couldn't generate a response this time."
	internalError       = "Internal error: %v"
)

// Reply kinds reported in TurnResult.Kind.
const (
	KindSynthesis     = "synthesis"
	KindClarification = "clarification"
	KindNotFound      = "not_found"
	KindCommand       = "command"
	KindOutOfScope    = "out_of_scope"
	KindFallback      = "fallback"
	KindDeterministic = "deterministic"
	KindInternalError = "internal_error"
	KindEmpty         = "empty"
)

var (
	resetCommands = map[string]bool{"reset course": true, "clear course": true, "change course": true}
	greetings     = map[string]bool{"hi": true, "hello": true, "hey": true}

	// continuityIntents may carry over to a turn that only names a course.
	continuityIntents = map[domain.Intent]bool{
		domain.IntentExam:       true,
		domain.IntentAssignment: true,
		domain.IntentCourse:     true,
		domain.IntentEvent:      true,
	}
	// explicitIntents suppress continuity when their keywords appear.
	explicitIntents = []domain.Intent{
		domain.IntentExam, domain.IntentAssignment, domain.IntentEvent, domain.IntentAlert, domain.IntentCourse,
	}
)

type turnService struct {
	parser    *intent.Parser
	memory    *session.Memory
	router    *router.Router
	courses   repository.CourseRepo
	responder Responder
	synth     intelligence.SynthesisService
	observer  UseCaseObserver
	logger    *slog.Logger
}

// TurnDeps are the collaborators of the turn service.
type TurnDeps struct {
	Parser    *intent.Parser
	Memory    *session.Memory
	Router    *router.Router
	Courses   repository.CourseRepo
	Responder Responder
	Synth     intelligence.SynthesisService
	Logger    *slog.Logger
}

// NewTurnService wires the router pipeline.
func NewTurnService(deps TurnDeps, observers ...UseCaseObserver) TurnService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	parser := deps.Parser
	if parser == nil {
		parser = intent.NewParser()
	}
	rt := deps.Router
	if rt == nil {
		rt = router.New(router.WithLogger(logger))
	}
	return &turnService{
		parser:    parser,
		memory:    deps.Memory,
		router:    rt,
		courses:   deps.Courses,
		responder: deps.Responder,
		synth:     deps.Synth,
		observer:  useCaseObserverOrNoop(observers),
		logger:    logger,
	}
}

func (s *turnService) ProcessTurn(ctx context.Context, sessionID, text string) (res TurnResult) {
	startedAt := time.Now().UTC()
	res.TurnID = uuid.NewString()
	logger := s.logger.With("turn_id", res.TurnID, "session_id", sessionID)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "turn panicked", "panic", r)
			res.Reply = fmt.Sprintf(internalError, r)
			res.Kind = KindInternalError
		}
		var err error
		if res.Kind == KindInternalError {
			err = errors.New(res.Reply)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "process-turn",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"turn_id": res.TurnID,
				"intent":  res.Intent.String(),
				"route":   string(res.Route),
				"score":   res.Score,
				"kind":    res.Kind,
			},
		})
	}()

	if err := s.run(ctx, logger, sessionID, text, &res); err != nil {
		logger.ErrorContext(ctx, "turn failed", "error", err)
		res.Reply = fmt.Sprintf(internalError, err)
		res.Kind = KindInternalError
	}
	return res
}

func (s *turnService) run(ctx context.Context, logger *slog.Logger, sessionID, raw string, res *TurnResult) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		res.Kind = KindEmpty
		return nil
	}
	low := strings.ToLower(text)
	logger.DebugContext(ctx, "turn input", "text", text)

	in, complexity := s.parser.Parse(text)
	slots := s.parser.ExtractSlots(text)
	if slots.Weekday != "" {
		in = domain.IntentSchedule
	}
	logger.DebugContext(ctx, "parsed",
		"intent", in.String(),
		"complexity", string(complexity),
		"course_code", slots.CourseCode,
		"weekday", string(slots.Weekday),
		"window", windowLabel(slots.Window),
	)

	active := s.memory.ActiveCourse(sessionID)
	if slots.CourseCode != "" {
		_, err := s.courses.GetByCode(ctx, slots.CourseCode)
		if errors.Is(err, repository.ErrNotFound) {
			logger.DebugContext(ctx, "course not in store, memory unchanged", "course_code", slots.CourseCode)
			res.Intent = in
			res.Reply = fmt.Sprintf(courseNotRegistered, slots.CourseCode)
			res.Kind = KindNotFound
			return nil
		}
		if err != nil {
			return fmt.Errorf("validating course %s: %w", slots.CourseCode, err)
		}
		s.memory.SetActiveCourse(sessionID, slots.CourseCode)
		active = slots.CourseCode
	}

	prev := s.memory.LastIntent(sessionID)
	if slots.CourseCode != "" && continuityIntents[prev] && !s.parser.MentionsAny(text, explicitIntents...) {
		logger.DebugContext(ctx, "intent carried over", "from", in.String(), "to", prev.String())
		in = prev
	}
	if in != domain.IntentNone {
		s.memory.SetLastIntent(sessionID, in)
	}
	res.Intent = in

	if resetCommands[low] {
		s.memory.ClearActiveCourse(sessionID)
		res.Reply = courseCleared
		res.Kind = KindCommand
		return nil
	}
	if greetings[strings.Trim(low, "!.? ")] {
		res.Reply = greetingReply
		res.Kind = KindCommand
		return nil
	}

	switch {
	case in == domain.IntentCourse && slots.CourseCode == "" && active == "":
		res.Reply = askCourse
		res.Kind = KindClarification
		return nil
	case in == domain.IntentCourse, in == domain.IntentAssignment, in == domain.IntentExam:
		if slots.CourseCode == "" && active != "" {
			slots.CourseCode = active
			logger.DebugContext(ctx, "scoped to active course", "course_code", active)
		}
		if slots.CourseCode == "" {
			res.Reply = fmt.Sprintf(askCourseFor, in)
			res.Kind = KindClarification
			return nil
		}
	}

	decision := s.router.Score(ctx, router.ScoringInput{
		Text:         text,
		Intent:       in,
		Slots:        slots,
		ActiveCourse: active,
	})
	res.Route = decision.Route
	res.Score = decision.Score
	if in == domain.IntentSchedule && slots.Weekday == "" {
		res.Reply = askWeekday
		res.Kind = KindClarification
		return nil
	}

	var pre string
	if decision.Route == domain.RouteDB {
		dbIntent := in
		if dbIntent == domain.IntentNone {
			dbIntent = domain.IntentCourse
		}
		answer, ok, err := s.responder.Answer(ctx, sessionID, dbIntent, slots)
		if err != nil {
			return fmt.Errorf("deterministic %s answer: %w", dbIntent, err)
		}
		if ok {
			pre = answer
			logger.DebugContext(ctx, "db pre-answer prepared", "pre_answer", pre)
		} else {
			logger.DebugContext(ctx, "db route had no structured answer")
		}
	}

	out := s.synth.Synthesize(ctx, intelligence.SynthesisRequest{
		SessionID:    sessionID,
		Text:         text,
		Intent:       in,
		Slots:        slots,
		ActiveCourse: active,
		PreAnswer:    pre,
	})
	res.Reply = strings.TrimSpace(out.Text)
	res.Kind = synthesisKind(out.Source)
	if res.Kind == KindFallback && pre != "" {
		// Verbatim store data beats an apology.
		res.Reply = pre
		res.Kind = KindDeterministic
	}
	if res.Reply == "" {
		res.Reply = emptyOutput
		res.Kind = KindFallback
	}
	return nil
}

func synthesisKind(source string) string {
	switch source {
	case intelligence.SourceOutOfScope:
		return KindOutOfScope
	case intelligence.SourceFallback:
		return KindFallback
	}
	return KindSynthesis
}

func windowLabel(w *domain.TimeWindow) string {
	if w == nil {
		return ""
	}
	return w.Label
}
