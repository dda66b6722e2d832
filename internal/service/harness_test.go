package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/uniguide/internal/intelligence"
	"github.com/alexanderramin/uniguide/internal/llm"
	"github.com/alexanderramin/uniguide/internal/repository"
	"github.com/alexanderramin/uniguide/internal/session"
	"github.com/alexanderramin/uniguide/internal/testutil"
	"github.com/alexanderramin/uniguide/internal/weather"
	"github.com/jmoiron/sqlx"
)

type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.GenerateRequest
}

func (f *fakeLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.response, Model: "fake"}, nil
}

func (f *fakeLLM) Available(context.Context) bool { return f.err == nil }

func (f *fakeLLM) calls(task llm.TaskType) []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []llm.GenerateRequest
	for _, r := range f.requests {
		if r.Task == task {
			out = append(out, r)
		}
	}
	return out
}

type fakeWeather struct {
	report *weather.Report
	err    error
	calls  int
}

func (f *fakeWeather) Current(_ context.Context, city string) (*weather.Report, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	r := *f.report
	r.City = city
	return &r, nil
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

type harness struct {
	db      *sqlx.DB
	llm     *fakeLLM
	weather *fakeWeather
	memory  *session.Memory
	repos   Repos
	obs     *recordingObserver
	svc     TurnService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewTestDB(t)
	h := &harness{
		db:      db,
		llm:     &fakeLLM{response: "synthesized answer"},
		weather: &fakeWeather{report: &weather.Report{Description: "clear sky", TempC: 18}},
		memory:  session.NewMemory(session.NewMemoryStore(), nil),
		obs:     &recordingObserver{},
		repos: Repos{
			Courses:     repository.NewSQLiteCourseRepo(db),
			Assignments: repository.NewSQLiteAssignmentRepo(db),
			Exams:       repository.NewSQLiteExamRepo(db),
			Events:      repository.NewSQLiteEventRepo(db),
			Alerts:      repository.NewSQLiteAlertRepo(db),
		},
	}
	h.svc = h.build(nil)
	return h
}

func (h *harness) build(responder Responder) TurnService {
	if responder == nil {
		responder = NewResponder(h.repos, h.weather, intelligence.NewTipService(h.llm, nil), "Boston", nil)
	}
	source := NewContextSource(h.repos, h.weather, "Boston", nil)
	return NewTurnService(TurnDeps{
		Memory:    h.memory,
		Courses:   h.repos.Courses,
		Responder: responder,
		Synth:     intelligence.NewSynthesisService(h.llm, source, "Boston University", nil),
	}, h.obs)
}

func (h *harness) turn(t *testing.T, text string) TurnResult {
	t.Helper()
	return h.svc.ProcessTurn(context.Background(), testutil.TestSessionID, text)
}
