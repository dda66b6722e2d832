package service

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/uniguide/internal/domain"
	"github.com/alexanderramin/uniguide/internal/intelligence"
	"github.com/alexanderramin/uniguide/internal/llm"
	"github.com/alexanderramin/uniguide/internal/testutil"
	"github.com/alexanderramin/uniguide/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, h *harness) {
	t.Helper()
	testutil.InsertCourse(t, h.db, testutil.NewTestCourse("CS101", "Intro to CS",
		testutil.WithDays("TuTh"), testutil.WithTime("10:00"),
		testutil.WithRoom("CAS", "B12"), testutil.WithInstructor("Dr. Lee")))
	testutil.InsertCourse(t, h.db, testutil.NewTestCourse("CS201", "Data Structures",
		testutil.WithDays("MoWe"), testutil.WithTime("14:00"),
		testutil.WithRoom("MCS", "148"), testutil.WithInstructor("Dr. Chen")))
	testutil.InsertCourse(t, h.db, testutil.NewTestCourse("MA123", "Calculus I",
		testutil.WithDays("Tue"), testutil.WithTime("09:00"),
		testutil.WithRoom("CAS", "211"), testutil.WithInstructor("Dr. Park")))
}

func TestProcessTurn_ScheduleScenario(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)

	res := h.turn(t, "What classes are on tuesday?")

	assert.Equal(t, domain.IntentSchedule, res.Intent)
	assert.Equal(t, domain.RouteDB, res.Route)
	assert.Equal(t, "synthesized answer", res.Reply)
	assert.NotEmpty(t, res.TurnID)

	synth := h.llm.calls(llm.TaskSynthesize)
	require.Len(t, synth, 1)
	want := "Classes on Tuesday:\n" +
		"- CS101: Intro to CS — TuTh at 10:00 in CAS B12 (Instructor: Dr. Lee)\n" +
		"- MA123: Calculus I — Tue at 09:00 in CAS 211 (Instructor: Dr. Park)"
	assert.Contains(t, synth[0].UserPrompt, "[DB_PREGEN]\n"+want)
	assert.NotContains(t, synth[0].UserPrompt, "CS201: Data Structures —")
}

func TestProcessTurn_ScheduleFallsBackToVerbatimWhenModelFails(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)
	h.llm.err = llm.ErrTimeout

	res := h.turn(t, "What classes are on tuesday?")
	assert.Equal(t, KindDeterministic, res.Kind)
	assert.True(t, strings.HasPrefix(res.Reply, "Classes on Tuesday:\n- CS101"))

	res = h.turn(t, "What classes are on sunday?")
	assert.Equal(t, "No classes on Sunday.", res.Reply)
}

func TestProcessTurn_ScheduleAlwaysDB(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)

	for _, text := range []string{
		"how can I improve my friday, any tips to help me prepare better?",
		"why is monday so hard",
		"show my timetable",
	} {
		res := h.turn(t, text)
		assert.Equal(t, domain.IntentSchedule, res.Intent, text)
		assert.Equal(t, domain.RouteDB, res.Route, text)
	}
}

func TestProcessTurn_ScheduleWithoutDayAsks(t *testing.T) {
	h := newHarness(t)

	res := h.turn(t, "show my timetable")
	assert.Equal(t, "Which day should I check? (e.g., Tuesday)", res.Reply)
	assert.Equal(t, KindClarification, res.Kind)
	assert.Equal(t, domain.RouteDB, res.Route)
	assert.Empty(t, h.llm.requests)
}

func TestProcessTurn_IntentContinuity(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)
	testutil.InsertExam(t, h.db, domain.Exam{CourseCode: "CS101", ExamType: "Midterm", ExamDatetime: "2025-10-20T14:00:00", Location: "CAS 211"})
	testutil.InsertExam(t, h.db, domain.Exam{CourseCode: "CS201", ExamType: "Final", ExamDatetime: "2025-12-15T09:00:00", Location: "GSU"})
	h.llm.err = llm.ErrTimeout

	res := h.turn(t, "exams for CS101")
	assert.Equal(t, domain.IntentExam, res.Intent)
	assert.Equal(t, "Exams for CS101:\n- Midterm for CS101 → Oct 20, 2025 02:00 PM at CAS 211", res.Reply)
	assert.Equal(t, "CS101", h.memory.ActiveCourse(testutil.TestSessionID))

	res = h.turn(t, "now CS201")
	assert.Equal(t, domain.IntentExam, res.Intent)
	assert.Equal(t, "Exams for CS201:\n- Final for CS201 → Dec 15, 2025 09:00 AM at GSU", res.Reply)
	assert.Equal(t, "CS201", h.memory.ActiveCourse(testutil.TestSessionID))
}

func TestProcessTurn_ContinuityUnknownCourseLeavesMemory(t *testing.T) {
	h := newHarness(t)
	testutil.InsertCourse(t, h.db, testutil.NewTestCourse("CS101", "Intro to CS"))

	h.turn(t, "exams for CS101")
	require.Equal(t, "CS101", h.memory.ActiveCourse(testutil.TestSessionID))
	synthCalls := len(h.llm.calls(llm.TaskSynthesize))

	res := h.turn(t, "now CS201")
	assert.Equal(t, "I couldn't find CS201 in your registered courses. Please check the course code or try another.", res.Reply)
	assert.Equal(t, KindNotFound, res.Kind)
	assert.Equal(t, "CS101", h.memory.ActiveCourse(testutil.TestSessionID))
	assert.Equal(t, domain.IntentExam, h.memory.LastIntent(testutil.TestSessionID))
	assert.Len(t, h.llm.calls(llm.TaskSynthesize), synthCalls, "no model call for unknown course")
}

func TestProcessTurn_ExplicitKeywordBeatsContinuity(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)
	h.llm.err = llm.ErrTimeout

	h.turn(t, "exams for CS101")
	res := h.turn(t, "assignments for CS201")
	assert.Equal(t, domain.IntentAssignment, res.Intent)
	assert.Equal(t, "No assignments on record.", res.Reply)
}

func TestProcessTurn_OutOfScope(t *testing.T) {
	h := newHarness(t)

	res := h.turn(t, "tell me a joke")
	assert.Equal(t, intelligence.OutOfScopeMessage, res.Reply)
	assert.Equal(t, KindOutOfScope, res.Kind)
	assert.Empty(t, h.llm.requests)
}

func TestProcessTurn_EmptyInput(t *testing.T) {
	h := newHarness(t)

	res := h.turn(t, "   ")
	assert.Equal(t, "", res.Reply)
	assert.Equal(t, KindEmpty, res.Kind)
}

func TestProcessTurn_QuickCommands(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)

	h.turn(t, "CS101 room")
	require.Equal(t, "CS101", h.memory.ActiveCourse(testutil.TestSessionID))

	res := h.turn(t, "Reset course")
	assert.Equal(t, "Course context cleared. Which course should I use next?", res.Reply)
	assert.Empty(t, h.memory.ActiveCourse(testutil.TestSessionID))

	res = h.turn(t, "Hello!")
	assert.Equal(t, "Is there anything else I can help you with today?", res.Reply)
	assert.Equal(t, KindCommand, res.Kind)
}

func TestProcessTurn_BareClearKeepsCourse(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)

	h.turn(t, "CS101 room")
	require.Equal(t, "CS101", h.memory.ActiveCourse(testutil.TestSessionID))

	for _, text := range []string{"clear", "reset"} {
		res := h.turn(t, text)
		assert.NotEqual(t, KindCommand, res.Kind, text)
		assert.Equal(t, "CS101", h.memory.ActiveCourse(testutil.TestSessionID), text)
	}
}

func TestProcessTurn_RAGContextScopedToCourse(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)
	testutil.InsertAssignment(t, h.db, domain.Assignment{CourseCode: "CS101", Title: "HW1", DueDate: "2025-09-10", Status: "open"})
	testutil.InsertAssignment(t, h.db, domain.Assignment{CourseCode: "CS201", Title: "Lab 9", DueDate: "2025-11-01", Status: "open"})
	testutil.InsertExam(t, h.db, domain.Exam{CourseCode: "CS201", ExamType: "Final", ExamDatetime: "2025-12-15T09:00:00", Location: "GSU"})

	res := h.turn(t, "how should I prepare for CS101?")
	require.Equal(t, domain.RouteRAG, res.Route)

	synth := h.llm.calls(llm.TaskSynthesize)
	require.Len(t, synth, 1)
	prompt := synth[0].UserPrompt
	assert.Contains(t, prompt, "[COURSE]")
	assert.Contains(t, prompt, "HW1")
	assert.NotContains(t, prompt, "Lab 9")
	assert.NotContains(t, prompt, "CS201")
	assert.NotContains(t, prompt, "[EXAMS]")
}

func TestProcessTurn_Clarifications(t *testing.T) {
	h := newHarness(t)

	res := h.turn(t, "tell me about my lecture")
	assert.Equal(t, "Sure — which course? (e.g., CS101)", res.Reply)
	assert.Equal(t, KindClarification, res.Kind)

	res = h.turn(t, "what homework do I have?")
	assert.Equal(t, "Which course should I check for assignments? (e.g., CS101)", res.Reply)

	res = h.turn(t, "when is the midterm?")
	assert.Equal(t, "Which course should I check for exams? (e.g., CS101)", res.Reply)
	assert.Empty(t, h.llm.requests)
}

func TestProcessTurn_AssignmentsScopedToActiveCourse(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)
	testutil.InsertAssignment(t, h.db, domain.Assignment{CourseCode: "CS101", Title: "HW1", DueDate: "2025-09-10", Status: "open"})
	testutil.InsertAssignment(t, h.db, domain.Assignment{CourseCode: "CS101", Title: "HW1", DueDate: "2025-09-10", Status: "open"})
	testutil.InsertAssignment(t, h.db, domain.Assignment{CourseCode: "CS201", Title: "Lab 1", DueDate: "2025-09-12", Status: "open"})
	h.llm.err = llm.ErrTimeout

	h.turn(t, "CS101 room")
	res := h.turn(t, "when is my homework due for this week?")

	assert.Equal(t, domain.IntentAssignment, res.Intent)
	assert.Equal(t, "Assignments for CS101:\n- CS101: HW1 (due 2025-09-10, status: open)", res.Reply)
}

func TestProcessTurn_AdvisoryRoutesRAGWithoutPreAnswer(t *testing.T) {
	h := newHarness(t)

	res := h.turn(t, "How can I improve my study habits?")
	assert.Equal(t, domain.RouteRAG, res.Route)
	assert.Equal(t, "synthesized answer", res.Reply)

	synth := h.llm.calls(llm.TaskSynthesize)
	require.Len(t, synth, 1)
	assert.NotContains(t, synth[0].UserPrompt, "[DB_PREGEN]")
	assert.Contains(t, synth[0].UserPrompt, "[WEATHER]")
}

func TestProcessTurn_WeatherFailureNeverEscapes(t *testing.T) {
	h := newHarness(t)
	h.weather.err = weather.ErrUnavailable

	res := h.turn(t, "what's the weather today?")
	assert.Equal(t, domain.IntentWeather, res.Intent)
	assert.Equal(t, "synthesized answer", res.Reply)
	assert.Empty(t, h.llm.calls(llm.TaskWeatherTip))

	synth := h.llm.calls(llm.TaskSynthesize)
	require.Len(t, synth, 1)
	assert.NotContains(t, synth[0].UserPrompt, "[WEATHER]")
}

type panickingResponder struct{}

func (panickingResponder) Answer(context.Context, string, domain.Intent, domain.Slots) (string, bool, error) {
	panic("responder exploded")
}

func TestProcessTurn_RecoversPanics(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)
	svc := h.build(panickingResponder{})

	res := svc.ProcessTurn(context.Background(), testutil.TestSessionID, "What classes are on tuesday?")
	assert.Equal(t, "Internal error: responder exploded", res.Reply)
	assert.Equal(t, KindInternalError, res.Kind)

	last := h.obs.events[len(h.obs.events)-1]
	assert.False(t, last.Success)
	assert.Equal(t, "process-turn", last.Name)
}

func TestProcessTurn_StoreFailureIsInternalError(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.db.Close())

	res := h.turn(t, "CS101 exam")
	assert.True(t, strings.HasPrefix(res.Reply, "Internal error: "), res.Reply)
	assert.Equal(t, KindInternalError, res.Kind)
}

func TestProcessTurn_ObserverFields(t *testing.T) {
	h := newHarness(t)
	seedCatalog(t, h)

	res := h.turn(t, "What classes are on tuesday?")

	require.Len(t, h.obs.events, 1)
	e := h.obs.events[0]
	assert.True(t, e.Success)
	assert.Equal(t, res.TurnID, e.Fields["turn_id"])
	assert.Equal(t, "schedule", e.Fields["intent"])
	assert.Equal(t, "DB", e.Fields["route"])
	assert.Equal(t, KindSynthesis, e.Fields["kind"])
}
