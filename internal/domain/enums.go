package domain

// Intent is the coarse category of a user request.
type Intent string

const (
	IntentNone       Intent = ""
	IntentAssignment Intent = "assignment"
	IntentExam       Intent = "exam"
	IntentCourse     Intent = "course"
	IntentEvent      Intent = "event"
	IntentAlert      Intent = "alert"
	IntentWeather    Intent = "weather"
	IntentSchedule   Intent = "schedule"
)

// String renders IntentNone as "none" for logs and metric labels.
func (i Intent) String() string {
	if i == IntentNone {
		return "none"
	}
	return string(i)
}

// Route selects how a turn is answered.
type Route string

const (
	RouteDB  Route = "DB"
	RouteRAG Route = "RAG"
)

// Complexity is a coarse hint kept for logs only.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityComplex Complexity = "complex"
)

// Weekday is a canonical lower-case weekday name, e.g. "tuesday".
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Title returns the capitalized weekday, e.g. "Tuesday".
func (w Weekday) Title() string {
	if w == "" {
		return ""
	}
	return string(w[0]-'a'+'A') + string(w[1:])
}

// TimeWindow is a coarse relative window such as "tomorrow" (1 day).
type TimeWindow struct {
	Label string
	Days  int
}

// Slots are the structured values extracted from one input.
type Slots struct {
	CourseCode string
	Weekday    Weekday
	Window     *TimeWindow
}

// dayAbbreviations are the substrings searched for in a course's stored
// days string. Compact forms such as "TuTh" need the two-letter entries.
var dayAbbreviations = map[Weekday][]string{
	Monday:    {"mon"},
	Tuesday:   {"tue", "tu"},
	Wednesday: {"wed"},
	Thursday:  {"thu", "th"},
	Friday:    {"fri"},
	Saturday:  {"sat"},
	Sunday:    {"sun"},
}

// DayAbbreviations returns the lower-case substrings that identify w in a
// course days string.
func DayAbbreviations(w Weekday) []string {
	return dayAbbreviations[w]
}
