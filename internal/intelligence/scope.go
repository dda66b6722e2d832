package intelligence

import (
	"strings"

	"github.com/alexanderramin/uniguide/internal/intent"
)

// OutOfScopeMessage is returned without calling the model when the input has
// nothing to do with campus life or coursework.
const OutOfScopeMessage = "I'm your campus buddy, not a crystal ball 😊. I can help with BU courses, assignments, exams, events, alerts, or study tips."

// scopeWords is the allow-list of campus and academic themes.
var scopeWords = []string{
	"course", "class", "lecture", "assignment", "homework", "project",
	"exam", "midterm", "final", "test", "quiz", "deadline", "due",
	"syllabus", "office hours", "professor", "instructor",
	"room", "building", "location", "schedule", "time", "where", "when",
	"event", "happening", "police", "alert", "weather", "campus", "library",
	"help", "improve", "study", "notes", "slides", "resources", "material",
	"tips", "prepare", "practice",
}

// InScope reports whether text mentions an allow-listed theme or a course code.
func InScope(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range scopeWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return intent.HasCourseCode(lower)
}
