package intent

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/uniguide/internal/domain"
)

// MatchMode selects how a rule's keywords are tested against the input.
type MatchMode int

const (
	// MatchSubstring matches a keyword anywhere, so "assignments" also hits
	// "assignment" and "due" hits "overdue".
	MatchSubstring MatchMode = iota
	// MatchWord requires the keyword to stand alone. Short weekday aliases
	// such as "tu" and "th" would otherwise hit "study" and "the".
	MatchWord
)

// Rule maps a keyword set to an intent. Rules are evaluated in order and
// the first match wins.
type Rule struct {
	Intent   domain.Intent
	Keywords []string
	Mode     MatchMode
}

// DefaultRules is the built-in priority order.
var DefaultRules = []Rule{
	{
		Intent:   domain.IntentAssignment,
		Keywords: []string{"assignment", "hw", "homework", "project", "deadline", "due"},
	},
	{
		Intent:   domain.IntentExam,
		Keywords: []string{"exam", "midterm", "final", "test", "quiz"},
	},
	{
		Intent:   domain.IntentCourse,
		Keywords: []string{"course", "class", "lecture"},
	},
	{
		Intent:   domain.IntentEvent,
		Keywords: []string{"event", "happening", "meetup", "fair"},
	},
	{
		Intent:   domain.IntentAlert,
		Keywords: []string{"alert", "emergency", "police"},
	},
	{
		Intent:   domain.IntentWeather,
		Keywords: []string{"weather"},
	},
	{
		Intent: domain.IntentSchedule,
		Keywords: []string{
			"schedule", "timetable",
			"mon", "monday",
			"tue", "tues", "tuesday", "tu",
			"wed", "weds", "wednesday",
			"thu", "thur", "thurs", "thursday", "th",
			"fri", "friday",
			"sat", "saturday",
			"sun", "sunday",
		},
		Mode: MatchWord,
	},
}

// compiledRule is a Rule with its word-mode pattern prepared.
type compiledRule struct {
	Rule
	re *regexp.Regexp
}

func compileRules(rules []Rule) []compiledRule {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		cr := compiledRule{Rule: r}
		if r.Mode == MatchWord && len(r.Keywords) > 0 {
			cr.re = wordPattern(r.Keywords)
		}
		out = append(out, cr)
	}
	return out
}

func (r compiledRule) matches(lower string) bool {
	if r.Mode == MatchWord {
		return r.re != nil && r.re.MatchString(lower)
	}
	return containsAny(lower, r.Keywords)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// wordPattern builds a case-sensitive `\b(?:a|b|c)\b` matcher over
// lower-case input.
func wordPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
