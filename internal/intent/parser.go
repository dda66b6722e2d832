// Package intent classifies free-text campus questions into an intent and
// extracts the structured slots the router acts on. Everything here is a
// pure function of the input string.
package intent

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/uniguide/internal/domain"
)

// Parser classifies input against an ordered rule list.
type Parser struct {
	rules []compiledRule
}

// NewParser returns a Parser over rules. With no rules it uses DefaultRules.
func NewParser(rules ...Rule) *Parser {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Parser{rules: compileRules(rules)}
}

// Parse returns the first matching rule's intent and a complexity hint.
// Input with no keyword but a course code defaults to IntentCourse.
func (p *Parser) Parse(text string) (domain.Intent, domain.Complexity) {
	lower := strings.ToLower(text)
	complexity := classifyComplexity(lower)

	for _, r := range p.rules {
		if r.matches(lower) {
			return r.Intent, complexity
		}
	}
	if HasCourseCode(lower) {
		return domain.IntentCourse, complexity
	}
	return domain.IntentNone, complexity
}

// ExtractSlots pulls the course code, weekday and time window from text.
func (p *Parser) ExtractSlots(text string) domain.Slots {
	lower := strings.ToLower(text)
	return domain.Slots{
		CourseCode: FindCourseCode(lower),
		Weekday:    FindWeekday(lower),
		Window:     findTimeWindow(lower),
	}
}

// MentionsAny reports whether any rule for one of the given intents
// matches text. Used by the continuity rule to detect explicit intent
// keywords.
func (p *Parser) MentionsAny(text string, intents ...domain.Intent) bool {
	lower := strings.ToLower(text)
	for _, r := range p.rules {
		for _, in := range intents {
			if r.Intent == in && r.matches(lower) {
				return true
			}
		}
	}
	return false
}

type weekdayAlias struct {
	day domain.Weekday
	re  *regexp.Regexp
}

// weekdayAliases is scanned in calendar order; the first hit wins.
var weekdayAliases = []weekdayAlias{
	{domain.Monday, wordPattern([]string{"mon", "monday"})},
	{domain.Tuesday, wordPattern([]string{"tue", "tues", "tuesday", "tu"})},
	{domain.Wednesday, wordPattern([]string{"wed", "weds", "wednesday"})},
	{domain.Thursday, wordPattern([]string{"thu", "thur", "thurs", "thursday", "th"})},
	{domain.Friday, wordPattern([]string{"fri", "friday"})},
	{domain.Saturday, wordPattern([]string{"sat", "saturday"})},
	{domain.Sunday, wordPattern([]string{"sun", "sunday"})},
}

// FindWeekday returns the canonical weekday named in text, or "".
func FindWeekday(text string) domain.Weekday {
	lower := strings.ToLower(text)
	for _, a := range weekdayAliases {
		if a.re.MatchString(lower) {
			return a.day
		}
	}
	return ""
}

func findTimeWindow(lower string) *domain.TimeWindow {
	switch {
	case strings.Contains(lower, "tomorrow"):
		return &domain.TimeWindow{Label: "tomorrow", Days: 1}
	case strings.Contains(lower, "this week"), strings.Contains(lower, "week"):
		return &domain.TimeWindow{Label: "this week", Days: 7}
	case strings.Contains(lower, "today"):
		return &domain.TimeWindow{Label: "today", Days: 1}
	}
	return nil
}

var (
	simpleWords  = wordPattern([]string{"what", "which", "where", "when", "can", "will"})
	complexWords = wordPattern([]string{"how", "why", "explain", "help", "plan", "summarize", "find", "show", "list"})
)

// classifyComplexity is a log-only hint. Simple cue words take precedence.
func classifyComplexity(lower string) domain.Complexity {
	switch {
	case simpleWords.MatchString(lower):
		return domain.ComplexitySimple
	case complexWords.MatchString(lower):
		return domain.ComplexityComplex
	}
	return domain.ComplexitySimple
}
