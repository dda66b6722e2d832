package intent

import (
	"regexp"
	"strings"
)

// courseCodePattern is 2-3 letters, an optional space or dash, then a
// three-digit number: "cs101", "CS 101", "cs-101".
var courseCodePattern = regexp.MustCompile(`\b([a-z]{2,3})\s*-?\s*(\d{3})\b`)

// departmentCodePattern is the narrower department list that counts as a
// strong structured signal when scoring.
var departmentCodePattern = regexp.MustCompile(`\b(?:cs|ma|ec|en|bu|phy|bio)\s*-?\s*\d{3}\b`)

// notDepartments are short words that precede numbers in ordinary speech
// ("in 101", "at 200") and are never treated as course prefixes.
var notDepartments = map[string]bool{
	"in": true, "on": true, "at": true, "to": true, "by": true, "of": true,
	"is": true, "me": true, "my": true, "the": true, "and": true, "for": true,
	"are": true, "due": true, "was": true, "rm": true, "room": true,
}

// FindCourseCode returns the first course code in text, normalized to
// upper case with spaces and dashes removed, or "" when there is none.
func FindCourseCode(text string) string {
	lower := strings.ToLower(text)
	for _, m := range courseCodePattern.FindAllStringSubmatch(lower, -1) {
		if notDepartments[m[1]] {
			continue
		}
		return NormalizeCourseCode(m[1] + m[2])
	}
	return ""
}

// HasCourseCode reports whether text contains a course code.
func HasCourseCode(text string) bool {
	return FindCourseCode(text) != ""
}

// HasDepartmentCode reports whether text names a course from a known
// department, e.g. "CS 101" or "bio-210".
func HasDepartmentCode(text string) bool {
	return departmentCodePattern.MatchString(strings.ToLower(text))
}

// NormalizeCourseCode upper-cases code and strips whitespace and dashes.
func NormalizeCourseCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r == ' ' || r == '-' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
