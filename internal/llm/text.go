package llm

import "strings"

// answerLabels are echoed prompt markers some models repeat before the answer.
var answerLabels = []string{"FINAL ANSWER:", "Final answer:", "Answer:"}

// CleanAnswer trims model output down to the answer text: code fences,
// an echoed answer label and wrapping quotes are removed.
func CleanAnswer(raw string) string {
	s := strings.TrimSpace(stripCodeFences(raw))
	for _, label := range answerLabels {
		if strings.HasPrefix(s, label) {
			s = strings.TrimSpace(strings.TrimPrefix(s, label))
			break
		}
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// stripCodeFences removes markdown fence lines (``` or ```text) and keeps
// their content.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
