package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "  Bring an umbrella.  ", "Bring an umbrella."},
		{"echoed label", "FINAL ANSWER: Your exam is Monday.", "Your exam is Monday."},
		{"quoted", `"Grab a coffee."`, "Grab a coffee."},
		{"fenced", "```\nStudy in Mugar.\n```", "Study in Mugar."},
		{"blank", "\n  \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanAnswer(tt.raw))
		})
	}
}
