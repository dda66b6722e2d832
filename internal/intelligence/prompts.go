package intelligence

import (
	"fmt"

	"github.com/alexanderramin/uniguide/internal/weather"
)

const synthesisSystemPrompt = "Be concise, warm, and specific to the context."

func buildSynthesisPrompt(campusName, bundle, userInput string) string {
	return fmt.Sprintf(`You are a friendly %s assistant. Answer ONLY about campus/academics/study help.
Use the CONTEXT to ground facts. If the CONTEXT does not cover the question, give general study or campus guidance without inventing specific dates, rooms or grades.
Reply in a natural 2–4 sentence answer.

CONTEXT:
%s

USER INPUT:
%s

FINAL ANSWER:`, campusName, bundle, userInput)
}

const weatherTipSystemPrompt = "You are a witty, succinct campus assistant."

func buildWeatherTipPrompt(r weather.Report) string {
	return fmt.Sprintf(`The weather in %s is '%s' and %.1f°C.
Write ONE short, quirky, friendly suggestion based on that weather.
If cold: suggest warm layers. If raining: umbrella warning. If sunny: cheerful vibe.
Keep it under 15 words. No quotation marks.`, r.City, r.Description, r.TempC)
}
