package intelligence

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alexanderramin/uniguide/internal/llm"
	"github.com/alexanderramin/uniguide/internal/weather"
)

// TipService writes a one-line suggestion for the current weather.
type TipService interface {
	// Tip returns ok=false when no suggestion could be produced.
	Tip(ctx context.Context, report weather.Report) (string, bool)
}

type tipService struct {
	client llm.LLMClient
	logger *slog.Logger
}

// NewTipService creates a TipService backed by an LLM client.
func NewTipService(client llm.LLMClient, logger *slog.Logger) TipService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &tipService{client: client, logger: logger}
}

func (s *tipService) Tip(ctx context.Context, report weather.Report) (string, bool) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskWeatherTip,
		SystemPrompt: weatherTipSystemPrompt,
		UserPrompt:   buildWeatherTipPrompt(report),
	})
	if err != nil {
		s.logger.DebugContext(ctx, "weather tip omitted", "error", err)
		return "", false
	}
	tip := strings.TrimSpace(resp.Text)
	// Keep the reply to one line.
	if i := strings.IndexByte(tip, '\n'); i >= 0 {
		tip = strings.TrimSpace(tip[:i])
	}
	return tip, tip != ""
}
