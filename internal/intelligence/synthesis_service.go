package intelligence

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alexanderramin/uniguide/internal/domain"
	"github.com/alexanderramin/uniguide/internal/llm"
)

// SynthesisFallback is returned when the model call fails.
const SynthesisFallback = "I couldn't generate a response just now."

// Answer sources.
const (
	SourceLLM        = "llm"
	SourceOutOfScope = "out_of_scope"
	SourceFallback   = "fallback"
)

// SynthesisRequest carries one turn into the synthesis responder.
type SynthesisRequest struct {
	SessionID    string
	Text         string
	Intent       domain.Intent
	Slots        domain.Slots
	ActiveCourse string
	// PreAnswer is the deterministic responder's text, used as grounding.
	PreAnswer string
}

// SynthesisResult is the final text for a turn and where it came from.
type SynthesisResult struct {
	Text   string
	Source string
}

// ContextSource gathers grounding data for a request. Errors are logged and
// the partial bundle is still used.
type ContextSource interface {
	Gather(ctx context.Context, req SynthesisRequest) (ContextBundle, error)
}

// SynthesisService writes the conversational answer for a turn.
type SynthesisService interface {
	Synthesize(ctx context.Context, req SynthesisRequest) SynthesisResult
}

type synthesisService struct {
	client     llm.LLMClient
	source     ContextSource
	campusName string
	logger     *slog.Logger
}

// NewSynthesisService creates a SynthesisService. source may be nil, in
// which case only the pre-answer grounds the prompt.
func NewSynthesisService(client llm.LLMClient, source ContextSource, campusName string, logger *slog.Logger) SynthesisService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &synthesisService{client: client, source: source, campusName: campusName, logger: logger}
}

func (s *synthesisService) Synthesize(ctx context.Context, req SynthesisRequest) SynthesisResult {
	if !InScope(req.Text) {
		s.logger.DebugContext(ctx, "synthesis skipped: out of scope")
		return SynthesisResult{Text: OutOfScopeMessage, Source: SourceOutOfScope}
	}

	bundle := ContextBundle{PreAnswer: req.PreAnswer}
	if s.source != nil {
		gathered, err := s.source.Gather(ctx, req)
		if err != nil {
			s.logger.WarnContext(ctx, "context gathering incomplete", "error", err)
		}
		gathered.PreAnswer = req.PreAnswer
		bundle = gathered
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSynthesize,
		SystemPrompt: synthesisSystemPrompt,
		UserPrompt:   buildSynthesisPrompt(s.campusName, bundle.Render(), req.Text),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "synthesis failed", "error", err)
		return SynthesisResult{Text: SynthesisFallback, Source: SourceFallback}
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return SynthesisResult{Text: SynthesisFallback, Source: SourceFallback}
	}
	return SynthesisResult{Text: text, Source: SourceLLM}
}
