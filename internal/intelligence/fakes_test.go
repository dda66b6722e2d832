package intelligence

import (
	"context"
	"sync"

	"github.com/alexanderramin/uniguide/internal/llm"
)

// countingLLM records every request and replies with a fixed text or error.
type countingLLM struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.GenerateRequest
}

func (c *countingLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	return &llm.GenerateResponse{Text: c.response, Model: "fake"}, nil
}

func (c *countingLLM) Available(context.Context) bool { return c.err == nil }

func (c *countingLLM) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

type staticSource struct {
	bundle ContextBundle
	err    error
	calls  int
}

func (s *staticSource) Gather(context.Context, SynthesisRequest) (ContextBundle, error) {
	s.calls++
	return s.bundle, s.err
}
