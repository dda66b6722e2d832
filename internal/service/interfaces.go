package service

import (
	"context"

	"github.com/alexanderramin/uniguide/internal/domain"
)

// Responder answers structured intents straight from the store.
type Responder interface {
	// Answer returns ok=false when it has no structured answer for the
	// intent. err is reserved for store failures.
	Answer(ctx context.Context, sessionID string, in domain.Intent, slots domain.Slots) (text string, ok bool, err error)
}

// TurnService processes one conversational turn. It always returns a reply.
type TurnService interface {
	ProcessTurn(ctx context.Context, sessionID, text string) TurnResult
}

// TurnResult is the reply for one turn plus the routing facts behind it.
type TurnResult struct {
	TurnID string
	Reply  string
	Intent domain.Intent
	Route  domain.Route
	Score  float64
	// Kind says how the reply was produced, one of the Kind* constants.
	Kind string
}
