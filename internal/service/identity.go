package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/uniguide/internal/repository"
)

// ErrNoIdentity means the store has no session identity record. The seeding
// step must run before the router can start.
var ErrNoIdentity = errors.New("no session identity in store")

// ResolveSessionID reads the persistent session id that scopes all queries.
func ResolveSessionID(ctx context.Context, repo repository.SessionInfoRepo) (string, error) {
	info, err := repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNoIdentity
	}
	if err != nil {
		return "", fmt.Errorf("resolving session identity: %w", err)
	}
	id := strings.TrimSpace(info.SessionUUID)
	if id == "" {
		return "", ErrNoIdentity
	}
	return id, nil
}
