// Package session holds per-session conversational memory such as the
// active course and the previous turn's intent.
package session

import "sync"

// Store is a per-session key/value store. Values for a session are created
// lazily on first Set.
type Store interface {
	Get(sessionID, key string) (any, bool)
	Set(sessionID, key string, value any)
	Clear(sessionID, key string)
}

// MemoryStore is an in-process Store. It never evicts; a deployment uses a
// single long-lived session id.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]any
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]any)}
}

func (s *MemoryStore) Get(sessionID, key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sessions[sessionID][key]
	return v, ok
}

func (s *MemoryStore) Set(sessionID, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.sessions[sessionID]
	if !ok {
		m = make(map[string]any)
		s.sessions[sessionID] = m
	}
	m[key] = value
}

func (s *MemoryStore) Clear(sessionID, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions[sessionID], key)
}

// Len reports how many sessions have been written to.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
