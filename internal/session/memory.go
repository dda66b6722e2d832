package session

import (
	"log/slog"

	"github.com/alexanderramin/uniguide/internal/domain"
)

const (
	keyActiveCourse = "active_course"
	keyLastIntent   = "last_intent"
)

// Memory is the typed view of a Store that the router works with.
type Memory struct {
	store  Store
	logger *slog.Logger
}

// NewMemory wraps store. A nil logger discards output.
func NewMemory(store Store, logger *slog.Logger) *Memory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Memory{store: store, logger: logger}
}

// Remember stores every key/value pair for the session.
func (m *Memory) Remember(sessionID string, kv map[string]any) {
	for k, v := range kv {
		m.store.Set(sessionID, k, v)
	}
}

// Recall returns the stored value for key, or def when absent.
func (m *Memory) Recall(sessionID, key string, def any) any {
	if v, ok := m.store.Get(sessionID, key); ok {
		return v
	}
	return def
}

// ActiveCourse returns the course code the session is focused on, or "".
func (m *Memory) ActiveCourse(sessionID string) string {
	code, _ := m.Recall(sessionID, keyActiveCourse, "").(string)
	return code
}

// SetActiveCourse focuses the session on code. Setting the current course
// again only logs.
func (m *Memory) SetActiveCourse(sessionID, code string) {
	if prev := m.ActiveCourse(sessionID); prev == code {
		m.logger.Debug("active course unchanged", "session_id", sessionID, "course", code)
		return
	}
	m.store.Set(sessionID, keyActiveCourse, code)
	m.logger.Info("active course set", "session_id", sessionID, "course", code)
}

// ClearActiveCourse drops the session's course focus.
func (m *Memory) ClearActiveCourse(sessionID string) {
	m.store.Clear(sessionID, keyActiveCourse)
	m.logger.Info("active course cleared", "session_id", sessionID)
}

// LastIntent returns the intent recorded by the previous turn.
func (m *Memory) LastIntent(sessionID string) domain.Intent {
	in, _ := m.Recall(sessionID, keyLastIntent, domain.IntentNone).(domain.Intent)
	return in
}

// SetLastIntent records the current turn's intent for continuity.
func (m *Memory) SetLastIntent(sessionID string, in domain.Intent) {
	m.store.Set(sessionID, keyLastIntent, in)
}
