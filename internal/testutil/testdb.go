package testutil

import (
	"testing"

	"github.com/alexanderramin/uniguide/internal/db"
	"github.com/jmoiron/sqlx"
)

// TestSessionID is the identity seeded by NewTestDB.
const TestSessionID = "test-session"

// NewTestDB creates an in-memory SQLite database with the schema applied and
// one identity row for TestSessionID. The database is closed when the test
// completes.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database := NewEmptyTestDB(t)
	database.MustExec(`INSERT INTO session_info (session_uuid) VALUES (?)`, TestSessionID)
	return database
}

// NewEmptyTestDB is NewTestDB without the identity row.
func NewEmptyTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}
