package db

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, EnsureSchema(db))
	require.NoError(t, EnsureSchema(db))
}

func TestEnsureSchema_CreatesReadTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"session_info", "courses", "user_assignments", "exams", "events", "police_alerts"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestEnsureSchema_DoesNotSeedIdentity(t *testing.T) {
	db := openTestDB(t)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM session_info`))
	assert.Zero(t, n)
}

func TestOpenDB_FileBackedKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chatalogue.sqlite")

	first, err := OpenDB(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO session_info (session_uuid) VALUES ('abc')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenDB(path)
	require.NoError(t, err)
	defer second.Close()

	var id string
	require.NoError(t, second.Get(&id, `SELECT session_uuid FROM session_info LIMIT 1`))
	assert.Equal(t, "abc", id)
}
