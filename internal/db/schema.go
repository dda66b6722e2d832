package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the tables the router reads from when they are
// missing. The seeding step and the scrapers own the data; this never
// alters existing tables and never inserts an identity record.
func EnsureSchema(db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS session_info (
		session_uuid TEXT PRIMARY KEY,
		created_at   TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE TABLE IF NOT EXISTS courses (
		code       TEXT PRIMARY KEY,
		title      TEXT NOT NULL DEFAULT '',
		building   TEXT NOT NULL DEFAULT '',
		room       TEXT NOT NULL DEFAULT '',
		days       TEXT NOT NULL DEFAULT '',
		time       TEXT NOT NULL DEFAULT '',
		instructor TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS user_assignments (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id  TEXT NOT NULL,
		course_code TEXT NOT NULL,
		title       TEXT NOT NULL,
		due_date    TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_assignments_session ON user_assignments(session_id, course_code)`,

	`CREATE TABLE IF NOT EXISTS exams (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id    TEXT NOT NULL,
		course_code   TEXT NOT NULL,
		exam_type     TEXT NOT NULL DEFAULT '',
		exam_datetime TEXT NOT NULL DEFAULT '',
		location      TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_exams_session ON exams(session_id, course_code)`,

	`CREATE TABLE IF NOT EXISTS events (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id     TEXT NOT NULL,
		title          TEXT NOT NULL,
		start_datetime TEXT NOT NULL DEFAULT '',
		location       TEXT NOT NULL DEFAULT '',
		url            TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS police_alerts (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		title      TEXT NOT NULL,
		url        TEXT NOT NULL DEFAULT '',
		alert_date TEXT NOT NULL DEFAULT ''
	)`,
}
