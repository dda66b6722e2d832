package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/uniguide/internal/db"
	"github.com/alexanderramin/uniguide/internal/domain"
)

// SQLiteEventRepo implements EventRepo using a SQLite database.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

// List returns the session's events ordered by start time. Rows whose
// start_datetime does not parse are dropped.
func (r *SQLiteEventRepo) List(ctx context.Context, sessionID string) ([]domain.Event, error) {
	var rows []domain.Event
	err := r.db.SelectContext(ctx, &rows,
		`SELECT session_id, COALESCE(title, '') AS title, COALESCE(start_datetime, '') AS start_datetime, COALESCE(location, '') AS location, COALESCE(url, '') AS url
		 FROM events WHERE session_id = ?`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	events := make([]domain.Event, 0, len(rows))
	for _, e := range rows {
		at, err := domain.ParseTimestamp(e.StartDatetime)
		if err != nil {
			continue
		}
		e.StartsAt = at
		events = append(events, e)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartsAt.Before(events[j].StartsAt)
	})
	return events, nil
}
