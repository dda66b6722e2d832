package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/uniguide/internal/db"
	"github.com/alexanderramin/uniguide/internal/domain"
)

// SQLiteAlertRepo implements AlertRepo using a SQLite database.
type SQLiteAlertRepo struct {
	db db.DBTX
}

// NewSQLiteAlertRepo creates a new SQLiteAlertRepo.
func NewSQLiteAlertRepo(conn db.DBTX) *SQLiteAlertRepo {
	return &SQLiteAlertRepo{db: conn}
}

func (r *SQLiteAlertRepo) List(ctx context.Context, sessionID string) ([]domain.PoliceAlert, error) {
	var out []domain.PoliceAlert
	err := r.db.SelectContext(ctx, &out,
		`SELECT session_id, COALESCE(title, '') AS title, COALESCE(url, '') AS url, COALESCE(alert_date, '') AS alert_date
		 FROM police_alerts WHERE session_id = ? ORDER BY id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing police alerts: %w", err)
	}
	return out, nil
}
