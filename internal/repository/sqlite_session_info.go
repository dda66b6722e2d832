package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/uniguide/internal/db"
	"github.com/alexanderramin/uniguide/internal/domain"
)

// SQLiteSessionInfoRepo implements SessionInfoRepo using a SQLite database.
type SQLiteSessionInfoRepo struct {
	db db.DBTX
}

// NewSQLiteSessionInfoRepo creates a new SQLiteSessionInfoRepo.
func NewSQLiteSessionInfoRepo(conn db.DBTX) *SQLiteSessionInfoRepo {
	return &SQLiteSessionInfoRepo{db: conn}
}

func (r *SQLiteSessionInfoRepo) Get(ctx context.Context) (*domain.SessionInfo, error) {
	var s domain.SessionInfo
	err := r.db.GetContext(ctx, &s, `SELECT session_uuid FROM session_info LIMIT 1`)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("session identity: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("reading session identity: %w", err)
	}
	return &s, nil
}
