package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/uniguide/internal/db"
	"github.com/alexanderramin/uniguide/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

func (r *SQLiteAssignmentRepo) List(ctx context.Context, sessionID, courseCode string) ([]domain.Assignment, error) {
	query := `SELECT session_id, course_code, COALESCE(title, '') AS title, COALESCE(due_date, '') AS due_date, COALESCE(status, '') AS status
		FROM user_assignments WHERE session_id = ?`
	args := []any{sessionID}
	if courseCode != "" {
		query += ` AND course_code = ?`
		args = append(args, courseCode)
	}
	query += ` ORDER BY due_date ASC`

	var out []domain.Assignment
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	return out, nil
}

func (r *SQLiteAssignmentRepo) ListCourseCodes(ctx context.Context, sessionID string) ([]string, error) {
	var codes []string
	err := r.db.SelectContext(ctx, &codes,
		`SELECT DISTINCT course_code FROM user_assignments WHERE session_id = ? ORDER BY course_code`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing user course codes: %w", err)
	}
	return codes, nil
}
