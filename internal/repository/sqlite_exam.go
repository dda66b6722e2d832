package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/uniguide/internal/db"
	"github.com/alexanderramin/uniguide/internal/domain"
)

// SQLiteExamRepo implements ExamRepo using a SQLite database.
type SQLiteExamRepo struct {
	db db.DBTX
}

// NewSQLiteExamRepo creates a new SQLiteExamRepo.
func NewSQLiteExamRepo(conn db.DBTX) *SQLiteExamRepo {
	return &SQLiteExamRepo{db: conn}
}

// List returns past and future exams ordered by exam_datetime. Stored
// values are ISO-8601, so lexical order is chronological.
func (r *SQLiteExamRepo) List(ctx context.Context, sessionID, courseCode string) ([]domain.Exam, error) {
	query := `SELECT session_id, course_code, COALESCE(exam_type, '') AS exam_type, COALESCE(exam_datetime, '') AS exam_datetime, COALESCE(location, '') AS location
		FROM exams WHERE session_id = ?`
	args := []any{sessionID}
	if courseCode != "" {
		query += ` AND course_code = ?`
		args = append(args, courseCode)
	}
	query += ` ORDER BY exam_datetime ASC`

	var out []domain.Exam
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("listing exams: %w", err)
	}
	return out, nil
}
