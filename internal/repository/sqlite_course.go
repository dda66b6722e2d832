package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/uniguide/internal/db"
	"github.com/alexanderramin/uniguide/internal/domain"
)

const courseColumns = `code, COALESCE(title, '') AS title, COALESCE(building, '') AS building, COALESCE(room, '') AS room, COALESCE(days, '') AS days, COALESCE(time, '') AS time, COALESCE(instructor, '') AS instructor`

// SQLiteCourseRepo implements CourseRepo using a SQLite database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

// NewSQLiteCourseRepo creates a new SQLiteCourseRepo.
func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

func (r *SQLiteCourseRepo) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	var c domain.Course
	err := r.db.GetContext(ctx, &c, `SELECT `+courseColumns+` FROM courses WHERE code = ?`, code)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("course %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("getting course %s: %w", code, err)
	}
	return &c, nil
}

func (r *SQLiteCourseRepo) ListByDays(ctx context.Context, substrings []string) ([]domain.Course, error) {
	if len(substrings) == 0 {
		return nil, nil
	}
	where, args := likeAny("days", substrings)
	query := `SELECT ` + courseColumns + ` FROM courses WHERE ` + where + ` ORDER BY code`

	var courses []domain.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("listing courses by days: %w", err)
	}
	return courses, nil
}
