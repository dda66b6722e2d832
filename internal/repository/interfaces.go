package repository

import (
	"context"

	"github.com/alexanderramin/uniguide/internal/domain"
)

// CourseRepo reads the course catalog. Courses are shared across sessions.
type CourseRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Course, error)
	// ListByDays returns courses whose days string contains any of the
	// given lower-case substrings.
	ListByDays(ctx context.Context, substrings []string) ([]domain.Course, error)
}

type AssignmentRepo interface {
	// List returns all assignments for the session, past and future, ordered
	// by due date. An empty courseCode means every course.
	List(ctx context.Context, sessionID, courseCode string) ([]domain.Assignment, error)
	// ListCourseCodes returns the distinct course codes the session has
	// assignments for.
	ListCourseCodes(ctx context.Context, sessionID string) ([]string, error)
}

type ExamRepo interface {
	List(ctx context.Context, sessionID, courseCode string) ([]domain.Exam, error)
}

type EventRepo interface {
	List(ctx context.Context, sessionID string) ([]domain.Event, error)
}

type AlertRepo interface {
	List(ctx context.Context, sessionID string) ([]domain.PoliceAlert, error)
}

type SessionInfoRepo interface {
	// Get returns the persistent identity record, or ErrNotFound.
	Get(ctx context.Context) (*domain.SessionInfo, error)
}
