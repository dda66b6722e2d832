package testutil

import (
	"testing"

	"github.com/alexanderramin/uniguide/internal/domain"
	"github.com/jmoiron/sqlx"
)

// Course options
type CourseOption func(*domain.Course)

func WithDays(days string) CourseOption {
	return func(c *domain.Course) {
		c.Days = days
	}
}

func WithRoom(building, room string) CourseOption {
	return func(c *domain.Course) {
		c.Building = building
		c.Room = room
	}
}

func WithInstructor(name string) CourseOption {
	return func(c *domain.Course) {
		c.Instructor = name
	}
}

func WithTime(t string) CourseOption {
	return func(c *domain.Course) {
		c.Time = t
	}
}

func NewTestCourse(code, title string, opts ...CourseOption) domain.Course {
	c := domain.Course{
		Code:       code,
		Title:      title,
		Building:   "CAS",
		Room:       "101",
		Days:       "MoWe",
		Time:       "10:10",
		Instructor: "Staff",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func InsertCourse(t *testing.T, db *sqlx.DB, c domain.Course) {
	t.Helper()
	db.MustExec(`INSERT INTO courses (code, title, building, room, days, time, instructor)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Code, c.Title, c.Building, c.Room, c.Days, c.Time, c.Instructor)
}

func InsertAssignment(t *testing.T, db *sqlx.DB, a domain.Assignment) {
	t.Helper()
	if a.SessionID == "" {
		a.SessionID = TestSessionID
	}
	db.MustExec(`INSERT INTO user_assignments (session_id, course_code, title, due_date, status)
		VALUES (?, ?, ?, ?, ?)`,
		a.SessionID, a.CourseCode, a.Title, a.DueDate, a.Status)
}

func InsertExam(t *testing.T, db *sqlx.DB, e domain.Exam) {
	t.Helper()
	if e.SessionID == "" {
		e.SessionID = TestSessionID
	}
	db.MustExec(`INSERT INTO exams (session_id, course_code, exam_type, exam_datetime, location)
		VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, e.CourseCode, e.ExamType, e.ExamDatetime, e.Location)
}

func InsertEvent(t *testing.T, db *sqlx.DB, e domain.Event) {
	t.Helper()
	if e.SessionID == "" {
		e.SessionID = TestSessionID
	}
	db.MustExec(`INSERT INTO events (session_id, title, start_datetime, location, url)
		VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, e.Title, e.StartDatetime, e.Location, e.URL)
}

func InsertAlert(t *testing.T, db *sqlx.DB, a domain.PoliceAlert) {
	t.Helper()
	if a.SessionID == "" {
		a.SessionID = TestSessionID
	}
	db.MustExec(`INSERT INTO police_alerts (session_id, title, url, alert_date)
		VALUES (?, ?, ?, ?)`,
		a.SessionID, a.Title, a.URL, a.AlertDate)
}
