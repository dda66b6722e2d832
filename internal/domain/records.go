package domain

import "time"

// Assignment is a graded task for a course. CourseCode is not enforced
// against the course catalog and may reference an unknown course.
type Assignment struct {
	SessionID  string `db:"session_id"`
	CourseCode string `db:"course_code"`
	Title      string `db:"title"`
	DueDate    string `db:"due_date"`
	Status     string `db:"status"`
}

// Exam is a scheduled exam. ExamDatetime is kept as stored so that
// unparseable values can still be displayed verbatim.
type Exam struct {
	SessionID    string `db:"session_id"`
	CourseCode   string `db:"course_code"`
	ExamType     string `db:"exam_type"`
	ExamDatetime string `db:"exam_datetime"`
	Location     string `db:"location"`
}

// When parses ExamDatetime.
func (e Exam) When() (time.Time, bool) {
	t, err := ParseTimestamp(e.ExamDatetime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Event is a campus event.
type Event struct {
	SessionID     string    `db:"session_id"`
	Title         string    `db:"title"`
	StartDatetime string    `db:"start_datetime"`
	Location      string    `db:"location"`
	URL           string    `db:"url"`
	StartsAt      time.Time `db:"-"`
}

// PoliceAlert is a public-safety notice scraped from the campus police feed.
type PoliceAlert struct {
	SessionID string `db:"session_id"`
	Title     string `db:"title"`
	URL       string `db:"url"`
	AlertDate string `db:"alert_date"`
}

// SessionInfo is the persistent identity record that scopes every query.
type SessionInfo struct {
	SessionUUID string `db:"session_uuid"`
}
