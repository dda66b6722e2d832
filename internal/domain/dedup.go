package domain

import "sort"

type assignmentKey struct {
	course, title, due string
}

type examKey struct {
	course, kind, at string
}

// DedupAssignments collapses rows sharing (course_code, title, due_date),
// keeping the first occurrence and the input order.
func DedupAssignments(in []Assignment) []Assignment {
	seen := make(map[assignmentKey]bool, len(in))
	out := make([]Assignment, 0, len(in))
	for _, a := range in {
		k := assignmentKey{a.CourseCode, a.Title, a.DueDate}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, a)
	}
	return out
}

// DedupExams collapses rows sharing (course_code, exam_type, exam_datetime).
func DedupExams(in []Exam) []Exam {
	seen := make(map[examKey]bool, len(in))
	out := make([]Exam, 0, len(in))
	for _, e := range in {
		k := examKey{e.CourseCode, e.ExamType, e.ExamDatetime}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

// SortExams orders exams by parsed date, earliest first. Exams whose date
// does not parse keep their relative order after the dated ones.
func SortExams(exams []Exam) {
	sort.SliceStable(exams, func(i, j int) bool {
		a, aok := exams[i].When()
		b, bok := exams[j].When()
		switch {
		case aok && bok:
			return a.Before(b)
		default:
			return aok && !bok
		}
	})
}
