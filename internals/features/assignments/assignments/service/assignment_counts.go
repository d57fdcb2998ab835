// file: internals/features/assignments/assignments/service/assignment_counts.go
package service

import "time"

// DerivedCounts is the per-assignment rollup computed on every read.
// Nothing here is stored.
type DerivedCounts struct {
	TotalStudents  int `json:"total_students"`
	SubmittedCount int `json:"submitted_count"`
	PendingCount   int `json:"pending_count"`
	OverdueCount   int `json:"overdue_count"`
}

// ComputeCounts derives the submission rollup for one assignment.
// pending clamps at zero (a student may submit after leaving the roster);
// overdue equals pending only once the due date has passed.
func ComputeCounts(totalStudents, submitted int, dueAt, now time.Time) DerivedCounts {
	pending := totalStudents - submitted
	if pending < 0 {
		pending = 0
	}
	overdue := 0
	if now.After(dueAt) {
		overdue = pending
	}
	return DerivedCounts{
		TotalStudents:  totalStudents,
		SubmittedCount: submitted,
		PendingCount:   pending,
		OverdueCount:   overdue,
	}
}
