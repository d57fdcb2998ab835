// file: internals/features/assignments/submissions/service/submission_status.go
package service

import (
	"time"

	subModel "classku_backend/internals/features/assignments/submissions/model"
)

// StudentAssignmentStatus is what a student sees per assignment:
// "graded", "submitted", "late" or "pending". Derived on read, never stored.
// late = submitted after the due date, or not submitted and the due date passed.
func StudentAssignmentStatus(sub *subModel.SubmissionModel, dueAt, now time.Time) string {
	if sub == nil {
		if now.After(dueAt) {
			return "late"
		}
		return "pending"
	}
	if sub.SubmissionStatus == subModel.SubmissionStatusGraded {
		return "graded"
	}
	if sub.SubmissionSubmittedAt.After(dueAt) {
		return "late"
	}
	return "submitted"
}

// IsLate reports whether a submission arrived after the due date.
func IsLate(sub *subModel.SubmissionModel, dueAt time.Time) bool {
	if sub == nil {
		return false
	}
	return sub.SubmissionSubmittedAt.After(dueAt)
}
