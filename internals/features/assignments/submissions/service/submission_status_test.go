package service

import (
	"testing"
	"time"

	subModel "classku_backend/internals/features/assignments/submissions/model"
)

func TestStudentAssignmentStatus(t *testing.T) {
	due := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	before := due.Add(-2 * time.Hour)
	after := due.Add(2 * time.Hour)

	subAt := func(status string, at time.Time) *subModel.SubmissionModel {
		return &subModel.SubmissionModel{
			SubmissionStatus:      status,
			SubmissionSubmittedAt: at,
		}
	}

	tests := []struct {
		name string
		sub  *subModel.SubmissionModel
		now  time.Time
		want string
	}{
		{"no submission before due", nil, before, "pending"},
		{"no submission past due", nil, after, "late"},
		{"no submission exactly at due", nil, due, "pending"},
		{"submitted on time", subAt(subModel.SubmissionStatusSubmitted, before), after, "submitted"},
		{"submitted after due", subAt(subModel.SubmissionStatusSubmitted, after), after, "late"},
		{"graded wins over late", subAt(subModel.SubmissionStatusGraded, after), after, "graded"},
		{"graded on time", subAt(subModel.SubmissionStatusGraded, before), after, "graded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StudentAssignmentStatus(tt.sub, due, tt.now); got != tt.want {
				t.Errorf("StudentAssignmentStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsLate(t *testing.T) {
	due := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

	if IsLate(nil, due) {
		t.Error("IsLate(nil) = true, want false")
	}
	onTime := &subModel.SubmissionModel{SubmissionSubmittedAt: due.Add(-time.Minute)}
	if IsLate(onTime, due) {
		t.Error("on-time submission reported late")
	}
	late := &subModel.SubmissionModel{SubmissionSubmittedAt: due.Add(time.Minute)}
	if !IsLate(late, due) {
		t.Error("late submission not reported late")
	}
	exact := &subModel.SubmissionModel{SubmissionSubmittedAt: due}
	if IsLate(exact, due) {
		t.Error("exactly-at-due submission reported late")
	}
}
