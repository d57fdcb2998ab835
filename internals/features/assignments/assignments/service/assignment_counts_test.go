package service

import (
	"testing"
	"time"
)

func TestComputeCounts(t *testing.T) {
	due := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	before := due.Add(-time.Hour)
	after := due.Add(time.Hour)

	tests := []struct {
		name      string
		total     int
		submitted int
		now       time.Time
		want      DerivedCounts
	}{
		{
			name: "all pending before due", total: 20, submitted: 0, now: before,
			want: DerivedCounts{TotalStudents: 20, SubmittedCount: 0, PendingCount: 20, OverdueCount: 0},
		},
		{
			name: "partial before due", total: 20, submitted: 8, now: before,
			want: DerivedCounts{TotalStudents: 20, SubmittedCount: 8, PendingCount: 12, OverdueCount: 0},
		},
		{
			name: "partial past due", total: 20, submitted: 8, now: after,
			want: DerivedCounts{TotalStudents: 20, SubmittedCount: 8, PendingCount: 12, OverdueCount: 12},
		},
		{
			name: "fully submitted past due", total: 20, submitted: 20, now: after,
			want: DerivedCounts{TotalStudents: 20, SubmittedCount: 20, PendingCount: 0, OverdueCount: 0},
		},
		{
			name: "submissions outnumber roster clamps at zero", total: 5, submitted: 7, now: after,
			want: DerivedCounts{TotalStudents: 5, SubmittedCount: 7, PendingCount: 0, OverdueCount: 0},
		},
		{
			name: "exactly at due is not overdue", total: 10, submitted: 3, now: due,
			want: DerivedCounts{TotalStudents: 10, SubmittedCount: 3, PendingCount: 7, OverdueCount: 0},
		},
		{
			name: "empty roster", total: 0, submitted: 0, now: after,
			want: DerivedCounts{TotalStudents: 0, SubmittedCount: 0, PendingCount: 0, OverdueCount: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCounts(tt.total, tt.submitted, due, tt.now)
			if got != tt.want {
				t.Errorf("ComputeCounts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
