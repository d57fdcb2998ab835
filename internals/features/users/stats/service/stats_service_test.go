package service

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func fptr(f float64) *float64 { return &f }

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name string
		rows []GradedRow
		want StudentStats
	}{
		{
			name: "no submissions",
			want: StudentStats{},
		},
		{
			name: "submitted only counts as completed, no average",
			rows: []GradedRow{
				{Status: "submitted", TotalPoints: 100},
				{Status: "submitted", TotalPoints: 50},
			},
			want: StudentStats{CompletedAssignments: 2},
		},
		{
			name: "graded average is mean of percentages, rounded",
			rows: []GradedRow{
				{Status: "graded", Score: fptr(85), TotalPoints: 100}, // 85%
				{Status: "graded", Score: fptr(40), TotalPoints: 50},  // 80%
			},
			want: StudentStats{CompletedAssignments: 2, AverageScore: 83, TotalPoints: 125},
		},
		{
			name: "rounding goes to nearest integer",
			rows: []GradedRow{
				{Status: "graded", Score: fptr(1), TotalPoints: 3}, // 33.33%
				{Status: "graded", Score: fptr(2), TotalPoints: 3}, // 66.67%
			},
			want: StudentStats{CompletedAssignments: 2, AverageScore: 50, TotalPoints: 3},
		},
		{
			name: "graded without score contributes nothing to average",
			rows: []GradedRow{
				{Status: "graded", TotalPoints: 100},
				{Status: "graded", Score: fptr(90), TotalPoints: 100},
			},
			want: StudentStats{CompletedAssignments: 2, AverageScore: 90, TotalPoints: 90},
		},
		{
			name: "zero max score is skipped in the average but raw score still sums",
			rows: []GradedRow{
				{Status: "graded", Score: fptr(10), TotalPoints: 0},
				{Status: "graded", Score: fptr(80), TotalPoints: 100},
			},
			want: StudentStats{CompletedAssignments: 2, AverageScore: 80, TotalPoints: 90},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.rows)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	rows := []GradedRow{
		{Status: "graded", Score: fptr(85), TotalPoints: 100},
		{Status: "submitted", TotalPoints: 100},
	}
	first := ComputeStats(rows)
	second := ComputeStats(rows)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recompute not idempotent: %+v vs %+v", first, second)
	}
}

func TestComputeBadges(t *testing.T) {
	tests := []struct {
		name                 string
		avg, completed, days int
		want                 []string
	}{
		{name: "nothing earned", want: []string{}},
		{name: "achiever at 90", avg: 90, want: []string{"achiever"}},
		{name: "consistent below 90", avg: 75, want: []string{"consistent"}},
		{name: "achiever wins over consistent", avg: 95, want: []string{"achiever"}},
		{name: "dedicated at 10 completed", completed: 10, want: []string{"dedicated"}},
		{name: "streak week", days: 7, want: []string{"streak-week"}},
		{
			name: "all together", avg: 92, completed: 12, days: 9,
			want: []string{"achiever", "dedicated", "streak-week"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBadges(tt.avg, tt.completed, tt.days)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeBadges() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankOf(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	entries := []RankEntry{
		{StudentID: a, AverageScore: 70, TotalPoints: 300},
		{StudentID: b, AverageScore: 90, TotalPoints: 100},
		{StudentID: c, AverageScore: 70, TotalPoints: 500},
	}

	if got := RankOf(entries, b); got != 1 {
		t.Errorf("rank of top student = %d, want 1", got)
	}
	// tie on average broken by total points
	if got := RankOf(entries, c); got != 2 {
		t.Errorf("rank of c = %d, want 2", got)
	}
	if got := RankOf(entries, a); got != 3 {
		t.Errorf("rank of a = %d, want 3", got)
	}
	if got := RankOf(entries, uuid.New()); got != 0 {
		t.Errorf("rank of unknown student = %d, want 0", got)
	}
	// input order must be left untouched
	if entries[0].StudentID != a {
		t.Error("RankOf mutated its input")
	}
}
