// file: internals/features/assignments/submissions/model/submission_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// SubmissionModel maps the `submissions` table. One row per
// (assignment, student); "late" is derived at read time from the due date,
// never stored.
type SubmissionModel struct {
	// =========================
	// Primary Key
	// =========================
	SubmissionID uuid.UUID `json:"submission_id" gorm:"column:submission_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// =========================
	// References
	// =========================
	SubmissionAssignmentID uuid.UUID `json:"submission_assignment_id" gorm:"column:submission_assignment_id;type:uuid;not null;uniqueIndex:uq_submission_assignment_student"`
	SubmissionStudentID    uuid.UUID `json:"submission_student_id" gorm:"column:submission_student_id;type:uuid;not null;uniqueIndex:uq_submission_assignment_student;index"`

	// =========================
	// Content
	// =========================
	SubmissionContent        *string        `json:"submission_content,omitempty" gorm:"column:submission_content;type:text"`
	SubmissionAttachmentURLs pq.StringArray `json:"submission_attachment_urls" gorm:"column:submission_attachment_urls;type:text[]"`
	SubmissionAttachmentKeys pq.StringArray `json:"-" gorm:"column:submission_attachment_keys;type:text[]"`

	// =========================
	// Grading
	// =========================
	SubmissionStatus   string     `json:"submission_status" gorm:"column:submission_status;type:varchar(20);not null;default:'submitted'"`
	SubmissionScore    *float64   `json:"submission_score,omitempty" gorm:"column:submission_score;type:numeric(10,2)"`
	SubmissionFeedback *string    `json:"submission_feedback,omitempty" gorm:"column:submission_feedback;type:text"`
	SubmissionGradedAt *time.Time `json:"submission_graded_at,omitempty" gorm:"column:submission_graded_at"`
	SubmissionGradedBy *uuid.UUID `json:"submission_graded_by,omitempty" gorm:"column:submission_graded_by;type:uuid"`

	// =========================
	// Timestamps
	// =========================
	SubmissionSubmittedAt time.Time      `json:"submission_submitted_at" gorm:"column:submission_submitted_at;not null;autoCreateTime"`
	SubmissionUpdatedAt   time.Time      `json:"submission_updated_at" gorm:"column:submission_updated_at;not null;autoUpdateTime"`
	SubmissionDeletedAt   gorm.DeletedAt `json:"submission_deleted_at" gorm:"column:submission_deleted_at;index"`
}

func (SubmissionModel) TableName() string {
	return "submissions"
}
