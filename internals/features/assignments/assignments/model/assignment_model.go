// file: internals/features/assignments/assignments/model/assignment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssignmentModel maps the `assignments` table. Attachment URLs and object
// keys are parallel arrays; questions hold optional quiz content as JSONB.
type AssignmentModel struct {
	// =========================
	// Primary Key
	// =========================
	AssignmentID uuid.UUID `json:"assignment_id" gorm:"column:assignment_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// =========================
	// Ownership & scope
	// =========================
	AssignmentTeacherID   uuid.UUID `json:"assignment_teacher_id" gorm:"column:assignment_teacher_id;type:uuid;not null;index"`
	AssignmentClassroomID uuid.UUID `json:"assignment_classroom_id" gorm:"column:assignment_classroom_id;type:uuid;not null;index"`

	// =========================
	// Content
	// =========================
	AssignmentTitle        string  `json:"assignment_title" gorm:"column:assignment_title;size:200;not null" validate:"required,min=1,max=200"`
	AssignmentInstructions *string `json:"assignment_instructions,omitempty" gorm:"column:assignment_instructions;type:text"`

	AssignmentDueAt       time.Time `json:"assignment_due_at" gorm:"column:assignment_due_at;not null"`
	AssignmentTotalPoints float64   `json:"assignment_total_points" gorm:"column:assignment_total_points;type:numeric(10,2);not null" validate:"required,gt=0"`

	// optional generated quiz content
	AssignmentQuestions datatypes.JSON `json:"assignment_questions,omitempty" gorm:"column:assignment_questions;type:jsonb"`

	AssignmentAttachmentURLs pq.StringArray `json:"assignment_attachment_urls" gorm:"column:assignment_attachment_urls;type:text[]"`
	AssignmentAttachmentKeys pq.StringArray `json:"-" gorm:"column:assignment_attachment_keys;type:text[]"`

	// =========================
	// Timestamps
	// =========================
	AssignmentCreatedAt time.Time      `json:"assignment_created_at" gorm:"column:assignment_created_at;not null;autoCreateTime"`
	AssignmentUpdatedAt time.Time      `json:"assignment_updated_at" gorm:"column:assignment_updated_at;not null;autoUpdateTime"`
	AssignmentDeletedAt gorm.DeletedAt `json:"assignment_deleted_at" gorm:"column:assignment_deleted_at;index"`
}

func (AssignmentModel) TableName() string {
	return "assignments"
}
