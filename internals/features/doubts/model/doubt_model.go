// file: internals/features/doubts/model/doubt_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DoubtStatusPending  = "pending"
	DoubtStatusAnswered = "answered"
	DoubtStatusResolved = "resolved"
	DoubtStatusClosed   = "closed"
)

// ValidDoubtStatus reports whether s is one of the four stored states.
// Transitions are free between any pair; pending is the creation default.
func ValidDoubtStatus(s string) bool {
	switch s {
	case DoubtStatusPending, DoubtStatusAnswered, DoubtStatusResolved, DoubtStatusClosed:
		return true
	}
	return false
}

// DoubtModel maps the `doubts` table: per-assignment student questions with
// optional public visibility and simple vote counters.
type DoubtModel struct {
	// =========================
	// Primary Key
	// =========================
	DoubtID uuid.UUID `json:"doubt_id" gorm:"column:doubt_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// =========================
	// References
	// =========================
	DoubtAssignmentID uuid.UUID `json:"doubt_assignment_id" gorm:"column:doubt_assignment_id;type:uuid;not null;index"`
	DoubtStudentID    uuid.UUID `json:"doubt_student_id" gorm:"column:doubt_student_id;type:uuid;not null;index"`

	// =========================
	// Content
	// =========================
	DoubtQuestion string `json:"doubt_question" gorm:"column:doubt_question;type:text;not null" validate:"required,min=1,max=5000"`
	DoubtIsPublic bool   `json:"doubt_is_public" gorm:"column:doubt_is_public;not null;default:false"`
	DoubtStatus   string `json:"doubt_status" gorm:"column:doubt_status;type:varchar(20);not null;default:'pending'"`

	// =========================
	// Answer
	// =========================
	DoubtAnswer     *string    `json:"doubt_answer,omitempty" gorm:"column:doubt_answer;type:text"`
	DoubtAnsweredBy *uuid.UUID `json:"doubt_answered_by,omitempty" gorm:"column:doubt_answered_by;type:uuid"`
	DoubtAnsweredAt *time.Time `json:"doubt_answered_at,omitempty" gorm:"column:doubt_answered_at"`

	// =========================
	// Votes
	// =========================
	DoubtUpvotes   int `json:"doubt_upvotes" gorm:"column:doubt_upvotes;not null;default:0"`
	DoubtDownvotes int `json:"doubt_downvotes" gorm:"column:doubt_downvotes;not null;default:0"`

	// =========================
	// Timestamps
	// =========================
	DoubtCreatedAt time.Time      `json:"doubt_created_at" gorm:"column:doubt_created_at;not null;autoCreateTime"`
	DoubtUpdatedAt time.Time      `json:"doubt_updated_at" gorm:"column:doubt_updated_at;not null;autoUpdateTime"`
	DoubtDeletedAt gorm.DeletedAt `json:"doubt_deleted_at" gorm:"column:doubt_deleted_at;index"`
}

func (DoubtModel) TableName() string {
	return "doubts"
}
