// file: internals/features/classrooms/model/classroom_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClassroomModel maps the `classrooms` table. The invite code is globally
// unique; settings are a small JSONB blob so new flags don't need migrations.
type ClassroomModel struct {
	// =========================
	// Primary Key
	// =========================
	ClassroomID uuid.UUID `json:"classroom_id" gorm:"column:classroom_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// =========================
	// Ownership
	// =========================
	ClassroomTeacherID uuid.UUID `json:"classroom_teacher_id" gorm:"column:classroom_teacher_id;type:uuid;not null;index"`

	// =========================
	// Content
	// =========================
	ClassroomName        string  `json:"classroom_name" gorm:"column:classroom_name;size:150;not null" validate:"required,min=1,max=150"`
	ClassroomSubject     *string `json:"classroom_subject,omitempty" gorm:"column:classroom_subject;size:100"`
	ClassroomDescription *string `json:"classroom_description,omitempty" gorm:"column:classroom_description;type:text"`

	// invite code, upper-hex, globally unique
	ClassroomCode string `json:"classroom_code" gorm:"column:classroom_code;size:16;unique;not null"`

	// {"allow_student_doubts": bool, "is_archived": bool}
	ClassroomSettings datatypes.JSON `json:"classroom_settings" gorm:"column:classroom_settings;type:jsonb"`

	// =========================
	// Timestamps
	// =========================
	ClassroomCreatedAt time.Time      `json:"classroom_created_at" gorm:"column:classroom_created_at;not null;autoCreateTime"`
	ClassroomUpdatedAt time.Time      `json:"classroom_updated_at" gorm:"column:classroom_updated_at;not null;autoUpdateTime"`
	ClassroomDeletedAt gorm.DeletedAt `json:"classroom_deleted_at" gorm:"column:classroom_deleted_at;index"`
}

func (ClassroomModel) TableName() string {
	return "classrooms"
}

// ClassroomSettingsData is the decoded form of ClassroomSettings.
type ClassroomSettingsData struct {
	AllowStudentDoubts bool `json:"allow_student_doubts"`
	IsArchived         bool `json:"is_archived"`
}

func DefaultClassroomSettings() ClassroomSettingsData {
	return ClassroomSettingsData{AllowStudentDoubts: true, IsArchived: false}
}
