// file: internals/features/materials/model/material_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialModel maps the `materials` table: one uploaded study file with its
// object-store coordinates and an optional AI-generated summary.
type MaterialModel struct {
	// =========================
	// Primary Key
	// =========================
	MaterialID uuid.UUID `json:"material_id" gorm:"column:material_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// =========================
	// Ownership & scope
	// =========================
	MaterialTeacherID   uuid.UUID  `json:"material_teacher_id" gorm:"column:material_teacher_id;type:uuid;not null;index"`
	MaterialClassroomID *uuid.UUID `json:"material_classroom_id,omitempty" gorm:"column:material_classroom_id;type:uuid;index"`

	// =========================
	// Content
	// =========================
	MaterialTitle       string  `json:"material_title" gorm:"column:material_title;size:200;not null" validate:"required,min=1,max=200"`
	MaterialDescription *string `json:"material_description,omitempty" gorm:"column:material_description;type:text"`

	MaterialFileURL     string `json:"material_file_url" gorm:"column:material_file_url;type:text;not null"`
	MaterialObjectKey   string `json:"-" gorm:"column:material_object_key;type:text;not null"`
	MaterialContentType string `json:"material_content_type" gorm:"column:material_content_type;size:100"`
	MaterialFileSize    int64  `json:"material_file_size" gorm:"column:material_file_size;not null;default:0"`
	MaterialFileType    string `json:"material_file_type" gorm:"column:material_file_type;size:30"`

	MaterialDownloadCount int     `json:"material_download_count" gorm:"column:material_download_count;not null;default:0"`
	MaterialAISummary     *string `json:"material_ai_summary,omitempty" gorm:"column:material_ai_summary;type:text"`

	// =========================
	// Timestamps
	// =========================
	MaterialCreatedAt time.Time      `json:"material_created_at" gorm:"column:material_created_at;not null;autoCreateTime"`
	MaterialUpdatedAt time.Time      `json:"material_updated_at" gorm:"column:material_updated_at;not null;autoUpdateTime"`
	MaterialDeletedAt gorm.DeletedAt `json:"material_deleted_at" gorm:"column:material_deleted_at;index"`
}

func (MaterialModel) TableName() string {
	return "materials"
}
