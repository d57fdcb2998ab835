// file: internals/features/materials/model/material_access_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaterialAccessView     = "view"
	MaterialAccessDownload = "download"
)

// MaterialAccessModel is an append-only tracking row, at most one per
// (material, student, kind).
type MaterialAccessModel struct {
	MaterialAccessID uuid.UUID `json:"material_access_id" gorm:"column:material_access_id;type:uuid;default:gen_random_uuid();primaryKey"`

	MaterialAccessMaterialID uuid.UUID `json:"material_access_material_id" gorm:"column:material_access_material_id;type:uuid;not null;uniqueIndex:uq_material_access"`
	MaterialAccessStudentID  uuid.UUID `json:"material_access_student_id" gorm:"column:material_access_student_id;type:uuid;not null;uniqueIndex:uq_material_access"`
	MaterialAccessKind       string    `json:"material_access_kind" gorm:"column:material_access_kind;type:varchar(10);not null;uniqueIndex:uq_material_access"`

	MaterialAccessCreatedAt time.Time `json:"material_access_created_at" gorm:"column:material_access_created_at;not null;autoCreateTime"`
}

func (MaterialAccessModel) TableName() string {
	return "material_access"
}
