// file: internals/features/materials/dto/material_dto.go
package dto

type UploadMaterialRequest struct {
	MaterialTitle       string  `form:"material_title" json:"material_title" validate:"required,min=1,max=200"`
	MaterialDescription *string `form:"material_description" json:"material_description,omitempty" validate:"omitempty,max=5000"`
	MaterialClassroomID *string `form:"material_classroom_id" json:"material_classroom_id,omitempty" validate:"omitempty,uuid4"`
}

type UpdateMaterialRequest struct {
	MaterialTitle       *string `json:"material_title,omitempty" validate:"omitempty,min=1,max=200"`
	MaterialDescription *string `json:"material_description,omitempty" validate:"omitempty,max=5000"`
}
