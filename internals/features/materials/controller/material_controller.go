// file: internals/features/materials/controller/material_controller.go
package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "classku_backend/internals/features/activity/model"
	activityService "classku_backend/internals/features/activity/service"
	assistantService "classku_backend/internals/features/assistant/service"
	classModel "classku_backend/internals/features/classrooms/model"
	classService "classku_backend/internals/features/classrooms/service"
	materialDTO "classku_backend/internals/features/materials/dto"
	materialModel "classku_backend/internals/features/materials/model"
	constants "classku_backend/internals/constants"
	helpers "classku_backend/internals/helpers"
	helperOSS "classku_backend/internals/helpers/oss"
)

type MaterialController struct {
	DB       *gorm.DB
	Blob     helperOSS.BlobService
	AI       *assistantService.Client
	validate *validator.Validate
}

func NewMaterialController(db *gorm.DB, blob helperOSS.BlobService, ai *assistantService.Client) *MaterialController {
	return &MaterialController{DB: db, Blob: blob, AI: ai, validate: validator.New()}
}

/* =========================================================
   Shared lookups
========================================================= */

func (ctrl *MaterialController) findOwned(c *fiber.Ctx) (*materialModel.MaterialModel, error) {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	materialID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	var material materialModel.MaterialModel
	if err := ctrl.DB.First(&material, "material_id = ?", materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch material")
	}
	if material.MaterialTeacherID != teacherID {
		return nil, fiber.NewError(fiber.StatusForbidden, "You do not own this material")
	}
	return &material, nil
}

func (ctrl *MaterialController) findVisible(c *fiber.Ctx) (*materialModel.MaterialModel, uuid.UUID, string, error) {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return nil, uuid.Nil, "", err
	}
	role, err := helpers.GetUserRoleFromToken(c)
	if err != nil {
		return nil, uuid.Nil, "", err
	}
	materialID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, uuid.Nil, "", err
	}

	var material materialModel.MaterialModel
	if err := ctrl.DB.First(&material, "material_id = ?", materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, "", fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
		return nil, uuid.Nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch material")
	}

	if role == "teacher" {
		if material.MaterialTeacherID != userID {
			return nil, uuid.Nil, "", fiber.NewError(fiber.StatusForbidden, "You do not own this material")
		}
		return &material, userID, role, nil
	}

	if material.MaterialClassroomID == nil {
		return nil, uuid.Nil, "", fiber.NewError(fiber.StatusForbidden, "This material is not shared with a classroom")
	}
	enrolled, err := classService.IsEnrolled(ctrl.DB, *material.MaterialClassroomID, userID)
	if err != nil {
		return nil, uuid.Nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to check enrollment")
	}
	if !enrolled {
		return nil, uuid.Nil, "", fiber.NewError(fiber.StatusForbidden, "You are not enrolled in this classroom")
	}
	return &material, userID, role, nil
}

// trackAccess inserts at most one row per (material, student, kind) and
// reports whether it was the first event.
func (ctrl *MaterialController) trackAccess(materialID, studentID uuid.UUID, kind string) (bool, error) {
	var count int64
	if err := ctrl.DB.Model(&materialModel.MaterialAccessModel{}).
		Where("material_access_material_id = ? AND material_access_student_id = ? AND material_access_kind = ?",
			materialID, studentID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	row := materialModel.MaterialAccessModel{
		MaterialAccessMaterialID: materialID,
		MaterialAccessStudentID:  studentID,
		MaterialAccessKind:       kind,
	}
	if err := ctrl.DB.Create(&row).Error; err != nil {
		// unique index race: another request won, treat as repeat
		return false, nil
	}
	return true, nil
}

// summarizeAsync generates the AI summary in the background. Failures are
// logged and swallowed: a broken assistant never fails a material operation.
func (ctrl *MaterialController) summarizeAsync(materialID uuid.UUID, text string) {
	if ctrl.AI == nil || !ctrl.AI.Enabled() || text == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		summary, err := ctrl.AI.Summarize(ctx, text)
		if err != nil {
			log.Printf("[MATERIAL] summary generation failed material=%s err=%v", materialID, err)
			return
		}
		if err := ctrl.DB.Model(&materialModel.MaterialModel{}).
			Where("material_id = ?", materialID).
			Update("material_ai_summary", summary).Error; err != nil {
			log.Printf("[MATERIAL] summary persist failed material=%s err=%v", materialID, err)
		}
	}()
}

/* =========================================================
   POST /api/t/materials  (multipart, field: file)
========================================================= */

func (ctrl *MaterialController) UploadMaterial(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req materialDTO.UploadMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var classroomID *uuid.UUID
	if req.MaterialClassroomID != nil && *req.MaterialClassroomID != "" {
		id, err := uuid.Parse(*req.MaterialClassroomID)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid classroom id")
		}
		var classroom classModel.ClassroomModel
		if err := ctrl.DB.First(&classroom, "classroom_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helpers.JsonError(c, fiber.StatusNotFound, "Classroom not found")
			}
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classroom")
		}
		if classroom.ClassroomTeacherID != teacherID {
			return helpers.JsonError(c, fiber.StatusForbidden, "You do not own this classroom")
		}
		classroomID = &id
	}

	fh := helperOSS.TryGetFormFile(c, "file", "material")
	if fh == nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Material file is required")
	}

	publicURL, objectKey, contentType, err := ctrl.Blob.UploadToDir(c.Context(), "materials", fh)
	if err != nil {
		log.Printf("[MATERIAL] upload failed teacher=%s err=%v", teacherID, err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Failed to upload material file")
	}

	material := materialModel.MaterialModel{
		MaterialTeacherID:   teacherID,
		MaterialClassroomID: classroomID,
		MaterialTitle:       req.MaterialTitle,
		MaterialDescription: req.MaterialDescription,
		MaterialFileURL:     publicURL,
		MaterialObjectKey:   objectKey,
		MaterialContentType: contentType,
		MaterialFileSize:    fh.Size,
		MaterialFileType:    constants.DetectFileTypeFromExt(fh.Filename),
	}
	if err := ctrl.DB.Create(&material).Error; err != nil {
		_ = ctrl.Blob.DeleteByPublicURL(c.Context(), publicURL)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create material")
	}

	// summarize PDFs in the background when the assistant is configured
	if material.MaterialFileType == constants.FileTypePDF {
		if text, _, err := assistantService.ExtractTextFromPDF(fh); err == nil {
			ctrl.summarizeAsync(material.MaterialID, text)
		}
	}

	activityService.LogActivity(ctrl.DB, teacherID,
		activityModel.ActivityTypeMaterialUploaded,
		"Uploaded material: "+material.MaterialTitle,
		&material.MaterialID,
		map[string]interface{}{"classroom_id": classroomID})

	return helpers.JsonCreated(c, "Material uploaded successfully", material)
}

/* =========================================================
   GET /api/t/materials  |  GET /api/s/materials?classroom_id=
========================================================= */

func (ctrl *MaterialController) ListMaterials(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	role, err := helpers.GetUserRoleFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&materialModel.MaterialModel{})
	if role == "teacher" {
		q = q.Where("material_teacher_id = ?", userID)
	} else {
		q = q.Where("material_classroom_id IN (?)",
			ctrl.DB.Table("classroom_students").
				Select("classroom_student_classroom_id").
				Where("classroom_student_student_id = ?", userID))
	}
	if raw := c.Query("classroom_id"); raw != "" {
		classroomID, err := uuid.Parse(raw)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid classroom id")
		}
		q = q.Where("material_classroom_id = ?", classroomID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to count materials")
	}

	var rows []materialModel.MaterialModel
	if err := q.Order("material_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch materials")
	}

	return helpers.JsonList(c, "Materials fetched successfully", rows,
		helpers.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

/* =========================================================
   GET /api/u/materials/:id  (students get a view-tracking row)
========================================================= */

func (ctrl *MaterialController) GetMaterial(c *fiber.Ctx) error {
	material, userID, role, err := ctrl.findVisible(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	if role == "student" {
		if _, err := ctrl.trackAccess(material.MaterialID, userID, materialModel.MaterialAccessView); err != nil {
			log.Printf("[MATERIAL] view tracking failed material=%s err=%v", material.MaterialID, err)
		}
	}
	return helpers.JsonOK(c, "Material fetched successfully", material)
}

/* =========================================================
   POST /api/s/materials/:id/download
========================================================= */

func (ctrl *MaterialController) TrackDownload(c *fiber.Ctx) error {
	material, userID, _, err := ctrl.findVisible(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	first, err := ctrl.trackAccess(material.MaterialID, userID, materialModel.MaterialAccessDownload)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to track download")
	}
	if first {
		if err := ctrl.DB.Model(material).
			UpdateColumn("material_download_count", gorm.Expr("material_download_count + 1")).Error; err != nil {
			log.Printf("[MATERIAL] download count bump failed material=%s err=%v", material.MaterialID, err)
		}
	}

	return helpers.JsonOK(c, "Download recorded successfully", fiber.Map{
		"material_id":       material.MaterialID,
		"material_file_url": material.MaterialFileURL,
	})
}

/* =========================================================
   PATCH /api/t/materials/:id
========================================================= */

func (ctrl *MaterialController) UpdateMaterial(c *fiber.Ctx) error {
	material, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req materialDTO.UpdateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.MaterialTitle != nil {
		updates["material_title"] = *req.MaterialTitle
	}
	if req.MaterialDescription != nil {
		updates["material_description"] = *req.MaterialDescription
	}
	if len(updates) == 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(material).Updates(updates).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update material")
	}
	if err := ctrl.DB.First(material, "material_id = ?", material.MaterialID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to reload material")
	}
	return helpers.JsonUpdated(c, "Material updated successfully", material)
}

/* =========================================================
   POST /api/t/materials/:id/summary
========================================================= */

func (ctrl *MaterialController) GenerateSummary(c *fiber.Ctx) error {
	material, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if ctrl.AI == nil || !ctrl.AI.Enabled() {
		return helpers.JsonError(c, fiber.StatusBadGateway, "Assistant is not configured")
	}

	base := material.MaterialTitle
	if material.MaterialDescription != nil {
		base += "\n\n" + *material.MaterialDescription
	}
	summary, err := ctrl.AI.Summarize(c.Context(), base)
	if err != nil {
		log.Printf("[MATERIAL] summary failed material=%s err=%v", material.MaterialID, err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Failed to generate summary")
	}

	if err := ctrl.DB.Model(material).Update("material_ai_summary", summary).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to save summary")
	}
	return helpers.JsonUpdated(c, "Summary generated successfully", fiber.Map{
		"material_id":         material.MaterialID,
		"material_ai_summary": summary,
	})
}

/* =========================================================
   DELETE /api/t/materials/:id
========================================================= */

func (ctrl *MaterialController) DeleteMaterial(c *fiber.Ctx) error {
	material, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	// object first (best-effort), then the row
	if err := ctrl.Blob.DeleteByPublicURL(c.Context(), material.MaterialFileURL); err != nil {
		log.Printf("[MATERIAL] object cleanup failed material=%s err=%v", material.MaterialID, err)
	}
	if err := ctrl.DB.Delete(material).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete material")
	}
	return helpers.JsonDeleted(c, "Material deleted successfully", fiber.Map{
		"material_id": material.MaterialID,
	})
}
