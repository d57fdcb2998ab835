// file: internals/features/assignments/assignments/controller/assignment_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	activityModel "classku_backend/internals/features/activity/model"
	activityService "classku_backend/internals/features/activity/service"
	assignDTO "classku_backend/internals/features/assignments/assignments/dto"
	assignModel "classku_backend/internals/features/assignments/assignments/model"
	assignService "classku_backend/internals/features/assignments/assignments/service"
	subModel "classku_backend/internals/features/assignments/submissions/model"
	classModel "classku_backend/internals/features/classrooms/model"
	helpers "classku_backend/internals/helpers"
	helperOSS "classku_backend/internals/helpers/oss"
)

type AssignmentController struct {
	DB       *gorm.DB
	Blob     helperOSS.BlobService
	validate *validator.Validate
}

func NewAssignmentController(db *gorm.DB, blob helperOSS.BlobService) *AssignmentController {
	return &AssignmentController{DB: db, Blob: blob, validate: validator.New()}
}

/* =========================================================
   Shared lookups
========================================================= */

func (ctrl *AssignmentController) findOwned(c *fiber.Ctx) (*assignModel.AssignmentModel, error) {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	assignmentID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	var assignment assignModel.AssignmentModel
	if err := ctrl.DB.First(&assignment, "assignment_id = ?", assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch assignment")
	}
	if assignment.AssignmentTeacherID != teacherID {
		return nil, fiber.NewError(fiber.StatusForbidden, "You do not own this assignment")
	}
	return &assignment, nil
}

func (ctrl *AssignmentController) deriveCounts(a *assignModel.AssignmentModel, now time.Time) (*assignService.DerivedCounts, error) {
	var roster int64
	if err := ctrl.DB.Model(&classModel.ClassroomStudentModel{}).
		Where("classroom_student_classroom_id = ?", a.AssignmentClassroomID).
		Count(&roster).Error; err != nil {
		return nil, err
	}
	var submitted int64
	if err := ctrl.DB.Model(&subModel.SubmissionModel{}).
		Where("submission_assignment_id = ?", a.AssignmentID).
		Count(&submitted).Error; err != nil {
		return nil, err
	}
	counts := assignService.ComputeCounts(int(roster), int(submitted), a.AssignmentDueAt, now)
	return &counts, nil
}

func parseQuestions(raw *string) (datatypes.JSON, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var probe interface{}
	if err := sonic.Unmarshal([]byte(*raw), &probe); err != nil {
		return nil, err
	}
	return datatypes.JSON([]byte(*raw)), nil
}

func parseDueAt(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}

/* =========================================================
   POST /api/t/assignments  (multipart)
========================================================= */

func (ctrl *AssignmentController) CreateAssignment(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req assignDTO.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	classroomID, err := uuid.Parse(req.AssignmentClassroomID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid classroom id")
	}
	dueAt, err := parseDueAt(req.AssignmentDueAt)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid due date, expected RFC3339")
	}
	questions, err := parseQuestions(req.AssignmentQuestions)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Questions must be valid JSON")
	}

	var classroom classModel.ClassroomModel
	if err := ctrl.DB.First(&classroom, "classroom_id = ?", classroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Classroom not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classroom")
	}
	if classroom.ClassroomTeacherID != teacherID {
		return helpers.JsonError(c, fiber.StatusForbidden, "You do not own this classroom")
	}

	// upload attachments before the insert; roll them back if the insert fails
	var urls, keys []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["attachments"] {
			publicURL, key, _, err := ctrl.Blob.UploadToDir(c.Context(), "assignments", fh)
			if err != nil {
				_, _ = ctrl.Blob.DeleteManyByPublicURL(c.Context(), urls)
				return helpers.JsonError(c, fiber.StatusBadGateway, "Failed to upload attachment")
			}
			urls = append(urls, publicURL)
			keys = append(keys, key)
		}
	}

	assignment := assignModel.AssignmentModel{
		AssignmentTeacherID:      teacherID,
		AssignmentClassroomID:    classroomID,
		AssignmentTitle:          req.AssignmentTitle,
		AssignmentInstructions:   req.AssignmentInstructions,
		AssignmentDueAt:          dueAt,
		AssignmentTotalPoints:    req.AssignmentTotalPoints,
		AssignmentQuestions:      questions,
		AssignmentAttachmentURLs: pq.StringArray(urls),
		AssignmentAttachmentKeys: pq.StringArray(keys),
	}
	if err := ctrl.DB.Create(&assignment).Error; err != nil {
		if deleted, failed := ctrl.Blob.DeleteManyByPublicURL(c.Context(), urls); len(failed) > 0 {
			log.Printf("[ASSIGNMENT] attachment rollback incomplete deleted=%d failed=%d", len(deleted), len(failed))
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create assignment")
	}

	activityService.LogActivity(ctrl.DB, teacherID,
		activityModel.ActivityTypeAssignmentCreated,
		"Created assignment: "+assignment.AssignmentTitle,
		&assignment.AssignmentID,
		map[string]interface{}{"classroom_id": classroomID})

	counts := assignService.ComputeCounts(0, 0, dueAt, time.Now())
	return helpers.JsonCreated(c, "Assignment created successfully",
		assignDTO.NewAssignmentResponse(&assignment, &counts))
}

/* =========================================================
   GET /api/t/assignments?classroom_id=
========================================================= */

func (ctrl *AssignmentController) ListAssignments(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&assignModel.AssignmentModel{}).
		Where("assignment_teacher_id = ?", teacherID)
	if raw := c.Query("classroom_id"); raw != "" {
		classroomID, err := uuid.Parse(raw)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid classroom id")
		}
		q = q.Where("assignment_classroom_id = ?", classroomID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to count assignments")
	}

	var rows []assignModel.AssignmentModel
	if err := q.Order("assignment_due_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignments")
	}

	now := time.Now()
	items := make([]assignDTO.AssignmentResponse, 0, len(rows))
	for i := range rows {
		counts, err := ctrl.deriveCounts(&rows[i], now)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to derive assignment counts")
		}
		items = append(items, assignDTO.NewAssignmentResponse(&rows[i], counts))
	}

	return helpers.JsonList(c, "Assignments fetched successfully", items,
		helpers.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

/* =========================================================
   GET /api/t/assignments/:id
========================================================= */

func (ctrl *AssignmentController) GetAssignment(c *fiber.Ctx) error {
	assignment, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	counts, err := ctrl.deriveCounts(assignment, time.Now())
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to derive assignment counts")
	}
	return helpers.JsonOK(c, "Assignment fetched successfully",
		assignDTO.NewAssignmentResponse(assignment, counts))
}

/* =========================================================
   PATCH /api/t/assignments/:id
========================================================= */

func (ctrl *AssignmentController) UpdateAssignment(c *fiber.Ctx) error {
	assignment, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req assignDTO.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.AssignmentTitle != nil {
		updates["assignment_title"] = *req.AssignmentTitle
	}
	if req.AssignmentInstructions != nil {
		updates["assignment_instructions"] = *req.AssignmentInstructions
	}
	if req.AssignmentDueAt != nil {
		dueAt, err := parseDueAt(*req.AssignmentDueAt)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid due date, expected RFC3339")
		}
		updates["assignment_due_at"] = dueAt
	}
	if req.AssignmentTotalPoints != nil {
		updates["assignment_total_points"] = *req.AssignmentTotalPoints
	}
	if req.AssignmentQuestions != nil {
		questions, err := parseQuestions(req.AssignmentQuestions)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Questions must be valid JSON")
		}
		updates["assignment_questions"] = questions
	}
	if len(updates) == 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(assignment).Updates(updates).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update assignment")
	}
	if err := ctrl.DB.First(assignment, "assignment_id = ?", assignment.AssignmentID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to reload assignment")
	}

	counts, err := ctrl.deriveCounts(assignment, time.Now())
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to derive assignment counts")
	}
	return helpers.JsonUpdated(c, "Assignment updated successfully",
		assignDTO.NewAssignmentResponse(assignment, counts))
}

/* =========================================================
   DELETE /api/t/assignments/:id
   Cascades: submission rows + their attachment objects, the assignment's
   own attachments, and its doubts. Object deletions are best-effort.
========================================================= */

func (ctrl *AssignmentController) DeleteAssignment(c *fiber.Ctx) error {
	assignment, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	// collect submission attachments before the rows go away
	var subs []subModel.SubmissionModel
	if err := ctrl.DB.Where("submission_assignment_id = ?", assignment.AssignmentID).
		Find(&subs).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_assignment_id = ?", assignment.AssignmentID).
			Delete(&subModel.SubmissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Table("doubts").
			Where("doubt_assignment_id = ? AND doubt_deleted_at IS NULL", assignment.AssignmentID).
			Update("doubt_deleted_at", time.Now()).Error; err != nil {
			return err
		}
		return tx.Delete(assignment).Error
	})
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete assignment")
	}

	// best-effort file cleanup after the rows are gone
	var urls []string
	urls = append(urls, assignment.AssignmentAttachmentURLs...)
	for i := range subs {
		urls = append(urls, subs[i].SubmissionAttachmentURLs...)
	}
	if len(urls) > 0 {
		if deleted, failed := ctrl.Blob.DeleteManyByPublicURL(c.Context(), urls); len(failed) > 0 {
			log.Printf("[ASSIGNMENT] cascade cleanup incomplete assignment=%s deleted=%d failed=%d",
				assignment.AssignmentID, len(deleted), len(failed))
		}
	}

	return helpers.JsonDeleted(c, "Assignment deleted successfully", fiber.Map{
		"assignment_id": assignment.AssignmentID,
	})
}
