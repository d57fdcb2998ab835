// file: internals/features/doubts/controller/doubt_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "classku_backend/internals/features/activity/model"
	activityService "classku_backend/internals/features/activity/service"
	assignModel "classku_backend/internals/features/assignments/assignments/model"
	classDTO "classku_backend/internals/features/classrooms/dto"
	classModel "classku_backend/internals/features/classrooms/model"
	classService "classku_backend/internals/features/classrooms/service"
	doubtDTO "classku_backend/internals/features/doubts/dto"
	doubtModel "classku_backend/internals/features/doubts/model"
	helpers "classku_backend/internals/helpers"
)

type DoubtController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewDoubtController(db *gorm.DB) *DoubtController {
	return &DoubtController{DB: db, validate: validator.New()}
}

/* =========================================================
   Shared lookups
========================================================= */

func (ctrl *DoubtController) assignmentOf(c *fiber.Ctx, assignmentID uuid.UUID) (*assignModel.AssignmentModel, error) {
	var assignment assignModel.AssignmentModel
	if err := ctrl.DB.First(&assignment, "assignment_id = ?", assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch assignment")
	}
	return &assignment, nil
}

func (ctrl *DoubtController) findDoubtOwnedByTeacher(c *fiber.Ctx) (*doubtModel.DoubtModel, *assignModel.AssignmentModel, error) {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return nil, nil, err
	}
	doubtID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, nil, err
	}

	var doubt doubtModel.DoubtModel
	if err := ctrl.DB.First(&doubt, "doubt_id = ?", doubtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Doubt not found")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch doubt")
	}
	assignment, err := ctrl.assignmentOf(c, doubt.DoubtAssignmentID)
	if err != nil {
		return nil, nil, err
	}
	if assignment.AssignmentTeacherID != teacherID {
		return nil, nil, fiber.NewError(fiber.StatusForbidden, "You do not own this assignment")
	}
	return &doubt, assignment, nil
}

/* =========================================================
   POST /api/s/doubts
========================================================= */

func (ctrl *DoubtController) CreateDoubt(c *fiber.Ctx) error {
	studentID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req doubtDTO.CreateDoubtRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}
	assignmentID, err := uuid.Parse(req.DoubtAssignmentID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	assignment, err := ctrl.assignmentOf(c, assignmentID)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	enrolled, err := classService.IsEnrolled(ctrl.DB, assignment.AssignmentClassroomID, studentID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to check enrollment")
	}
	if !enrolled {
		return helpers.JsonError(c, fiber.StatusForbidden, "You are not enrolled in this classroom")
	}

	// classroom can switch student questions off
	var classroom classModel.ClassroomModel
	if err := ctrl.DB.First(&classroom, "classroom_id = ?", assignment.AssignmentClassroomID).Error; err == nil {
		if !classDTO.DecodeSettings(classroom.ClassroomSettings).AllowStudentDoubts {
			return helpers.JsonError(c, fiber.StatusForbidden, "Questions are disabled for this classroom")
		}
	}

	doubt := doubtModel.DoubtModel{
		DoubtAssignmentID: assignmentID,
		DoubtStudentID:    studentID,
		DoubtQuestion:     req.DoubtQuestion,
		DoubtIsPublic:     req.DoubtIsPublic,
		DoubtStatus:       doubtModel.DoubtStatusPending,
	}
	if err := ctrl.DB.Create(&doubt).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create doubt")
	}

	return helpers.JsonCreated(c, "Doubt posted successfully", doubt)
}

/* =========================================================
   GET /api/u/assignments/:id/doubts
   Teacher (owner) sees everything; students see their own plus public ones.
========================================================= */

func (ctrl *DoubtController) ListForAssignment(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	assignmentID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	assignment, err := ctrl.assignmentOf(c, assignmentID)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	q := ctrl.DB.Where("doubt_assignment_id = ?", assignmentID)
	if assignment.AssignmentTeacherID != userID {
		enrolled, err := classService.IsEnrolled(ctrl.DB, assignment.AssignmentClassroomID, userID)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to check enrollment")
		}
		if !enrolled {
			return helpers.JsonError(c, fiber.StatusForbidden, "You do not have access to this assignment")
		}
		q = q.Where("doubt_student_id = ? OR doubt_is_public = TRUE", userID)
	}

	var rows []doubtModel.DoubtModel
	if err := q.Order("doubt_created_at DESC").Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch doubts")
	}
	return helpers.JsonOK(c, "Doubts fetched successfully", rows)
}

/* =========================================================
   PATCH /api/t/doubts/:id/answer
========================================================= */

func (ctrl *DoubtController) AnswerDoubt(c *fiber.Ctx) error {
	doubt, assignment, err := ctrl.findDoubtOwnedByTeacher(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req doubtDTO.AnswerDoubtRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	now := time.Now()
	teacherID := assignment.AssignmentTeacherID
	updates := map[string]interface{}{
		"doubt_answer":      req.DoubtAnswer,
		"doubt_answered_by": teacherID,
		"doubt_answered_at": now,
		"doubt_status":      doubtModel.DoubtStatusAnswered,
	}
	if err := ctrl.DB.Model(doubt).Updates(updates).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to answer doubt")
	}
	if err := ctrl.DB.First(doubt, "doubt_id = ?", doubt.DoubtID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to reload doubt")
	}

	activityService.LogActivity(ctrl.DB, teacherID,
		activityModel.ActivityTypeDoubtAnswered,
		"Answered a question on: "+assignment.AssignmentTitle,
		&doubt.DoubtID,
		map[string]interface{}{"assignment_id": assignment.AssignmentID})

	return helpers.JsonUpdated(c, "Doubt answered successfully", doubt)
}

/* =========================================================
   PATCH /api/t/doubts/:id/status
========================================================= */

func (ctrl *DoubtController) UpdateStatus(c *fiber.Ctx) error {
	doubt, _, err := ctrl.findDoubtOwnedByTeacher(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req doubtDTO.UpdateDoubtStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	if err := ctrl.DB.Model(doubt).Update("doubt_status", req.DoubtStatus).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update doubt status")
	}
	return helpers.JsonUpdated(c, "Doubt status updated successfully", fiber.Map{
		"doubt_id":     doubt.DoubtID,
		"doubt_status": req.DoubtStatus,
	})
}

/* =========================================================
   POST /api/s/doubts/:id/vote
========================================================= */

func (ctrl *DoubtController) VoteDoubt(c *fiber.Ctx) error {
	studentID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	doubtID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req doubtDTO.VoteDoubtRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var doubt doubtModel.DoubtModel
	if err := ctrl.DB.First(&doubt, "doubt_id = ?", doubtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Doubt not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch doubt")
	}

	assignment, err := ctrl.assignmentOf(c, doubt.DoubtAssignmentID)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	enrolled, err := classService.IsEnrolled(ctrl.DB, assignment.AssignmentClassroomID, studentID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to check enrollment")
	}
	if !enrolled {
		return helpers.JsonError(c, fiber.StatusForbidden, "You are not enrolled in this classroom")
	}

	column := "doubt_upvotes"
	if req.Direction == "down" {
		column = "doubt_downvotes"
	}
	if err := ctrl.DB.Model(&doubt).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to record vote")
	}
	if err := ctrl.DB.First(&doubt, "doubt_id = ?", doubtID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to reload doubt")
	}

	return helpers.JsonUpdated(c, "Vote recorded successfully", fiber.Map{
		"doubt_id":        doubt.DoubtID,
		"doubt_upvotes":   doubt.DoubtUpvotes,
		"doubt_downvotes": doubt.DoubtDownvotes,
	})
}

/* =========================================================
   DELETE /api/t/doubts/:id
========================================================= */

func (ctrl *DoubtController) DeleteDoubt(c *fiber.Ctx) error {
	doubt, _, err := ctrl.findDoubtOwnedByTeacher(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if err := ctrl.DB.Delete(doubt).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete doubt")
	}
	return helpers.JsonDeleted(c, "Doubt deleted successfully", fiber.Map{
		"doubt_id": doubt.DoubtID,
	})
}
