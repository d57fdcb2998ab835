// file: internals/features/assignments/submissions/controller/submission_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	activityModel "classku_backend/internals/features/activity/model"
	activityService "classku_backend/internals/features/activity/service"
	assignDTO "classku_backend/internals/features/assignments/assignments/dto"
	assignModel "classku_backend/internals/features/assignments/assignments/model"
	subDTO "classku_backend/internals/features/assignments/submissions/dto"
	subModel "classku_backend/internals/features/assignments/submissions/model"
	subService "classku_backend/internals/features/assignments/submissions/service"
	classService "classku_backend/internals/features/classrooms/service"
	statsService "classku_backend/internals/features/users/stats/service"
	helpers "classku_backend/internals/helpers"
	helperOSS "classku_backend/internals/helpers/oss"
)

type SubmissionController struct {
	DB       *gorm.DB
	Blob     helperOSS.BlobService
	validate *validator.Validate
}

func NewSubmissionController(db *gorm.DB, blob helperOSS.BlobService) *SubmissionController {
	return &SubmissionController{DB: db, Blob: blob, validate: validator.New()}
}

/* =========================================================
   POST /api/s/submissions  (multipart)
========================================================= */

func (ctrl *SubmissionController) Submit(c *fiber.Ctx) error {
	studentID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req subDTO.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}
	assignmentID, err := uuid.Parse(req.SubmissionAssignmentID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	var assignment assignModel.AssignmentModel
	if err := ctrl.DB.First(&assignment, "assignment_id = ?", assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignment")
	}

	enrolled, err := classService.IsEnrolled(ctrl.DB, assignment.AssignmentClassroomID, studentID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to check enrollment")
	}
	if !enrolled {
		return helpers.JsonError(c, fiber.StatusForbidden, "You are not enrolled in this classroom")
	}

	var existing int64
	if err := ctrl.DB.Model(&subModel.SubmissionModel{}).
		Where("submission_assignment_id = ? AND submission_student_id = ?", assignmentID, studentID).
		Count(&existing).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing submission")
	}
	if existing > 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "You have already submitted this assignment")
	}

	var urls, keys []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["attachments"] {
			publicURL, key, _, err := ctrl.Blob.UploadToDir(c.Context(), "submissions", fh)
			if err != nil {
				_, _ = ctrl.Blob.DeleteManyByPublicURL(c.Context(), urls)
				return helpers.JsonError(c, fiber.StatusBadGateway, "Failed to upload attachment")
			}
			urls = append(urls, publicURL)
			keys = append(keys, key)
		}
	}

	submission := subModel.SubmissionModel{
		SubmissionAssignmentID:   assignmentID,
		SubmissionStudentID:      studentID,
		SubmissionContent:        req.SubmissionContent,
		SubmissionAttachmentURLs: pq.StringArray(urls),
		SubmissionAttachmentKeys: pq.StringArray(keys),
		SubmissionStatus:         subModel.SubmissionStatusSubmitted,
	}
	if err := ctrl.DB.Create(&submission).Error; err != nil {
		if deleted, failed := ctrl.Blob.DeleteManyByPublicURL(c.Context(), urls); len(failed) > 0 {
			log.Printf("[SUBMISSION] attachment rollback incomplete deleted=%d failed=%d", len(deleted), len(failed))
		}
		// unique index race: another submit won
		return helpers.JsonError(c, fiber.StatusBadRequest, "You have already submitted this assignment")
	}

	if err := statsService.TouchStreak(ctrl.DB, studentID); err != nil {
		log.Printf("[SUBMISSION] streak update failed student=%s err=%v", studentID, err)
	}
	statsService.RecomputeStudentStatsAsync(ctrl.DB, studentID)

	isLate := subService.IsLate(&submission, assignment.AssignmentDueAt)
	return helpers.JsonCreated(c, "Assignment submitted successfully",
		subDTO.NewSubmissionResponse(&submission, isLate))
}

/* =========================================================
   GET /api/t/assignments/:id/submissions
========================================================= */

func (ctrl *SubmissionController) ListForAssignment(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	assignmentID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var assignment assignModel.AssignmentModel
	if err := ctrl.DB.First(&assignment, "assignment_id = ?", assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignment")
	}
	if assignment.AssignmentTeacherID != teacherID {
		return helpers.JsonError(c, fiber.StatusForbidden, "You do not own this assignment")
	}

	var rows []subModel.SubmissionModel
	if err := ctrl.DB.Where("submission_assignment_id = ?", assignmentID).
		Order("submission_submitted_at ASC").
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	// one lookup for all student names
	studentIDs := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		studentIDs = append(studentIDs, rows[i].SubmissionStudentID)
	}
	names := map[uuid.UUID]string{}
	if len(studentIDs) > 0 {
		type nameRow struct {
			UserID   uuid.UUID
			UserName string
		}
		var nameRows []nameRow
		if err := ctrl.DB.Table("users").
			Select("user_id, user_name").
			Where("user_id IN ?", studentIDs).
			Scan(&nameRows).Error; err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student names")
		}
		for _, r := range nameRows {
			names[r.UserID] = r.UserName
		}
	}

	items := make([]subDTO.SubmissionResponse, 0, len(rows))
	for i := range rows {
		item := subDTO.NewSubmissionResponse(&rows[i], subService.IsLate(&rows[i], assignment.AssignmentDueAt))
		if name, ok := names[rows[i].SubmissionStudentID]; ok {
			item.StudentName = &name
		}
		items = append(items, item)
	}

	return helpers.JsonOK(c, "Submissions fetched successfully", items)
}

/* =========================================================
   PATCH /api/t/submissions/:id/grade
========================================================= */

func (ctrl *SubmissionController) Grade(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	submissionID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req subDTO.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var submission subModel.SubmissionModel
	if err := ctrl.DB.First(&submission, "submission_id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submission")
	}

	var assignment assignModel.AssignmentModel
	if err := ctrl.DB.First(&assignment, "assignment_id = ?", submission.SubmissionAssignmentID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignment")
	}
	if assignment.AssignmentTeacherID != teacherID {
		return helpers.JsonError(c, fiber.StatusForbidden, "You do not own this assignment")
	}

	if req.SubmissionScore > assignment.AssignmentTotalPoints {
		return helpers.JsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Score cannot exceed the assignment's total points (%.2f)", assignment.AssignmentTotalPoints))
	}

	// grading touches grading fields only; re-grade is last write wins
	now := time.Now()
	updates := map[string]interface{}{
		"submission_status":    subModel.SubmissionStatusGraded,
		"submission_score":     req.SubmissionScore,
		"submission_graded_at": now,
		"submission_graded_by": teacherID,
	}
	if req.SubmissionFeedback != nil {
		updates["submission_feedback"] = *req.SubmissionFeedback
	}
	if err := ctrl.DB.Model(&submission).Updates(updates).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to grade submission")
	}
	if err := ctrl.DB.First(&submission, "submission_id = ?", submissionID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to reload submission")
	}

	statsService.RecomputeStudentStatsAsync(ctrl.DB, submission.SubmissionStudentID)
	activityService.LogActivity(ctrl.DB, teacherID,
		activityModel.ActivityTypeSubmissionGraded,
		"Graded submission for: "+assignment.AssignmentTitle,
		&submission.SubmissionID,
		map[string]interface{}{
			"assignment_id": assignment.AssignmentID,
			"student_id":    submission.SubmissionStudentID,
			"score":         req.SubmissionScore,
		})

	isLate := subService.IsLate(&submission, assignment.AssignmentDueAt)
	return helpers.JsonUpdated(c, "Submission graded successfully",
		subDTO.NewSubmissionResponse(&submission, isLate))
}

/* =========================================================
   GET /api/s/assignments
   Student view across enrolled classrooms with read-time status.
========================================================= */

func (ctrl *SubmissionController) StudentAssignments(c *fiber.Ctx) error {
	studentID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&assignModel.AssignmentModel{}).
		Where("assignment_classroom_id IN (?)",
			ctrl.DB.Table("classroom_students").
				Select("classroom_student_classroom_id").
				Where("classroom_student_student_id = ?", studentID))
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
	if err := q.Order("assignment_due_at ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignments")
	}

	// the student's own submissions for the page, keyed by assignment
	assignmentIDs := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		assignmentIDs = append(assignmentIDs, rows[i].AssignmentID)
	}
	subsByAssignment := map[uuid.UUID]*subModel.SubmissionModel{}
	if len(assignmentIDs) > 0 {
		var subs []subModel.SubmissionModel
		if err := ctrl.DB.Where("submission_student_id = ? AND submission_assignment_id IN ?",
			studentID, assignmentIDs).
			Find(&subs).Error; err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
		}
		for i := range subs {
			subsByAssignment[subs[i].SubmissionAssignmentID] = &subs[i]
		}
	}

	now := time.Now()
	items := make([]assignDTO.StudentAssignmentItem, 0, len(rows))
	for i := range rows {
		sub := subsByAssignment[rows[i].AssignmentID]
		item := assignDTO.StudentAssignmentItem{
			AssignmentResponse: assignDTO.NewAssignmentResponse(&rows[i], nil),
			SubmissionStatus:   subService.StudentAssignmentStatus(sub, rows[i].AssignmentDueAt, now),
		}
		if sub != nil {
			item.SubmissionID = &sub.SubmissionID
			item.SubmissionScore = sub.SubmissionScore
		}
		items = append(items, item)
	}

	return helpers.JsonList(c, "Assignments fetched successfully", items,
		helpers.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

/* =========================================================
   GET /api/s/submissions/:id
========================================================= */

func (ctrl *SubmissionController) GetOwnSubmission(c *fiber.Ctx) error {
	studentID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	submissionID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var submission subModel.SubmissionModel
	if err := ctrl.DB.First(&submission, "submission_id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submission")
	}
	if submission.SubmissionStudentID != studentID {
		return helpers.JsonError(c, fiber.StatusForbidden, "This submission is not yours")
	}

	var assignment assignModel.AssignmentModel
	if err := ctrl.DB.First(&assignment, "assignment_id = ?", submission.SubmissionAssignmentID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignment")
	}

	isLate := subService.IsLate(&submission, assignment.AssignmentDueAt)
	return helpers.JsonOK(c, "Submission fetched successfully",
		subDTO.NewSubmissionResponse(&submission, isLate))
}
