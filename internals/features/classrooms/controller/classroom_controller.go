// file: internals/features/classrooms/controller/classroom_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "classku_backend/internals/features/classrooms/dto"
	classModel "classku_backend/internals/features/classrooms/model"
	classService "classku_backend/internals/features/classrooms/service"
	helpers "classku_backend/internals/helpers"
)

type ClassroomController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewClassroomController(db *gorm.DB) *ClassroomController {
	return &ClassroomController{DB: db, validate: validator.New()}
}

/* =========================================================
   Shared lookups
========================================================= */

func (ctrl *ClassroomController) codeExists(code string) (bool, error) {
	var count int64
	err := ctrl.DB.Model(&classModel.ClassroomModel{}).
		Where("classroom_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (ctrl *ClassroomController) findOwned(c *fiber.Ctx) (*classModel.ClassroomModel, error) {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	classroomID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	var classroom classModel.ClassroomModel
	if err := ctrl.DB.First(&classroom, "classroom_id = ?", classroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Classroom not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classroom")
	}
	if classroom.ClassroomTeacherID != teacherID {
		return nil, fiber.NewError(fiber.StatusForbidden, "You do not own this classroom")
	}
	return &classroom, nil
}

func (ctrl *ClassroomController) counts(classroomID uuid.UUID) (students, assignments int64, err error) {
	if err = ctrl.DB.Model(&classModel.ClassroomStudentModel{}).
		Where("classroom_student_classroom_id = ?", classroomID).
		Count(&students).Error; err != nil {
		return
	}
	err = ctrl.DB.Table("assignments").
		Where("assignment_classroom_id = ? AND assignment_deleted_at IS NULL", classroomID).
		Count(&assignments).Error
	return
}

/* =========================================================
   POST /api/t/classrooms
========================================================= */

func (ctrl *ClassroomController) CreateClassroom(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req classDTO.CreateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	code, err := classService.GenerateInviteCode(ctrl.codeExists)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to generate classroom code")
	}

	classroom := classModel.ClassroomModel{
		ClassroomTeacherID:   teacherID,
		ClassroomName:        req.ClassroomName,
		ClassroomSubject:     req.ClassroomSubject,
		ClassroomDescription: req.ClassroomDescription,
		ClassroomCode:        code,
		ClassroomSettings:    classDTO.EncodeSettings(classModel.DefaultClassroomSettings()),
	}
	if err := ctrl.DB.Create(&classroom).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create classroom")
	}

	return helpers.JsonCreated(c, "Classroom created successfully",
		classDTO.NewClassroomResponse(&classroom, 0, 0))
}

/* =========================================================
   GET /api/t/classrooms  |  GET /api/s/classrooms
========================================================= */

func (ctrl *ClassroomController) ListClassrooms(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	role, err := helpers.GetUserRoleFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	paging := helpers.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&classModel.ClassroomModel{})
	if role == "teacher" {
		q = q.Where("classroom_teacher_id = ?", userID)
	} else {
		q = q.Where("classroom_id IN (?)",
			ctrl.DB.Model(&classModel.ClassroomStudentModel{}).
				Select("classroom_student_classroom_id").
				Where("classroom_student_student_id = ?", userID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to count classrooms")
	}

	var rows []classModel.ClassroomModel
	if err := q.Order("classroom_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classrooms")
	}

	items := make([]classDTO.ClassroomResponse, 0, len(rows))
	for i := range rows {
		students, assignments, err := ctrl.counts(rows[i].ClassroomID)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classroom counts")
		}
		items = append(items, classDTO.NewClassroomResponse(&rows[i], students, assignments))
	}

	return helpers.JsonList(c, "Classrooms fetched successfully", items,
		helpers.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

/* =========================================================
   GET /api/u/classrooms/:id  (owner teacher or enrolled student)
========================================================= */

func (ctrl *ClassroomController) GetClassroom(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	classroomID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var classroom classModel.ClassroomModel
	if err := ctrl.DB.First(&classroom, "classroom_id = ?", classroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Classroom not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classroom")
	}

	if classroom.ClassroomTeacherID != userID {
		enrolled, err := classService.IsEnrolled(ctrl.DB, classroomID, userID)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to check enrollment")
		}
		if !enrolled {
			return helpers.JsonError(c, fiber.StatusForbidden, "You do not have access to this classroom")
		}
	}

	students, assignments, err := ctrl.counts(classroomID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classroom counts")
	}

	var roster []classDTO.RosterEntry
	if err := ctrl.DB.Table("classroom_students AS cs").
		Select(`u.user_id, u.user_name, u.user_email, u.user_roll_number AS roll_number,
			u.user_stats_average_score AS average_score, cs.classroom_student_joined_at AS joined_at`).
		Joins("JOIN users u ON u.user_id = cs.classroom_student_student_id AND u.user_deleted_at IS NULL").
		Where("cs.classroom_student_classroom_id = ?", classroomID).
		Order("cs.classroom_student_joined_at ASC").
		Scan(&roster).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch roster")
	}

	resp := classDTO.ClassroomDetailResponse{
		ClassroomResponse: classDTO.NewClassroomResponse(&classroom, students, assignments),
		Roster:            roster,
	}
	return helpers.JsonOK(c, "Classroom fetched successfully", resp)
}

/* =========================================================
   PATCH /api/t/classrooms/:id
========================================================= */

func (ctrl *ClassroomController) UpdateClassroom(c *fiber.Ctx) error {
	classroom, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req classDTO.UpdateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.ClassroomName != nil {
		updates["classroom_name"] = *req.ClassroomName
	}
	if req.ClassroomSubject != nil {
		updates["classroom_subject"] = *req.ClassroomSubject
	}
	if req.ClassroomDescription != nil {
		updates["classroom_description"] = *req.ClassroomDescription
	}
	if req.AllowStudentDoubts != nil || req.IsArchived != nil {
		settings := classDTO.DecodeSettings(classroom.ClassroomSettings)
		if req.AllowStudentDoubts != nil {
			settings.AllowStudentDoubts = *req.AllowStudentDoubts
		}
		if req.IsArchived != nil {
			settings.IsArchived = *req.IsArchived
		}
		updates["classroom_settings"] = classDTO.EncodeSettings(settings)
	}
	if len(updates) == 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(classroom).Updates(updates).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update classroom")
	}
	if err := ctrl.DB.First(classroom, "classroom_id = ?", classroom.ClassroomID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to reload classroom")
	}

	students, assignments, err := ctrl.counts(classroom.ClassroomID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classroom counts")
	}
	return helpers.JsonUpdated(c, "Classroom updated successfully",
		classDTO.NewClassroomResponse(classroom, students, assignments))
}

/* =========================================================
   POST /api/t/classrooms/:id/regenerate-code
========================================================= */

func (ctrl *ClassroomController) RegenerateCode(c *fiber.Ctx) error {
	classroom, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	code, err := classService.GenerateInviteCode(ctrl.codeExists)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to generate classroom code")
	}
	if err := ctrl.DB.Model(classroom).Update("classroom_code", code).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update classroom code")
	}

	return helpers.JsonUpdated(c, "Classroom code regenerated successfully", fiber.Map{
		"classroom_id":   classroom.ClassroomID,
		"classroom_code": code,
	})
}

/* =========================================================
   DELETE /api/t/classrooms/:id
========================================================= */

func (ctrl *ClassroomController) DeleteClassroom(c *fiber.Ctx) error {
	classroom, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	students, assignments, err := ctrl.counts(classroom.ClassroomID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classroom counts")
	}
	if students > 0 || assignments > 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest,
			"Cannot delete classroom while it still has students or assignments")
	}

	if err := ctrl.DB.Delete(classroom).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete classroom")
	}
	return helpers.JsonDeleted(c, "Classroom deleted successfully", fiber.Map{
		"classroom_id": classroom.ClassroomID,
	})
}

/* =========================================================
   POST /api/s/classrooms/join
========================================================= */

func (ctrl *ClassroomController) JoinClassroom(c *fiber.Ctx) error {
	studentID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req classDTO.JoinClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	classroom, err := classService.JoinByCode(ctrl.DB, studentID, req.ClassroomCode)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	students, assignments, err := ctrl.counts(classroom.ClassroomID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classroom counts")
	}
	return helpers.JsonOK(c, "Joined classroom successfully",
		classDTO.NewClassroomResponse(classroom, students, assignments))
}

/* =========================================================
   DELETE /api/t/classrooms/:id/students/:student_id
========================================================= */

func (ctrl *ClassroomController) RemoveStudent(c *fiber.Ctx) error {
	classroom, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	studentID, err := helpers.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	if err := classService.RemoveStudent(ctrl.DB, classroom.ClassroomID, studentID); err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonDeleted(c, "Student removed from classroom", fiber.Map{
		"classroom_id": classroom.ClassroomID,
		"student_id":   studentID,
	})
}

/* =========================================================
   GET /api/t/classrooms/:id/stats
========================================================= */

func (ctrl *ClassroomController) ClassroomStats(c *fiber.Ctx) error {
	classroom, err := ctrl.findOwned(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	students, assignments, err := ctrl.counts(classroom.ClassroomID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classroom counts")
	}

	var averages []classDTO.StudentAvg
	if err := ctrl.DB.Table("classroom_students AS cs").
		Select("u.user_id, u.user_name, u.user_stats_average_score AS average_score").
		Joins("JOIN users u ON u.user_id = cs.classroom_student_student_id AND u.user_deleted_at IS NULL").
		Where("cs.classroom_student_classroom_id = ?", classroom.ClassroomID).
		Order("u.user_stats_average_score DESC").
		Scan(&averages).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student averages")
	}

	// submission rate = submissions present / (roster * assignments)
	var submissions int64
	if assignments > 0 && students > 0 {
		if err := ctrl.DB.Table("submissions AS s").
			Joins("JOIN assignments a ON a.assignment_id = s.submission_assignment_id AND a.assignment_deleted_at IS NULL").
			Where("a.assignment_classroom_id = ? AND s.submission_deleted_at IS NULL", classroom.ClassroomID).
			Count(&submissions).Error; err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submission count")
		}
	}
	rate := 0.0
	if expected := students * assignments; expected > 0 {
		rate = float64(submissions) / float64(expected)
	}

	return helpers.JsonOK(c, "Classroom statistics fetched successfully", classDTO.ClassroomStatsResponse{
		ClassroomID:     classroom.ClassroomID,
		StudentCount:    students,
		AssignmentCount: assignments,
		SubmissionRate:  rate,
		StudentAverages: averages,
	})
}
