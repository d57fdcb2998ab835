// file: internals/features/dashboard/controller/dashboard_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityService "classku_backend/internals/features/activity/service"
	assignModel "classku_backend/internals/features/assignments/assignments/model"
	subModel "classku_backend/internals/features/assignments/submissions/model"
	classModel "classku_backend/internals/features/classrooms/model"
	userModel "classku_backend/internals/features/users/user/model"
	helpers "classku_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

/* =========================================================
   GET /api/t/dashboard
========================================================= */

func (ctrl *DashboardController) TeacherDashboard(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var classroomCount int64
	if err := ctrl.DB.Model(&classModel.ClassroomModel{}).
		Where("classroom_teacher_id = ?", teacherID).
		Count(&classroomCount).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to count classrooms")
	}

	// distinct students across the teacher's classrooms
	var studentCount int64
	if err := ctrl.DB.Table("classroom_students AS cs").
		Joins("JOIN classrooms c ON c.classroom_id = cs.classroom_student_classroom_id AND c.classroom_deleted_at IS NULL").
		Where("c.classroom_teacher_id = ?", teacherID).
		Distinct("cs.classroom_student_student_id").
		Count(&studentCount).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	var assignmentCount int64
	if err := ctrl.DB.Model(&assignModel.AssignmentModel{}).
		Where("assignment_teacher_id = ?", teacherID).
		Count(&assignmentCount).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to count assignments")
	}

	var pendingGrading int64
	if err := ctrl.DB.Table("submissions AS s").
		Joins("JOIN assignments a ON a.assignment_id = s.submission_assignment_id AND a.assignment_deleted_at IS NULL").
		Where("a.assignment_teacher_id = ? AND s.submission_status = ? AND s.submission_deleted_at IS NULL",
			teacherID, subModel.SubmissionStatusSubmitted).
		Count(&pendingGrading).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to count pending submissions")
	}

	recent, err := activityService.RecentForTeacher(ctrl.DB, teacherID, 10)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch recent activity")
	}

	return helpers.JsonOK(c, "Dashboard fetched successfully", fiber.Map{
		"classroom_count":       classroomCount,
		"student_count":         studentCount,
		"assignment_count":      assignmentCount,
		"pending_grading_count": pendingGrading,
		"recent_activities":     recent,
	})
}

/* =========================================================
   GET /api/s/dashboard
========================================================= */

type recentGrade struct {
	SubmissionID    uuid.UUID  `json:"submission_id"`
	AssignmentTitle string     `json:"assignment_title"`
	Score           *float64   `json:"score"`
	TotalPoints     float64    `json:"total_points"`
	GradedAt        *time.Time `json:"graded_at"`
}

func (ctrl *DashboardController) StudentDashboard(c *fiber.Ctx) error {
	studentID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var student userModel.UserModel
	if err := ctrl.DB.First(&student, "user_id = ?", studentID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}

	enrolledIDs := ctrl.DB.Table("classroom_students").
		Select("classroom_student_classroom_id").
		Where("classroom_student_student_id = ?", studentID)

	var classrooms []classModel.ClassroomModel
	if err := ctrl.DB.Where("classroom_id IN (?)", enrolledIDs).
		Order("classroom_created_at DESC").
		Find(&classrooms).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classrooms")
	}

	now := time.Now()
	submittedIDs := ctrl.DB.Table("submissions").
		Select("submission_assignment_id").
		Where("submission_student_id = ? AND submission_deleted_at IS NULL", studentID)

	var upcoming []assignModel.AssignmentModel
	if err := ctrl.DB.Where("assignment_classroom_id IN (?) AND assignment_due_at > ? AND assignment_id NOT IN (?)",
		enrolledIDs, now, submittedIDs).
		Order("assignment_due_at ASC").
		Limit(10).
		Find(&upcoming).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch upcoming assignments")
	}

	var overdue []assignModel.AssignmentModel
	if err := ctrl.DB.Where("assignment_classroom_id IN (?) AND assignment_due_at <= ? AND assignment_id NOT IN (?)",
		enrolledIDs, now, submittedIDs).
		Order("assignment_due_at DESC").
		Limit(10).
		Find(&overdue).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch overdue assignments")
	}

	var grades []recentGrade
	if err := ctrl.DB.Table("submissions AS s").
		Select(`s.submission_id, a.assignment_title, s.submission_score AS score,
			a.assignment_total_points AS total_points, s.submission_graded_at AS graded_at`).
		Joins("JOIN assignments a ON a.assignment_id = s.submission_assignment_id AND a.assignment_deleted_at IS NULL").
		Where("s.submission_student_id = ? AND s.submission_status = ? AND s.submission_deleted_at IS NULL",
			studentID, subModel.SubmissionStatusGraded).
		Order("s.submission_graded_at DESC").
		Limit(5).
		Scan(&grades).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch recent grades")
	}

	return helpers.JsonOK(c, "Dashboard fetched successfully", fiber.Map{
		"classrooms":           classrooms,
		"upcoming_assignments": upcoming,
		"overdue_assignments":  overdue,
		"recent_grades":        grades,
		"stats": fiber.Map{
			"completed_assignments": student.UserStatsCompletedAssignments,
			"average_score":         student.UserStatsAverageScore,
			"total_points":          student.UserStatsTotalPoints,
			"rank":                  student.UserStatsRank,
			"streak_days":           student.UserStreakDays,
			"badges":                []string(student.UserBadges),
		},
	})
}
