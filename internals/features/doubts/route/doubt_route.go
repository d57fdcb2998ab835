package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	doubtController "classku_backend/internals/features/doubts/controller"
)

// DoubtTeacherRoutes: answer, moderate and delete on owned assignments.
func DoubtTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := doubtController.NewDoubtController(db)

	g := r.Group("/doubts")
	g.Patch("/:id/answer", ctrl.AnswerDoubt)
	g.Patch("/:id/status", ctrl.UpdateStatus)
	g.Delete("/:id", ctrl.DeleteDoubt)
}

// DoubtStudentRoutes: ask and vote.
func DoubtStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := doubtController.NewDoubtController(db)

	g := r.Group("/doubts")
	g.Post("/", ctrl.CreateDoubt)
	g.Post("/:id/vote", ctrl.VoteDoubt)
}

// DoubtUserRoutes: per-assignment listing with role-based visibility.
func DoubtUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := doubtController.NewDoubtController(db)

	r.Get("/assignments/:id/doubts", ctrl.ListForAssignment)
}
