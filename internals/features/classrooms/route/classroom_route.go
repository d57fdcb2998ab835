package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "classku_backend/internals/features/classrooms/controller"
)

// ClassroomTeacherRoutes: classroom lifecycle, owner-only operations.
func ClassroomTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassroomController(db)

	g := r.Group("/classrooms")
	g.Post("/", ctrl.CreateClassroom)
	g.Get("/", ctrl.ListClassrooms)
	g.Patch("/:id", ctrl.UpdateClassroom)
	g.Delete("/:id", ctrl.DeleteClassroom)
	g.Post("/:id/regenerate-code", ctrl.RegenerateCode)
	g.Delete("/:id/students/:student_id", ctrl.RemoveStudent)
	g.Get("/:id/stats", ctrl.ClassroomStats)
}

// ClassroomStudentRoutes: join + enrolled listing.
func ClassroomStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassroomController(db)

	g := r.Group("/classrooms")
	g.Post("/join", ctrl.JoinClassroom)
	g.Get("/", ctrl.ListClassrooms)
}

// ClassroomUserRoutes: detail available to owner teacher or enrolled student.
func ClassroomUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassroomController(db)

	r.Get("/classrooms/:id", ctrl.GetClassroom)
}
