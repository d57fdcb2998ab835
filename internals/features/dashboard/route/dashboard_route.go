package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashController "classku_backend/internals/features/dashboard/controller"
)

// DashboardTeacherRoutes mounts the aggregated teacher view.
func DashboardTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := dashController.NewDashboardController(db)
	r.Get("/dashboard", ctrl.TeacherDashboard)
}

// DashboardStudentRoutes mounts the aggregated student view.
func DashboardStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := dashController.NewDashboardController(db)
	r.Get("/dashboard", ctrl.StudentDashboard)
}
