package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignController "classku_backend/internals/features/assignments/assignments/controller"
	helperOSS "classku_backend/internals/helpers/oss"
)

// AssignmentTeacherRoutes: assignment lifecycle for the owning teacher.
func AssignmentTeacherRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := assignController.NewAssignmentController(db, blob)

	g := r.Group("/assignments")
	g.Post("/", ctrl.CreateAssignment)
	g.Get("/", ctrl.ListAssignments)
	g.Get("/:id", ctrl.GetAssignment)
	g.Patch("/:id", ctrl.UpdateAssignment)
	g.Delete("/:id", ctrl.DeleteAssignment)
}
