package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subController "classku_backend/internals/features/assignments/submissions/controller"
	helperOSS "classku_backend/internals/helpers/oss"
)

// SubmissionTeacherRoutes: grading surface for the owning teacher.
func SubmissionTeacherRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := subController.NewSubmissionController(db, blob)

	r.Get("/assignments/:id/submissions", ctrl.ListForAssignment)
	r.Patch("/submissions/:id/grade", ctrl.Grade)
}

// SubmissionStudentRoutes: submission + assignment views for students.
func SubmissionStudentRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := subController.NewSubmissionController(db, blob)

	r.Get("/assignments", ctrl.StudentAssignments)
	r.Post("/submissions", ctrl.Submit)
	r.Get("/submissions/:id", ctrl.GetOwnSubmission)
}
