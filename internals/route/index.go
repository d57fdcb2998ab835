// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityRoute "classku_backend/internals/features/activity/route"
	assistantService "classku_backend/internals/features/assistant/service"
	assistantRoute "classku_backend/internals/features/assistant/route"
	assignRoute "classku_backend/internals/features/assignments/assignments/route"
	subRoute "classku_backend/internals/features/assignments/submissions/route"
	classRoute "classku_backend/internals/features/classrooms/route"
	dashRoute "classku_backend/internals/features/dashboard/route"
	doubtRoute "classku_backend/internals/features/doubts/route"
	materialRoute "classku_backend/internals/features/materials/route"
	authRoute "classku_backend/internals/features/users/auth/route"
	statsRoute "classku_backend/internals/features/users/stats/route"
	userRoute "classku_backend/internals/features/users/user/route"
	helperOSS "classku_backend/internals/helpers/oss"
	authMW "classku_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes wires every feature under three protected groups:
// /api/u (any authenticated user), /api/t (teachers), /api/s (students).
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	blob, err := helperOSS.NewOSSBlobServiceFromEnv("uploads/")
	if err != nil {
		log.Printf("[WARN] object storage not configured: %v", err)
	}
	var blobSvc helperOSS.BlobService
	if blob != nil {
		blobSvc = blob
	}

	ai := assistantService.NewClientFromEnv()
	if !ai.Enabled() {
		log.Println("[WARN] assistant service not configured, AI endpoints will degrade")
	}

	// ===================== PUBLIC =====================
	authRoute.AuthRoutes(app, db)

	// ===================== ANY AUTHENTICATED USER =====================
	user := app.Group("/api/u", authMW.AuthMiddleware(db))
	userRoute.UserRoutes(user, db, blobSvc)
	statsRoute.StatsUserRoutes(user, db)
	classRoute.ClassroomUserRoutes(user, db)
	doubtRoute.DoubtUserRoutes(user, db)
	materialRoute.MaterialUserRoutes(user, db, blobSvc, ai)
	assistantRoute.AssistantUserRoutes(user, db, ai)

	// ===================== TEACHER =====================
	teacher := app.Group("/api/t",
		authMW.AuthMiddleware(db),
		authMW.OnlyTeacher("teacher workspace"))
	classRoute.ClassroomTeacherRoutes(teacher, db)
	assignRoute.AssignmentTeacherRoutes(teacher, db, blobSvc)
	subRoute.SubmissionTeacherRoutes(teacher, db, blobSvc)
	doubtRoute.DoubtTeacherRoutes(teacher, db)
	materialRoute.MaterialTeacherRoutes(teacher, db, blobSvc, ai)
	assistantRoute.AssistantTeacherRoutes(teacher, db, ai)
	dashRoute.DashboardTeacherRoutes(teacher, db)
	activityRoute.ActivityTeacherRoutes(teacher, db)

	// ===================== STUDENT =====================
	student := app.Group("/api/s",
		authMW.AuthMiddleware(db),
		authMW.OnlyStudent("student workspace"))
	classRoute.ClassroomStudentRoutes(student, db)
	subRoute.SubmissionStudentRoutes(student, db, blobSvc)
	doubtRoute.DoubtStudentRoutes(student, db)
	materialRoute.MaterialStudentRoutes(student, db, blobSvc, ai)
	statsRoute.StatsStudentRoutes(student, db)
	dashRoute.DashboardStudentRoutes(student, db)
}
