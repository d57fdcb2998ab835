package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assistantService "classku_backend/internals/features/assistant/service"
	materialController "classku_backend/internals/features/materials/controller"
	helperOSS "classku_backend/internals/helpers/oss"
)

// MaterialTeacherRoutes: upload, edit, summarize, delete.
func MaterialTeacherRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService, ai *assistantService.Client) {
	ctrl := materialController.NewMaterialController(db, blob, ai)

	g := r.Group("/materials")
	g.Post("/", ctrl.UploadMaterial)
	g.Get("/", ctrl.ListMaterials)
	g.Patch("/:id", ctrl.UpdateMaterial)
	g.Post("/:id/summary", ctrl.GenerateSummary)
	g.Delete("/:id", ctrl.DeleteMaterial)
}

// MaterialStudentRoutes: classroom-scoped listing + download tracking.
func MaterialStudentRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService, ai *assistantService.Client) {
	ctrl := materialController.NewMaterialController(db, blob, ai)

	g := r.Group("/materials")
	g.Get("/", ctrl.ListMaterials)
	g.Post("/:id/download", ctrl.TrackDownload)
}

// MaterialUserRoutes: detail with per-role visibility and view tracking.
func MaterialUserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService, ai *assistantService.Client) {
	ctrl := materialController.NewMaterialController(db, blob, ai)

	r.Get("/materials/:id", ctrl.GetMaterial)
}
