package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "classku_backend/internals/features/users/user/controller"
	helperOSS "classku_backend/internals/helpers/oss"
)

// UserRoutes: profile endpoints for any authenticated user.
func UserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := userController.NewUserController(db, blob)

	g := r.Group("/profile")
	g.Get("/", ctrl.GetProfile)
	g.Patch("/", ctrl.PatchProfile)
	g.Post("/avatar", ctrl.UploadAvatar)
}
