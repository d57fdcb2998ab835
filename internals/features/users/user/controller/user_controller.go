// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"classku_backend/internals/features/users/user/dto"
	userModel "classku_backend/internals/features/users/user/model"
	helpers "classku_backend/internals/helpers"
	helperOSS "classku_backend/internals/helpers/oss"
)

type UserController struct {
	DB       *gorm.DB
	Blob     helperOSS.BlobService
	validate *validator.Validate
}

func NewUserController(db *gorm.DB, blob helperOSS.BlobService) *UserController {
	return &UserController{
		DB:       db,
		Blob:     blob,
		validate: validator.New(),
	}
}

/* =========================================================
   GET /api/u/profile
========================================================= */

func (ctrl *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}

	return helpers.JsonOK(c, "Profile fetched successfully", dto.NewProfileResponse(&user))
}

/* =========================================================
   PATCH /api/u/profile
========================================================= */

func (ctrl *UserController) PatchProfile(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req dto.PatchProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	updates := req.ToUpdates()
	if len(updates) == 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}

	// role-specific fields only apply to that role; silently drop the rest
	if user.IsTeacher() {
		delete(updates, "user_roll_number")
	} else {
		delete(updates, "user_subject")
		delete(updates, "user_grade_level")
	}
	if len(updates) == 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(&user).Updates(updates).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to reload profile")
	}

	return helpers.JsonUpdated(c, "Profile updated successfully", dto.NewProfileResponse(&user))
}

/* =========================================================
   POST /api/u/profile/avatar  (multipart, field: avatar|file)
========================================================= */

func (ctrl *UserController) UploadAvatar(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	fh := helperOSS.TryGetFormFile(c, "avatar", "file")
	if fh == nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Avatar file is required")
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}

	publicURL, objectKey, _, err := ctrl.Blob.UploadToDir(c.Context(), "avatars", fh)
	if err != nil {
		log.Printf("[USER] avatar upload failed user=%s err=%v", userID, err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Failed to upload avatar")
	}

	oldURL := user.UserAvatarURL

	updates := map[string]interface{}{
		"user_avatar_url":        publicURL,
		"user_avatar_object_key": objectKey,
	}
	if err := ctrl.DB.Model(&user).Updates(updates).Error; err != nil {
		// roll back the fresh object so we don't leak storage
		_ = ctrl.Blob.DeleteByPublicURL(c.Context(), publicURL)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update avatar")
	}

	// best-effort removal of the previous object
	if oldURL != nil && *oldURL != "" && *oldURL != publicURL {
		if err := ctrl.Blob.DeleteByPublicURL(c.Context(), *oldURL); err != nil {
			log.Printf("[USER] old avatar cleanup failed user=%s err=%v", userID, err)
		}
	}

	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to reload profile")
	}

	return helpers.JsonUpdated(c, "Avatar updated successfully", dto.NewProfileResponse(&user))
}
