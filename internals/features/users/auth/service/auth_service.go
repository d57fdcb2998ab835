// internals/features/users/auth/service/auth_service.go
package service

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "classku_backend/internals/features/users/auth/dto"
	authModel "classku_backend/internals/features/users/auth/model"
	userModel "classku_backend/internals/features/users/user/model"
	helpers "classku_backend/internals/helpers"
)

var validate = validator.New()

/* ==========================
   REGISTER
========================== */

// POST /api/auth/register
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.UserEmail = strings.ToLower(strings.TrimSpace(req.UserEmail))
	req.UserName = strings.TrimSpace(req.UserName)

	if err := validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	usr := req.ToModel(passwordHash)
	if err := db.Create(&usr).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Email already registered")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helpers.JsonCreated(c, "Registration successful", authDTO.NewUserResponse(&usr))
}

/* ==========================
   LOGIN
========================== */

// POST /api/auth/login
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.UserEmail = strings.ToLower(strings.TrimSpace(req.UserEmail))

	if err := validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var usr userModel.UserModel
	if err := db.Where("user_email = ?", req.UserEmail).First(&usr).Error; err != nil {
		// same message for unknown email and bad password
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !usr.UserIsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account deactivated")
	}
	if !CheckPassword(usr.UserPassword, req.Password) {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	access, refresh, err := issueTokenPair(db, c, usr)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	helpers.SetAuthCookies(c, access, refresh, accessTTLDefault, refreshTTLDefault)

	return helpers.JsonOK(c, "Login successful", authDTO.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         authDTO.NewUserResponse(&usr),
	})
}

/* ==========================
   LOGOUT
========================== */

// POST /api/auth/logout
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw := helpers.GetRawAccessToken(c)
	if raw != "" {
		bl := authModel.TokenBlacklistModel{
			Token:     raw,
			ExpiredAt: time.Now().Add(accessTTLDefault),
		}
		if err := db.Create(&bl).Error; err != nil {
			// duplicate blacklist entries are fine; anything else is logged
			if !strings.Contains(strings.ToLower(err.Error()), "unique") {
				log.Printf("[logout] blacklist insert failed: %v", err)
			}
		}
	}

	if refresh := helpers.GetRefreshTokenFromCookie(c); refresh != "" {
		if secret, err := getRefreshSecret(); err == nil {
			if err := deleteRefreshTokenByHash(db, refresh, secret); err != nil {
				log.Printf("[logout] refresh delete failed: %v", err)
			}
		}
	}

	helpers.ClearAuthCookies(c)
	return helpers.JsonOK(c, "Logged out", nil)
}

/* ==========================
   ME
========================== */

// GET /api/auth/me
func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var usr userModel.UserModel
	if err := db.Where("user_id = ?", userID).First(&usr).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helpers.JsonOK(c, "OK", authDTO.NewUserResponse(&usr))
}
