// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"classku_backend/internals/configs"
	authModel "classku_backend/internals/features/users/auth/model"
	userModel "classku_backend/internals/features/users/user/model"
	helpers "classku_backend/internals/helpers"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

/* ==========================
   Claims
========================== */

func buildAccessClaims(usr userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"id":        usr.UserID.String(),
		"user_name": usr.UserName,
		"role":      usr.UserRole,
		"typ":       "access",
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

// issueTokenPair signs an access and a refresh token and stores the refresh
// hash server-side so it can be rotated/revoked.
func issueTokenPair(db *gorm.DB, c *fiber.Ctx, usr userModel.UserModel) (access, refresh string, err error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return "", "", err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", "", err
	}
	now := nowUTC()

	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(usr, now)).SignedString([]byte(jwtSecret))
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(usr.UserID, now)).SignedString([]byte(refreshSecret))
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	rt := authModel.RefreshTokenModel{
		UserID:    usr.UserID,
		TokenHash: computeRefreshHash(refresh, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}
	if err := db.Create(&rt).Error; err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Failed to store refresh token")
	}
	return access, refresh, nil
}

func deleteRefreshTokenByHash(db *gorm.DB, token, secret string) error {
	h := computeRefreshHash(token, secret)
	return db.Where("token_hash = ?", h).Delete(&authModel.RefreshTokenModel{}).Error
}

/* ==========================
   REFRESH TOKEN
========================== */

// POST /api/auth/refresh-token
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := helpers.GetRefreshTokenFromCookie(c)
	if refreshCookie == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// the hash must still be known server-side
	h := computeRefreshHash(refreshCookie, refreshSecret)
	var exists bool
	if err := db.Raw(`SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE token_hash = ? AND expires_at > now() AND revoked_at IS NULL)`, h).
		Scan(&exists).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !exists {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token unknown")
	}

	var usr userModel.UserModel
	if err := db.Where("user_id = ?", userID).First(&usr).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !usr.UserIsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account deactivated")
	}

	// ROTATE: drop the old token before issuing a new pair
	if err := deleteRefreshTokenByHash(db, refreshCookie, refreshSecret); err != nil {
		log.Printf("[refresh] delete old hash failed: %v", err)
	}

	access, refresh, err := issueTokenPair(db, c, usr)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	helpers.SetAuthCookies(c, access, refresh, accessTTLDefault, refreshTTLDefault)

	return helpers.JsonOK(c, "Token refreshed", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}
