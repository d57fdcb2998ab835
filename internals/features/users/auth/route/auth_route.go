package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "classku_backend/internals/features/users/auth/service"
	authMW "classku_backend/internals/middlewares/auth"
	middlewares "classku_backend/internals/middlewares"
)

// AuthRoutes mounts the public auth endpoints plus the token-protected ones.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	g := app.Group("/api/auth")

	g.Post("/register", middlewares.RegisterRateLimiter(), func(c *fiber.Ctx) error {
		return authService.Register(db, c)
	})
	g.Post("/login", middlewares.LoginRateLimiter(), func(c *fiber.Ctx) error {
		return authService.Login(db, c)
	})
	g.Post("/refresh-token", func(c *fiber.Ctx) error {
		return authService.RefreshToken(db, c)
	})

	protected := g.Group("", authMW.AuthMiddleware(db))
	protected.Post("/logout", func(c *fiber.Ctx) error {
		return authService.Logout(db, c)
	})
	protected.Get("/me", func(c *fiber.Ctx) error {
		return authService.Me(db, c)
	})
}
