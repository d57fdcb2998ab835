package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	statsService "classku_backend/internals/features/users/stats/service"
	authMW "classku_backend/internals/middlewares/auth"
)

// StatsUserRoutes: any authenticated user
func StatsUserRoutes(r fiber.Router, db *gorm.DB) {
	r.Get("/leaderboard", func(c *fiber.Ctx) error {
		return statsService.Leaderboard(db, c)
	})
}

// StatsStudentRoutes: student-only recompute
func StatsStudentRoutes(r fiber.Router, db *gorm.DB) {
	g := r.Group("/stats", authMW.OnlyStudent("statistics"))
	g.Post("/recompute", func(c *fiber.Ctx) error {
		return statsService.RecomputeOwnStats(db, c)
	})
}
