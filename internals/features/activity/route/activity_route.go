package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityService "classku_backend/internals/features/activity/service"
	helpers "classku_backend/internals/helpers"
)

// ActivityTeacherRoutes: standalone activity feed (the dashboard embeds the
// same rows, this endpoint pages through the full history).
func ActivityTeacherRoutes(r fiber.Router, db *gorm.DB) {
	r.Get("/activities", func(c *fiber.Ctx) error {
		teacherID, err := helpers.GetUserIDFromToken(c)
		if err != nil {
			return helpers.FromFiberError(c, err)
		}
		paging := helpers.ResolvePaging(c, 20, 100)

		rows, err := activityService.RecentForTeacher(db, teacherID, paging.Limit)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch activities")
		}
		return helpers.JsonOK(c, "Activities fetched successfully", rows)
	})
}
