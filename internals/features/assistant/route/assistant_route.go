package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assistantController "classku_backend/internals/features/assistant/controller"
	assistantService "classku_backend/internals/features/assistant/service"
	middlewares "classku_backend/internals/middlewares"
)

// AssistantUserRoutes: chat/summarize/extract for any authenticated user.
func AssistantUserRoutes(r fiber.Router, db *gorm.DB, client *assistantService.Client) {
	ctrl := assistantController.NewAssistantController(db, client)

	g := r.Group("/assistant", middlewares.AssistantRateLimiter())
	g.Post("/chat", ctrl.Chat)
	g.Post("/summarize", ctrl.Summarize)
	g.Post("/extract-pdf", ctrl.ExtractPDF)
}

// AssistantTeacherRoutes: quiz generation is teacher-only.
func AssistantTeacherRoutes(r fiber.Router, db *gorm.DB, client *assistantService.Client) {
	ctrl := assistantController.NewAssistantController(db, client)

	g := r.Group("/assistant", middlewares.AssistantRateLimiter())
	g.Post("/quiz", ctrl.GenerateQuiz)
}
