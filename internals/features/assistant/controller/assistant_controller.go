// file: internals/features/assistant/controller/assistant_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assistantDTO "classku_backend/internals/features/assistant/dto"
	assistantService "classku_backend/internals/features/assistant/service"
	helpers "classku_backend/internals/helpers"
	helperOSS "classku_backend/internals/helpers/oss"
)

type AssistantController struct {
	DB       *gorm.DB
	Client   *assistantService.Client
	validate *validator.Validate
}

func NewAssistantController(db *gorm.DB, client *assistantService.Client) *AssistantController {
	return &AssistantController{DB: db, Client: client, validate: validator.New()}
}

/* =========================================================
   POST /api/u/assistant/chat
========================================================= */

func (ctrl *AssistantController) Chat(c *fiber.Ctx) error {
	role, err := helpers.GetUserRoleFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req assistantDTO.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	reply, err := ctrl.Client.Chat(c.Context(), req.Message, role, req.Subject)
	if err != nil {
		log.Printf("[ASSISTANT] chat failed: %v", err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Assistant is unavailable right now")
	}
	return helpers.JsonOK(c, "Assistant replied successfully", assistantDTO.ChatResponse{Reply: reply})
}

/* =========================================================
   POST /api/t/assistant/quiz
========================================================= */

func (ctrl *AssistantController) GenerateQuiz(c *fiber.Ctx) error {
	var req assistantDTO.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	quiz, err := ctrl.Client.GenerateQuiz(c.Context(), req.Topic, req.Difficulty, req.QuestionCount)
	if err != nil {
		log.Printf("[ASSISTANT] quiz generation failed topic=%q: %v", req.Topic, err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Failed to generate quiz")
	}
	return helpers.JsonOK(c, "Quiz generated successfully", quiz)
}

/* =========================================================
   POST /api/u/assistant/summarize
========================================================= */

func (ctrl *AssistantController) Summarize(c *fiber.Ctx) error {
	var req assistantDTO.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	summary, err := ctrl.Client.Summarize(c.Context(), req.Text)
	if err != nil {
		log.Printf("[ASSISTANT] summarize failed: %v", err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Failed to summarize text")
	}
	return helpers.JsonOK(c, "Text summarized successfully", assistantDTO.SummarizeResponse{Summary: summary})
}

/* =========================================================
   POST /api/u/assistant/extract-pdf  (multipart, field: pdf|file)
========================================================= */

func (ctrl *AssistantController) ExtractPDF(c *fiber.Ctx) error {
	fh := helperOSS.TryGetFormFile(c, "pdf", "file")
	if fh == nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "PDF file is required")
	}

	text, pages, err := assistantService.ExtractTextFromPDF(fh)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Failed to extract text from PDF")
	}
	return helpers.JsonOK(c, "PDF text extracted successfully", assistantDTO.ExtractPDFResponse{
		Text:  text,
		Pages: pages,
	})
}
