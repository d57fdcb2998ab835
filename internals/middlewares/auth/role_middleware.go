package auth

import (
	"github.com/gofiber/fiber/v2"

	"classku_backend/internals/constants"
)

// RoleMiddlewareWithCustomError validates the role stored in Locals.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customForbiddenMessage,
		})
	}
}

// Shortcuts for cleaner route wiring
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}

func OnlyTeacher(feature string) fiber.Handler {
	return OnlyRoles(constants.RoleErrorTeacher(feature), constants.RoleTeacher)
}

func OnlyStudent(feature string) fiber.Handler {
	return OnlyRoles(constants.RoleErrorStudent(feature), constants.RoleStudent)
}
