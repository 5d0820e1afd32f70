package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pasofino/store-backend/internal/dto"
)

// StaffRequired gates catalog mutations. It must run after TokenRequired.
func StaffRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return unauthorized(c)
		}
		if !user.IsStaff && !user.IsSuperuser {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Staff access required",
			})
		}
		return c.Next()
	}
}
