package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pasofino/store-backend/internal/dto"
	"github.com/pasofino/store-backend/internal/models"
	"github.com/pasofino/store-backend/internal/repository"
)

const currentUserKey = "current_user"

// TokenRequired resolves the opaque bearer key against the token store and
// attaches the owning user to the request. Both "Token <key>" and
// "Bearer <key>" schemes are accepted.
func TokenRequired(repo *repository.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := extractTokenKey(c.Get(fiber.HeaderAuthorization))
		if key == "" {
			return unauthorized(c)
		}

		token, err := repo.Tokens.GetByKey(c.UserContext(), key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		if token == nil || !token.User.IsActive {
			return unauthorized(c)
		}

		user := token.User
		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated account placed by TokenRequired.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(currentUserKey).(*models.User)
	return user, ok
}

func extractTokenKey(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized: invalid or missing token",
	})
}
