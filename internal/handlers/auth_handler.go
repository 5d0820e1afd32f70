package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/pasofino/store-backend/internal/dto"
	"github.com/pasofino/store-backend/internal/middleware"
	"github.com/pasofino/store-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.authService.Logout(c.UserContext(), user.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.authService.Profile(c.UserContext(), user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.authService.UpdateProfile(c.UserContext(), user.ID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

// RequestPasswordReset always answers 202 with the same body so the endpoint
// cannot be used to probe which emails are registered.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	token, err := h.authService.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if token != "" {
		// Delivery is a mailer concern; until one is wired the token is only
		// surfaced in the server log.
		slog.Info("password reset token issued", "action", "password_reset")
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "If the email is registered, a reset link has been sent",
	})
}

func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	if err := h.authService.ConfirmPasswordReset(c.UserContext(), &req); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
