package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pasofino/store-backend/internal/database"
	"github.com/pasofino/store-backend/internal/dto"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	status := "ok"
	code := fiber.StatusOK
	if err := database.Ping(h.db); err != nil {
		dbStatus = "down"
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
