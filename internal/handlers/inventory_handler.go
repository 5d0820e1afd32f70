package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/dto"
	"github.com/pasofino/store-backend/internal/services"
)

type InventoryHandler struct {
	inventory *services.InventoryService
}

func NewInventoryHandler(inventory *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	variantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "variant id")
	}

	resp, err := h.inventory.Get(c.UserContext(), variantID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *InventoryHandler) Set(c *fiber.Ctx) error {
	variantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "variant id")
	}

	var req dto.SetInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.inventory.Set(c.UserContext(), variantID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	variantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "variant id")
	}

	var req dto.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.inventory.AdjustStock(c.UserContext(), variantID, req.Delta)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	resp, err := h.inventory.ListLowStock(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}
