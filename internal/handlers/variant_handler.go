package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/dto"
	"github.com/pasofino/store-backend/internal/services"
)

type VariantHandler struct {
	catalog *services.CatalogService
}

func NewVariantHandler(catalog *services.CatalogService) *VariantHandler {
	return &VariantHandler{catalog: catalog}
}

func (h *VariantHandler) Create(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "product id")
	}

	var req dto.CreateVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.catalog.CreateVariant(c.UserContext(), productID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *VariantHandler) ListByProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "product id")
	}

	resp, err := h.catalog.ListVariants(c.UserContext(), productID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"variants": resp, "total": len(resp)})
}

func (h *VariantHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "variant id")
	}

	resp, err := h.catalog.GetVariant(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *VariantHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "variant id")
	}

	var req dto.UpdateVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.catalog.UpdateVariant(c.UserContext(), id, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *VariantHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "variant id")
	}

	if err := h.catalog.DeleteVariant(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
