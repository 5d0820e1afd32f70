package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/dto"
	"github.com/pasofino/store-backend/internal/services"
)

type ProductHandler struct {
	catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.catalog.CreateProduct(c.UserContext(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	resp, err := h.catalog.ListProducts(
		c.UserContext(),
		c.Query("category"),
		c.Query("gender"),
		c.Query("is_active"),
		c.Query("search"),
		c.QueryInt("page", 1),
		c.QueryInt("limit", 20),
	)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "product id")
	}

	resp, err := h.catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "product id")
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.catalog.UpdateProduct(c.UserContext(), id, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "product id")
	}

	if err := h.catalog.DeleteProduct(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
