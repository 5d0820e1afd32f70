package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pasofino/store-backend/internal/handlers"
	"github.com/pasofino/store-backend/internal/middleware"
	"github.com/pasofino/store-backend/internal/repository"
)

func Setup(
	app *fiber.App,
	repo *repository.Repository,
	authHandler *handlers.AuthHandler,
	productHandler *handlers.ProductHandler,
	variantHandler *handlers.VariantHandler,
	inventoryHandler *handlers.InventoryHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth — public
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/password-reset", authHandler.RequestPasswordReset)
	auth.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// Auth — token required
	authed := middleware.TokenRequired(repo)
	api.Post("/auth/logout", authed, authHandler.Logout)
	api.Get("/auth/profile", authed, authHandler.Profile)
	api.Patch("/auth/profile", authed, authHandler.UpdateProfile)

	// Catalog reads are public; mutations need a staff token.
	staff := middleware.StaffRequired()
	api.Get("/products", productHandler.List)
	api.Post("/products", authed, staff, productHandler.Create)
	api.Get("/products/:id", productHandler.Get)
	api.Put("/products/:id", authed, staff, productHandler.Update)
	api.Delete("/products/:id", authed, staff, productHandler.Delete)

	api.Get("/products/:id/variants", variantHandler.ListByProduct)
	api.Post("/products/:id/variants", authed, staff, variantHandler.Create)
	api.Get("/variants/:id", variantHandler.Get)
	api.Put("/variants/:id", authed, staff, variantHandler.Update)
	api.Delete("/variants/:id", authed, staff, variantHandler.Delete)

	api.Get("/variants/:id/inventory", inventoryHandler.Get)
	api.Put("/variants/:id/inventory", authed, staff, inventoryHandler.Set)
	api.Post("/variants/:id/inventory/adjust", authed, staff, inventoryHandler.Adjust)
	api.Get("/inventory/low-stock", authed, staff, inventoryHandler.ListLowStock)
}
