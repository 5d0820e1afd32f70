package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/models"
)

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Gender      string  `json:"gender"`
	BasePrice   float64 `json:"base_price"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Gender      *string  `json:"gender"`
	BasePrice   *float64 `json:"base_price"`
	IsActive    *bool    `json:"is_active"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Gender      string    `json:"gender"`
	BasePrice   float64   `json:"base_price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type CreateVariantRequest struct {
	Size       string   `json:"size"`
	SizeSystem string   `json:"size_system"`
	Color      string   `json:"color"`
	SKU        string   `json:"sku"`
	Images     []string `json:"images"`
}

type UpdateVariantRequest struct {
	Size       *string   `json:"size"`
	SizeSystem *string   `json:"size_system"`
	Color      *string   `json:"color"`
	SKU        *string   `json:"sku"`
	Images     *[]string `json:"images"`
}

type VariantResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	Size       string    `json:"size"`
	SizeSystem string    `json:"size_system,omitempty"`
	Color      string    `json:"color"`
	SKU        string    `json:"sku"`
	Images     []string  `json:"images"`
}

type SetInventoryRequest struct {
	StockQuantity     int  `json:"stock_quantity"`
	LowStockThreshold *int `json:"low_stock_threshold"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

type InventoryResponse struct {
	ID                uuid.UUID          `json:"id"`
	VariantID         uuid.UUID          `json:"variant_id"`
	StockQuantity     int                `json:"stock_quantity"`
	LowStockThreshold int                `json:"low_stock_threshold"`
	StockStatus       models.StockStatus `json:"stock_status"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

type LowStockListResponse struct {
	Items []InventoryResponse `json:"items"`
	Total int                 `json:"total"`
}
