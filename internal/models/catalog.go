package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Category is the closed set of product categories.
type Category string

const (
	CategorySports    Category = "sports"
	CategoryWork      Category = "work"
	CategoryTops      Category = "tops"
	CategoryBottoms   Category = "bottoms"
	CategoryOuterwear Category = "outerwear"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySports, CategoryWork, CategoryTops, CategoryBottoms, CategoryOuterwear:
		return true
	}
	return false
}

// Gender is the closed set of target audiences.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
	GenderKids   Gender = "kids"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex, GenderKids:
		return true
	}
	return false
}

// SizeSystem qualifies the Size field for footwear. Apparel alpha sizes
// (XS..XL) are carried in Size with an empty system.
type SizeSystem string

const (
	SizeSystemEU SizeSystem = "EU"
	SizeSystemUS SizeSystem = "US"
	SizeSystemUK SizeSystem = "UK"
)

func (s SizeSystem) Valid() bool {
	switch s {
	case SizeSystemEU, SizeSystemUS, SizeSystemUK, "":
		return true
	}
	return false
}

// StockStatus is derived from stock quantity and threshold, never stored.
type StockStatus string

const (
	StockStatusOut       StockStatus = "OUT_OF_STOCK"
	StockStatusLow       StockStatus = "LOW_STOCK"
	StockStatusAvailable StockStatus = "AVAILABLE"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    Category  `gorm:"size:20;not null;index:idx_products_category_gender" json:"category"`
	Gender      Gender    `gorm:"size:10;not null;index:idx_products_category_gender" json:"gender"`
	BasePrice   float64   `gorm:"type:decimal(10,2);not null" json:"base_price"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"<-:create;index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Variant is one sellable size/color of a Product. SKU is unique across the
// whole catalog; (product, size, size_system, color) is unique per product.
type Variant struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_variants_product_size_color" json:"product_id"`
	Size       string         `gorm:"size:10;not null;uniqueIndex:idx_variants_product_size_color" json:"size"`
	SizeSystem SizeSystem     `gorm:"size:5;uniqueIndex:idx_variants_product_size_color" json:"size_system,omitempty"`
	Color      string         `gorm:"size:30;not null;uniqueIndex:idx_variants_product_size_color" json:"color"`
	SKU        string         `gorm:"size:50;not null;uniqueIndex" json:"sku"`
	Images     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"images"`
	CreatedAt  time.Time      `gorm:"<-:create" json:"created_at"`
}

// Inventory holds the stock level for exactly one Variant.
type Inventory struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VariantID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"variant_id"`
	StockQuantity     int       `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	LowStockThreshold int       `gorm:"not null;default:10" json:"low_stock_threshold"`
	UpdatedAt         time.Time `json:"updated_at"`
}
