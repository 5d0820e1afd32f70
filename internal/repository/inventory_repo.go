package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/models"
	"gorm.io/gorm"
)

type InventoryRepo interface {
	Create(ctx context.Context, inv *models.Inventory) error
	GetByVariant(ctx context.Context, variantID uuid.UUID) (*models.Inventory, error)
	SetLevels(ctx context.Context, variantID uuid.UUID, stock, threshold int) error
	// AdjustStock applies delta as a single guarded read-modify-write. It
	// reports false without touching the row when the result would go
	// negative.
	AdjustStock(ctx context.Context, variantID uuid.UUID, delta int) (bool, error)
	// ListLowStock returns rows with stock_quantity <= low_stock_threshold,
	// ascending by quantity with variant id as the tie-break, so pagination
	// stays deterministic.
	ListLowStock(ctx context.Context) ([]models.Inventory, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepo { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Create(ctx context.Context, inv *models.Inventory) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *inventoryRepo) GetByVariant(ctx context.Context, variantID uuid.UUID) (*models.Inventory, error) {
	var inv models.Inventory
	err := r.db.WithContext(ctx).Where("variant_id = ?", variantID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}

func (r *inventoryRepo) SetLevels(ctx context.Context, variantID uuid.UUID, stock, threshold int) error {
	return r.db.WithContext(ctx).Model(&models.Inventory{}).
		Where("variant_id = ?", variantID).
		Updates(map[string]any{
			"stock_quantity":      stock,
			"low_stock_threshold": threshold,
		}).Error
}

func (r *inventoryRepo) AdjustStock(ctx context.Context, variantID uuid.UUID, delta int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE inventories
SET stock_quantity = stock_quantity + @delta,
    updated_at = now()
WHERE variant_id = @vid
  AND stock_quantity + @delta >= 0
`, map[string]any{
		"vid":   variantID,
		"delta": delta,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *inventoryRepo) ListLowStock(ctx context.Context) ([]models.Inventory, error) {
	var list []models.Inventory
	err := r.db.WithContext(ctx).
		Where("stock_quantity <= low_stock_threshold").
		Order("stock_quantity ASC, variant_id ASC").
		Find(&list).Error
	return list, err
}
