package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/models"
	"gorm.io/gorm"
)

type VariantRepo interface {
	Create(ctx context.Context, v *models.Variant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	GetBySKU(ctx context.Context, sku string) (*models.Variant, error)
	// GetByCombination looks up the (product, size, size_system, color) tuple.
	GetByCombination(ctx context.Context, productID uuid.UUID, size string, system models.SizeSystem, color string) (*models.Variant, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Variant, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	// DeleteCascade removes the variant together with its inventory row.
	DeleteCascade(ctx context.Context, id uuid.UUID) (bool, error)
}

type variantRepo struct {
	db *gorm.DB
}

func NewVariantRepo(db *gorm.DB) VariantRepo { return &variantRepo{db: db} }

func (r *variantRepo) Create(ctx context.Context, v *models.Variant) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *variantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	var v models.Variant
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *variantRepo) GetBySKU(ctx context.Context, sku string) (*models.Variant, error) {
	var v models.Variant
	err := r.db.WithContext(ctx).Where("lower(sku) = lower(?)", sku).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *variantRepo) GetByCombination(ctx context.Context, productID uuid.UUID, size string, system models.SizeSystem, color string) (*models.Variant, error) {
	var v models.Variant
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND size = ? AND size_system = ? AND lower(color) = lower(?)", productID, size, system, color).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *variantRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Variant, error) {
	var list []models.Variant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("size ASC, color ASC").
		Find(&list).Error
	return list, err
}

func (r *variantRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Variant{}).Where("id = ?", id).Updates(fields).Error
}

func (r *variantRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("variant_id = ?", id).Delete(&models.Inventory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Variant{}, "id = ?", id)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}
