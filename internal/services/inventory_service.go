package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/dto"
	"github.com/pasofino/store-backend/internal/models"
	"github.com/pasofino/store-backend/internal/repository"
	"gorm.io/gorm"
)

type InventoryService struct {
	repo             *repository.Repository
	defaultThreshold int
}

func NewInventoryService(repo *repository.Repository, defaultThreshold int) *InventoryService {
	if defaultThreshold < 0 {
		defaultThreshold = 10
	}
	return &InventoryService{repo: repo, defaultThreshold: defaultThreshold}
}

// Classify derives the stock status from quantity and threshold.
func Classify(quantity, threshold int) models.StockStatus {
	switch {
	case quantity == 0:
		return models.StockStatusOut
	case quantity < threshold:
		return models.StockStatusLow
	default:
		return models.StockStatusAvailable
	}
}

func (s *InventoryService) Get(ctx context.Context, variantID uuid.UUID) (*dto.InventoryResponse, error) {
	inv, err := s.repo.Inventories.GetByVariant(ctx, variantID)
	if err != nil {
		return nil, fmt.Errorf("lookup inventory: %w", err)
	}
	if inv == nil {
		return nil, ErrInventoryNotFound
	}
	resp := mapInventoryToResponse(inv)
	return &resp, nil
}

// Set creates the variant's inventory row or replaces its levels.
func (s *InventoryService) Set(ctx context.Context, variantID uuid.UUID, req *dto.SetInventoryRequest) (*dto.InventoryResponse, error) {
	if req.StockQuantity < 0 {
		return nil, invalidField("stock_quantity", "must not be negative")
	}
	threshold := s.defaultThreshold
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			return nil, invalidField("low_stock_threshold", "must not be negative")
		}
		threshold = *req.LowStockThreshold
	}

	variant, err := s.repo.Variants.GetByID(ctx, variantID)
	if err != nil {
		return nil, fmt.Errorf("lookup variant: %w", err)
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}

	inv, err := s.repo.Inventories.GetByVariant(ctx, variantID)
	if err != nil {
		return nil, fmt.Errorf("lookup inventory: %w", err)
	}
	if inv == nil {
		inv = &models.Inventory{
			ID:                uuid.New(),
			VariantID:         variantID,
			StockQuantity:     req.StockQuantity,
			LowStockThreshold: threshold,
		}
		if err := s.repo.Inventories.Create(ctx, inv); err != nil {
			// A concurrent Set won the unique index on variant_id; fall
			// through to an update of the row it created.
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("create inventory: %w", err)
			}
			if err := s.repo.Inventories.SetLevels(ctx, variantID, req.StockQuantity, threshold); err != nil {
				return nil, fmt.Errorf("update inventory: %w", err)
			}
		}
	} else {
		if req.LowStockThreshold == nil {
			threshold = inv.LowStockThreshold
		}
		if err := s.repo.Inventories.SetLevels(ctx, variantID, req.StockQuantity, threshold); err != nil {
			return nil, fmt.Errorf("update inventory: %w", err)
		}
	}

	updated, err := s.repo.Inventories.GetByVariant(ctx, variantID)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("reload inventory: %w", err)
	}
	resp := mapInventoryToResponse(updated)
	return &resp, nil
}

// AdjustStock atomically applies delta. A delta that would drive the stock
// negative fails with ErrInsufficientStock and changes nothing.
func (s *InventoryService) AdjustStock(ctx context.Context, variantID uuid.UUID, delta int) (*dto.InventoryResponse, error) {
	inv, err := s.repo.Inventories.GetByVariant(ctx, variantID)
	if err != nil {
		return nil, fmt.Errorf("lookup inventory: %w", err)
	}
	if inv == nil {
		return nil, ErrInventoryNotFound
	}

	ok, err := s.repo.Inventories.AdjustStock(ctx, variantID, delta)
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	if !ok {
		return nil, ErrInsufficientStock
	}

	updated, err := s.repo.Inventories.GetByVariant(ctx, variantID)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("reload inventory: %w", err)
	}
	resp := mapInventoryToResponse(updated)
	return &resp, nil
}

func (s *InventoryService) ListLowStock(ctx context.Context) (*dto.LowStockListResponse, error) {
	list, err := s.repo.Inventories.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}

	resp := &dto.LowStockListResponse{
		Items: make([]dto.InventoryResponse, 0, len(list)),
		Total: len(list),
	}
	for i := range list {
		resp.Items = append(resp.Items, mapInventoryToResponse(&list[i]))
	}
	return resp, nil
}

func mapInventoryToResponse(inv *models.Inventory) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:                inv.ID,
		VariantID:         inv.VariantID,
		StockQuantity:     inv.StockQuantity,
		LowStockThreshold: inv.LowStockThreshold,
		StockStatus:       Classify(inv.StockQuantity, inv.LowStockThreshold),
		UpdatedAt:         inv.UpdatedAt,
	}
}
