package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/models"
	"github.com/pasofino/store-backend/internal/repository"
)

// Hand-rolled mocks over the repository interfaces.

type MockUserRepo struct {
	CreateFunc         func(ctx context.Context, u *models.User) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailFunc  func(ctx context.Context, email string) (bool, error)
	UpdateFieldsFunc   func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	UpdatePasswordFunc func(ctx context.Context, id uuid.UUID, hash string) error
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, hash)
	}
	return nil
}

type MockTokenRepo struct {
	CreateFunc         func(ctx context.Context, t *models.AuthToken) error
	GetByUserIDFunc    func(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error)
	GetByKeyFunc       func(ctx context.Context, key string) (*models.AuthToken, error)
	DeleteByUserIDFunc func(ctx context.Context, userID uuid.UUID) error
}

func (m *MockTokenRepo) Create(ctx context.Context, t *models.AuthToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *MockTokenRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTokenRepo) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *MockTokenRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}

type MockProductRepo struct {
	CreateFunc        func(ctx context.Context, p *models.Product) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListFunc          func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	UpdateFieldsFunc  func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteCascadeFunc func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProductRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, id)
	}
	return false, nil
}

type MockVariantRepo struct {
	CreateFunc           func(ctx context.Context, v *models.Variant) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	GetBySKUFunc         func(ctx context.Context, sku string) (*models.Variant, error)
	GetByCombinationFunc func(ctx context.Context, productID uuid.UUID, size string, system models.SizeSystem, color string) (*models.Variant, error)
	ListByProductFunc    func(ctx context.Context, productID uuid.UUID) ([]models.Variant, error)
	UpdateFieldsFunc     func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteCascadeFunc    func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockVariantRepo) Create(ctx context.Context, v *models.Variant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return nil
}

func (m *MockVariantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVariantRepo) GetBySKU(ctx context.Context, sku string) (*models.Variant, error) {
	if m.GetBySKUFunc != nil {
		return m.GetBySKUFunc(ctx, sku)
	}
	return nil, nil
}

func (m *MockVariantRepo) GetByCombination(ctx context.Context, productID uuid.UUID, size string, system models.SizeSystem, color string) (*models.Variant, error) {
	if m.GetByCombinationFunc != nil {
		return m.GetByCombinationFunc(ctx, productID, size, system, color)
	}
	return nil, nil
}

func (m *MockVariantRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Variant, error) {
	if m.ListByProductFunc != nil {
		return m.ListByProductFunc(ctx, productID)
	}
	return nil, nil
}

func (m *MockVariantRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockVariantRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, id)
	}
	return false, nil
}

type MockInventoryRepo struct {
	CreateFunc       func(ctx context.Context, inv *models.Inventory) error
	GetByVariantFunc func(ctx context.Context, variantID uuid.UUID) (*models.Inventory, error)
	SetLevelsFunc    func(ctx context.Context, variantID uuid.UUID, stock, threshold int) error
	AdjustStockFunc  func(ctx context.Context, variantID uuid.UUID, delta int) (bool, error)
	ListLowStockFunc func(ctx context.Context) ([]models.Inventory, error)
}

func (m *MockInventoryRepo) Create(ctx context.Context, inv *models.Inventory) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, inv)
	}
	return nil
}

func (m *MockInventoryRepo) GetByVariant(ctx context.Context, variantID uuid.UUID) (*models.Inventory, error) {
	if m.GetByVariantFunc != nil {
		return m.GetByVariantFunc(ctx, variantID)
	}
	return nil, nil
}

func (m *MockInventoryRepo) SetLevels(ctx context.Context, variantID uuid.UUID, stock, threshold int) error {
	if m.SetLevelsFunc != nil {
		return m.SetLevelsFunc(ctx, variantID, stock, threshold)
	}
	return nil
}

func (m *MockInventoryRepo) AdjustStock(ctx context.Context, variantID uuid.UUID, delta int) (bool, error) {
	if m.AdjustStockFunc != nil {
		return m.AdjustStockFunc(ctx, variantID, delta)
	}
	return true, nil
}

func (m *MockInventoryRepo) ListLowStock(ctx context.Context) ([]models.Inventory, error) {
	if m.ListLowStockFunc != nil {
		return m.ListLowStockFunc(ctx)
	}
	return nil, nil
}

func newMockRepository() (*repository.Repository, *MockUserRepo, *MockTokenRepo, *MockProductRepo, *MockVariantRepo, *MockInventoryRepo) {
	users := &MockUserRepo{}
	tokens := &MockTokenRepo{}
	products := &MockProductRepo{}
	variants := &MockVariantRepo{}
	inventories := &MockInventoryRepo{}
	repo := &repository.Repository{
		Users:       users,
		Tokens:      tokens,
		Products:    products,
		Variants:    variants,
		Inventories: inventories,
	}
	return repo, users, tokens, products, variants, inventories
}
