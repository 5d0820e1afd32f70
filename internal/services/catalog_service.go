package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/dto"
	"github.com/pasofino/store-backend/internal/models"
	"github.com/pasofino/store-backend/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CatalogService struct {
	repo *repository.Repository
}

func NewCatalogService(repo *repository.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

// --- Products ---

func (s *CatalogService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	category := models.Category(req.Category)
	if !category.Valid() {
		return nil, invalidField("category", "must be one of sports, work, tops, bottoms, outerwear")
	}
	gender := models.Gender(req.Gender)
	if !gender.Valid() {
		return nil, invalidField("gender", "must be one of male, female, unisex, kids")
	}
	if req.BasePrice < 0 {
		return nil, invalidField("base_price", "must not be negative")
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
		Category:    category,
		Gender:      gender,
		BasePrice:   req.BasePrice,
		IsActive:    true,
	}
	if err := s.repo.Products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	resp := mapProductToResponse(product)
	return &resp, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	resp := mapProductToResponse(product)
	return &resp, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, category, gender, isActive, search string, page, limit int) (*dto.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := repository.ProductListFilter{
		Query:  search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if category != "" {
		c := models.Category(category)
		if !c.Valid() {
			return nil, invalidField("category", "unknown category")
		}
		filter.Category = &c
	}
	if gender != "" {
		g := models.Gender(gender)
		if !g.Valid() {
			return nil, invalidField("gender", "unknown gender")
		}
		filter.Gender = &g
	}
	if isActive != "" {
		active := isActive == "true"
		filter.IsActive = &active
	}

	list, total, err := s.repo.Products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	resp := &dto.ProductListResponse{
		Products:   make([]dto.ProductResponse, 0, len(list)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	for i := range list {
		resp.Products = append(resp.Products, mapProductToResponse(&list[i]))
	}
	return resp, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	// Validate everything before writing anything.
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateProductName(name); err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		c := models.Category(*req.Category)
		if !c.Valid() {
			return nil, invalidField("category", "must be one of sports, work, tops, bottoms, outerwear")
		}
		fields["category"] = c
	}
	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		if !g.Valid() {
			return nil, invalidField("gender", "must be one of male, female, unisex, kids")
		}
		fields["gender"] = g
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return nil, invalidField("base_price", "must not be negative")
		}
		fields["base_price"] = *req.BasePrice
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if err := s.repo.Products.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	updated, err := s.repo.Products.GetByID(ctx, id)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	resp := mapProductToResponse(updated)
	return &resp, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Products.DeleteCascade(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return ErrProductNotFound
	}
	return nil
}

// --- Variants ---

func (s *CatalogService) CreateVariant(ctx context.Context, productID uuid.UUID, req *dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	product, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	size := strings.TrimSpace(req.Size)
	color := strings.TrimSpace(req.Color)
	sku := strings.TrimSpace(req.SKU)
	system := models.SizeSystem(req.SizeSystem)
	if err := validateVariantFields(size, system, color, sku); err != nil {
		return nil, err
	}

	if existing, err := s.repo.Variants.GetBySKU(ctx, sku); err != nil {
		return nil, fmt.Errorf("check sku: %w", err)
	} else if existing != nil {
		return nil, ErrSKUTaken
	}
	if existing, err := s.repo.Variants.GetByCombination(ctx, productID, size, system, color); err != nil {
		return nil, fmt.Errorf("check variant: %w", err)
	} else if existing != nil {
		return nil, ErrVariantExists
	}

	images, err := marshalImages(req.Images)
	if err != nil {
		return nil, err
	}

	variant := &models.Variant{
		ID:         uuid.New(),
		ProductID:  productID,
		Size:       size,
		SizeSystem: system,
		Color:      color,
		SKU:        sku,
		Images:     images,
	}
	if err := s.repo.Variants.Create(ctx, variant); err != nil {
		// Unique indexes settle races the pre-checks missed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if dup, derr := s.repo.Variants.GetBySKU(ctx, sku); derr == nil && dup != nil {
				return nil, ErrSKUTaken
			}
			return nil, ErrVariantExists
		}
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}

	resp := mapVariantToResponse(variant)
	return &resp, nil
}

func (s *CatalogService) GetVariant(ctx context.Context, id uuid.UUID) (*dto.VariantResponse, error) {
	variant, err := s.repo.Variants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup variant: %w", err)
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	resp := mapVariantToResponse(variant)
	return &resp, nil
}

func (s *CatalogService) ListVariants(ctx context.Context, productID uuid.UUID) ([]dto.VariantResponse, error) {
	product, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	list, err := s.repo.Variants.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	resp := make([]dto.VariantResponse, 0, len(list))
	for i := range list {
		resp = append(resp, mapVariantToResponse(&list[i]))
	}
	return resp, nil
}

func (s *CatalogService) UpdateVariant(ctx context.Context, id uuid.UUID, req *dto.UpdateVariantRequest) (*dto.VariantResponse, error) {
	variant, err := s.repo.Variants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup variant: %w", err)
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}

	size := variant.Size
	system := variant.SizeSystem
	color := variant.Color
	sku := variant.SKU

	fields := map[string]any{}
	if req.Size != nil {
		size = strings.TrimSpace(*req.Size)
		fields["size"] = size
	}
	if req.SizeSystem != nil {
		system = models.SizeSystem(*req.SizeSystem)
		fields["size_system"] = system
	}
	if req.Color != nil {
		color = strings.TrimSpace(*req.Color)
		fields["color"] = color
	}
	if req.SKU != nil {
		sku = strings.TrimSpace(*req.SKU)
		fields["sku"] = sku
	}
	if err := validateVariantFields(size, system, color, sku); err != nil {
		return nil, err
	}
	if req.Images != nil {
		images, err := marshalImages(*req.Images)
		if err != nil {
			return nil, err
		}
		fields["images"] = images
	}

	if req.SKU != nil && !strings.EqualFold(sku, variant.SKU) {
		if existing, err := s.repo.Variants.GetBySKU(ctx, sku); err != nil {
			return nil, fmt.Errorf("check sku: %w", err)
		} else if existing != nil {
			return nil, ErrSKUTaken
		}
	}
	if size != variant.Size || system != variant.SizeSystem || !strings.EqualFold(color, variant.Color) {
		if existing, err := s.repo.Variants.GetByCombination(ctx, variant.ProductID, size, system, color); err != nil {
			return nil, fmt.Errorf("check variant: %w", err)
		} else if existing != nil && existing.ID != variant.ID {
			return nil, ErrVariantExists
		}
	}

	if err := s.repo.Variants.UpdateFields(ctx, id, fields); err != nil {
		// Unique indexes settle races the pre-checks missed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if dup, derr := s.repo.Variants.GetBySKU(ctx, sku); derr == nil && dup != nil && dup.ID != variant.ID {
				return nil, ErrSKUTaken
			}
			return nil, ErrVariantExists
		}
		return nil, fmt.Errorf("update variant: %w", err)
	}

	updated, err := s.repo.Variants.GetByID(ctx, id)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("reload variant: %w", err)
	}
	resp := mapVariantToResponse(updated)
	return &resp, nil
}

func (s *CatalogService) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Variants.DeleteCascade(ctx, id)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	if !deleted {
		return ErrVariantNotFound
	}
	return nil
}

// --- helpers ---

func validateProductName(name string) error {
	if name == "" {
		return invalidField("name", "is required")
	}
	if len(name) > 100 {
		return invalidField("name", "must be at most 100 characters")
	}
	return nil
}

func validateVariantFields(size string, system models.SizeSystem, color, sku string) error {
	if size == "" {
		return invalidField("size", "is required")
	}
	if len(size) > 10 {
		return invalidField("size", "must be at most 10 characters")
	}
	if !system.Valid() {
		return invalidField("size_system", "must be one of EU, US, UK or empty")
	}
	if color == "" {
		return invalidField("color", "is required")
	}
	if len(color) > 30 {
		return invalidField("color", "must be at most 30 characters")
	}
	if sku == "" {
		return invalidField("sku", "is required")
	}
	if len(sku) > 50 {
		return invalidField("sku", "must be at most 50 characters")
	}
	return nil
}

func marshalImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	for _, img := range images {
		if !strings.HasPrefix(img, "http://") && !strings.HasPrefix(img, "https://") {
			return nil, invalidField("images", "entries must be http(s) URLs")
		}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}
	return datatypes.JSON(b), nil
}

func mapProductToResponse(p *models.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Gender:      string(p.Gender),
		BasePrice:   p.BasePrice,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func mapVariantToResponse(v *models.Variant) dto.VariantResponse {
	images := []string{}
	if len(v.Images) > 0 {
		_ = json.Unmarshal(v.Images, &images)
	}
	return dto.VariantResponse{
		ID:         v.ID,
		ProductID:  v.ProductID,
		Size:       v.Size,
		SizeSystem: string(v.SizeSystem),
		Color:      v.Color,
		SKU:        v.SKU,
		Images:     images,
	}
}
