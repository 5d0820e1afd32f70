package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/models"
	"gorm.io/gorm"
)

type TokenRepo interface {
	Create(ctx context.Context, t *models.AuthToken) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error)
	// GetByKey resolves a bearer key to its token with the owning user loaded.
	GetByKey(ctx context.Context, key string) (*models.AuthToken, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type tokenRepo struct {
	db *gorm.DB
}

func NewTokenRepo(db *gorm.DB) TokenRepo { return &tokenRepo{db: db} }

func (r *tokenRepo) Create(ctx context.Context, t *models.AuthToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tokenRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error) {
	var t models.AuthToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *tokenRepo) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	var t models.AuthToken
	err := r.db.WithContext(ctx).Preload("User").Where("key = ?", key).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *tokenRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}
