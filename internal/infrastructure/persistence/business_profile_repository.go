package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/account"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBusinessProfileRepository implements BusinessProfileRepository using GORM
type GormBusinessProfileRepository struct {
	db *gorm.DB
}

// NewGormBusinessProfileRepository creates a new GormBusinessProfileRepository
func NewGormBusinessProfileRepository(db *gorm.DB) *GormBusinessProfileRepository {
	return &GormBusinessProfileRepository{db: db}
}

// FindForAccount finds the account's profile
func (r *GormBusinessProfileRepository) FindForAccount(ctx context.Context, accountID uuid.UUID) (*account.BusinessProfile, error) {
	var model models.BusinessProfileModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the profile
func (r *GormBusinessProfileRepository) Save(ctx context.Context, profile *account.BusinessProfile) error {
	model := models.BusinessProfileModelFromDomain(profile)
	return r.db.WithContext(ctx).Save(model).Error
}
