package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRenterRepository implements RenterRepository using GORM
type GormRenterRepository struct {
	db *gorm.DB
}

// NewGormRenterRepository creates a new GormRenterRepository
func NewGormRenterRepository(db *gorm.DB) *GormRenterRepository {
	return &GormRenterRepository{db: db}
}

// FindByID finds a renter by its ID
func (r *GormRenterRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Renter, error) {
	var model models.RenterModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForAccount finds a renter by ID within an account
func (r *GormRenterRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*billing.Renter, error) {
	var model models.RenterModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForAccount finds all renters for an account
func (r *GormRenterRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]billing.Renter, error) {
	var renterModels []models.RenterModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RenterModel{}).Where("account_id = ?", accountID), filter)

	if err := query.Find(&renterModels).Error; err != nil {
		return nil, err
	}

	renters := make([]billing.Renter, len(renterModels))
	for i, model := range renterModels {
		renters[i] = *model.ToDomain()
	}
	return renters, nil
}

// FindByStatus finds renters by lifecycle status for an account
func (r *GormRenterRepository) FindByStatus(ctx context.Context, accountID uuid.UUID, status billing.RenterStatus, filter shared.Filter) ([]billing.Renter, error) {
	var renterModels []models.RenterModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.RenterModel{}).
			Where("account_id = ? AND status = ?", accountID, status),
		filter,
	)

	if err := query.Find(&renterModels).Error; err != nil {
		return nil, err
	}

	renters := make([]billing.Renter, len(renterModels))
	for i, model := range renterModels {
		renters[i] = *model.ToDomain()
	}
	return renters, nil
}

// FindByIDs finds multiple renters by their IDs within an account
func (r *GormRenterRepository) FindByIDs(ctx context.Context, accountID uuid.UUID, ids []uuid.UUID) ([]billing.Renter, error) {
	if len(ids) == 0 {
		return []billing.Renter{}, nil
	}

	var renterModels []models.RenterModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id IN ?", accountID, ids).
		Find(&renterModels).Error; err != nil {
		return nil, err
	}

	renters := make([]billing.Renter, len(renterModels))
	for i, model := range renterModels {
		renters[i] = *model.ToDomain()
	}
	return renters, nil
}

// FindPendingPermanentDelete finds renters whose delete cascade was stamped
// but may not have completed
func (r *GormRenterRepository) FindPendingPermanentDelete(ctx context.Context, accountID uuid.UUID) ([]billing.Renter, error) {
	var renterModels []models.RenterModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND pending_permanent_delete_at IS NOT NULL", accountID).
		Order("pending_permanent_delete_at ASC").
		Find(&renterModels).Error; err != nil {
		return nil, err
	}

	renters := make([]billing.Renter, len(renterModels))
	for i, model := range renterModels {
		renters[i] = *model.ToDomain()
	}
	return renters, nil
}

// Save creates or updates a renter
func (r *GormRenterRepository) Save(ctx context.Context, renter *billing.Renter) error {
	model := models.RenterModelFromDomain(renter)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes the renter record
func (r *GormRenterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RenterModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByStatus counts renters by status for an account
func (r *GormRenterRepository) CountByStatus(ctx context.Context, accountID uuid.UUID, status billing.RenterStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RenterModel{}).
		Where("account_id = ? AND status = ?", accountID, status).
		Count(&count).Error
	return count, err
}

// applyFilter applies common filter options to a query
func (r *GormRenterRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "due_day":
			query = query.Where("due_day_of_month = ?", value)
		case "grade":
			query = query.Where("grade_letter = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("name ASC")
	}

	return query
}
