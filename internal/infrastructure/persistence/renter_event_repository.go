package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRenterEventRepository implements RenterEventRepository using GORM
type GormRenterEventRepository struct {
	db *gorm.DB
}

// NewGormRenterEventRepository creates a new GormRenterEventRepository
func NewGormRenterEventRepository(db *gorm.DB) *GormRenterEventRepository {
	return &GormRenterEventRepository{db: db}
}

// FindForRenter finds all events for a renter, newest first
func (r *GormRenterEventRepository) FindForRenter(ctx context.Context, accountID, renterID uuid.UUID, filter shared.Filter) ([]billing.RenterEvent, error) {
	var eventModels []models.RenterEventModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.RenterEventModel{}).
			Where("account_id = ? AND renter_id = ?", accountID, renterID),
		filter,
	)

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, err
	}

	return toDomainEvents(eventModels), nil
}

// FindForRenterMonth finds a renter's events for one billing month
func (r *GormRenterEventRepository) FindForRenterMonth(ctx context.Context, accountID, renterID uuid.UUID, monthKey billing.MonthKey) ([]billing.RenterEvent, error) {
	var eventModels []models.RenterEventModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND renter_id = ? AND month_key = ?", accountID, renterID, monthKey).
		Order("created_at DESC, id DESC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}
	return toDomainEvents(eventModels), nil
}

// Save persists a new renter event. Events are immutable, so this is
// always an insert.
func (r *GormRenterEventRepository) Save(ctx context.Context, event *billing.RenterEvent) error {
	model := models.RenterEventModelFromDomain(event)
	return r.db.WithContext(ctx).Create(model).Error
}

// DeleteBatchForRenter deletes up to limit events for the renter and
// returns how many rows were removed
func (r *GormRenterEventRepository) DeleteBatchForRenter(ctx context.Context, accountID, renterID uuid.UUID, limit int) (int64, error) {
	subquery := r.db.Model(&models.RenterEventModel{}).
		Select("id").
		Where("account_id = ? AND renter_id = ?", accountID, renterID).
		Limit(limit)

	result := r.db.WithContext(ctx).
		Where("id IN (?)", subquery).
		Delete(&models.RenterEventModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountForRenter counts events for a renter
func (r *GormRenterEventRepository) CountForRenter(ctx context.Context, accountID, renterID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RenterEventModel{}).
		Where("account_id = ? AND renter_id = ?", accountID, renterID).
		Count(&count).Error
	return count, err
}

// applyFilter applies common filter options to a query
func (r *GormRenterEventRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("message ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "month_key":
			query = query.Where("month_key = ?", value)
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
		query = query.Order("created_at DESC, id DESC")
	}

	return query
}

func toDomainEvents(eventModels []models.RenterEventModel) []billing.RenterEvent {
	events := make([]billing.RenterEvent, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events
}
