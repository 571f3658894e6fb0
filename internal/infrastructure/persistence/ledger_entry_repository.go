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

// GormLedgerEntryRepository implements LedgerEntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForRenter finds all ledger entries for a renter, newest first
func (r *GormLedgerEntryRepository) FindForRenter(ctx context.Context, accountID, renterID uuid.UUID, filter shared.Filter) ([]billing.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
			Where("account_id = ? AND renter_id = ?", accountID, renterID),
		filter,
	)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}

	return toDomainEntries(entryModels), nil
}

// FindForRenterMonth finds a renter's ledger entries for one billing month
func (r *GormLedgerEntryRepository) FindForRenterMonth(ctx context.Context, accountID, renterID uuid.UUID, monthKey billing.MonthKey) ([]billing.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND renter_id = ? AND applies_to_month_key = ?", accountID, renterID, monthKey).
		Order("created_at DESC, id DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// FindChargeForMonth finds an existing charge for the renter and month.
// The earliest entry wins when ad hoc charges share the month.
func (r *GormLedgerEntryRepository) FindChargeForMonth(ctx context.Context, accountID, renterID uuid.UUID, monthKey billing.MonthKey) (*billing.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND renter_id = ? AND applies_to_month_key = ? AND type = ?",
			accountID, renterID, monthKey, billing.LedgerEntryTypeCharge).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForMonth finds all ledger entries for an account in one billing month
func (r *GormLedgerEntryRepository) FindForMonth(ctx context.Context, accountID uuid.UUID, monthKey billing.MonthKey) ([]billing.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND applies_to_month_key = ?", accountID, monthKey).
		Order("created_at DESC, id DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// Save persists a new ledger entry. Entries are immutable, so this is
// always an insert.
func (r *GormLedgerEntryRepository) Save(ctx context.Context, entry *billing.LedgerEntry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// DeleteBatchForRenter deletes up to limit entries for the renter and
// returns how many rows were removed
func (r *GormLedgerEntryRepository) DeleteBatchForRenter(ctx context.Context, accountID, renterID uuid.UUID, limit int) (int64, error) {
	subquery := r.db.Model(&models.LedgerEntryModel{}).
		Select("id").
		Where("account_id = ? AND renter_id = ?", accountID, renterID).
		Limit(limit)

	result := r.db.WithContext(ctx).
		Where("id IN (?)", subquery).
		Delete(&models.LedgerEntryModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountForRenter counts ledger entries for a renter
func (r *GormLedgerEntryRepository) CountForRenter(ctx context.Context, accountID, renterID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("account_id = ? AND renter_id = ?", accountID, renterID).
		Count(&count).Error
	return count, err
}

// applyFilter applies common filter options to a query
func (r *GormLedgerEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("note ILIKE ? OR method ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "month_key":
			query = query.Where("applies_to_month_key = ?", value)
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

func toDomainEntries(entryModels []models.LedgerEntryModel) []billing.LedgerEntry {
	entries := make([]billing.LedgerEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries
}
