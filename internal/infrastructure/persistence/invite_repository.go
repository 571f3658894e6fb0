package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/account"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInviteRepository implements InviteRepository using GORM
type GormInviteRepository struct {
	db *gorm.DB
}

// NewGormInviteRepository creates a new GormInviteRepository
func NewGormInviteRepository(db *gorm.DB) *GormInviteRepository {
	return &GormInviteRepository{db: db}
}

// FindByID finds an invite by its ID
func (r *GormInviteRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Invite, error) {
	var model models.InviteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForAccount finds an invite by ID within an account
func (r *GormInviteRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*account.Invite, error) {
	var model models.InviteModel
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

// FindPendingByEmail finds the pending invite for a normalized email.
// The partial unique index on (account_id, email) for pending rows
// guarantees at most one match.
func (r *GormInviteRepository) FindPendingByEmail(ctx context.Context, accountID uuid.UUID, email string) (*account.Invite, error) {
	var model models.InviteModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND email = ? AND status = ?",
			accountID, strings.ToLower(email), account.InviteStatusPending).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForAccount finds all invites for an account
func (r *GormInviteRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]account.Invite, error) {
	var inviteModels []models.InviteModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InviteModel{}).Where("account_id = ?", accountID),
		filter,
	)

	if err := query.Find(&inviteModels).Error; err != nil {
		return nil, err
	}

	invites := make([]account.Invite, len(inviteModels))
	for i, model := range inviteModels {
		invites[i] = *model.ToDomain()
	}
	return invites, nil
}

// Save creates or updates an invite
func (r *GormInviteRepository) Save(ctx context.Context, invite *account.Invite) error {
	model := models.InviteModelFromDomain(invite)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an invite
func (r *GormInviteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InviteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies common filter options to a query
func (r *GormInviteRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("email ILIKE ?", "%"+filter.Search+"%")
	}

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
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
		query = query.Order("created_at DESC")
	}

	return query
}
