package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// AccountAggregateModel provides common persistence fields for account-scoped
// aggregate roots. It extends AggregateModel with the owning account ID.
type AccountAggregateModel struct {
	AggregateModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainAccountAggregateRoot populates AccountAggregateModel from domain AccountAggregateRoot
func (m *AccountAggregateModel) FromDomainAccountAggregateRoot(a shared.AccountAggregateRoot) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.AccountID = a.AccountID
}

// PopulateAccountAggregateRoot populates a domain AccountAggregateRoot from persistence model
func (m *AccountAggregateModel) PopulateAccountAggregateRoot(a *shared.AccountAggregateRoot) {
	a.BaseAggregateRoot.BaseEntity.ID = m.ID
	a.BaseAggregateRoot.BaseEntity.CreatedAt = m.CreatedAt
	a.BaseAggregateRoot.BaseEntity.UpdatedAt = m.UpdatedAt
	a.BaseAggregateRoot.Version = m.Version
	a.AccountID = m.AccountID
}
