package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// RenterModel is the persistence model for the Renter domain entity.
type RenterModel struct {
	AccountAggregateModel
	Name                     string               `gorm:"type:varchar(200);not null"`
	Email                    string               `gorm:"type:varchar(200);index"`
	Phone                    string               `gorm:"type:varchar(50)"`
	Status                   billing.RenterStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Color                    string               `gorm:"type:varchar(20);default:'#e2f2ea'"`
	BillingCycle             billing.BillingCycle `gorm:"type:varchar(20);not null;default:'monthly'"`
	MonthlyRent              decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	DueDayOfMonth            int                  `gorm:"not null;default:1"`
	Timezone                 string               `gorm:"type:varchar(100);not null;default:'America/Chicago'"`
	NextDueDate              *time.Time
	GradeScore               int        `gorm:"not null;default:0"`
	GradeLetter              string     `gorm:"type:varchar(2);default:'C'"`
	Notes                    string     `gorm:"type:text"`
	PendingPermanentDeleteAt *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (RenterModel) TableName() string {
	return "renters"
}

// ToDomain converts the persistence model to a domain Renter entity.
func (m *RenterModel) ToDomain() *billing.Renter {
	renter := &billing.Renter{
		Name:                     m.Name,
		Email:                    m.Email,
		Phone:                    m.Phone,
		Status:                   m.Status,
		Color:                    m.Color,
		BillingCycle:             m.BillingCycle,
		MonthlyRent:              m.MonthlyRent,
		DueDayOfMonth:            m.DueDayOfMonth,
		Timezone:                 m.Timezone,
		NextDueDate:              m.NextDueDate,
		GradeScore:               m.GradeScore,
		GradeLetter:              m.GradeLetter,
		Notes:                    m.Notes,
		PendingPermanentDeleteAt: m.PendingPermanentDeleteAt,
	}
	m.PopulateAccountAggregateRoot(&renter.AccountAggregateRoot)
	return renter
}

// RenterModelFromDomain creates a persistence model from a domain Renter entity.
func RenterModelFromDomain(r *billing.Renter) *RenterModel {
	model := &RenterModel{
		Name:                     r.Name,
		Email:                    r.Email,
		Phone:                    r.Phone,
		Status:                   r.Status,
		Color:                    r.Color,
		BillingCycle:             r.BillingCycle,
		MonthlyRent:              r.MonthlyRent,
		DueDayOfMonth:            r.DueDayOfMonth,
		Timezone:                 r.Timezone,
		NextDueDate:              r.NextDueDate,
		GradeScore:               r.GradeScore,
		GradeLetter:              r.GradeLetter,
		Notes:                    r.Notes,
		PendingPermanentDeleteAt: r.PendingPermanentDeleteAt,
	}
	model.FromDomainAccountAggregateRoot(r.AccountAggregateRoot)
	return model
}

// LedgerEntryModel is the persistence model for the LedgerEntry domain entity.
// Rows are insert-only; the only delete path is the renter cascade.
type LedgerEntryModel struct {
	BaseModel
	AccountID         uuid.UUID               `gorm:"type:uuid;not null;index:idx_ledger_account_month,priority:1"`
	RenterID          uuid.UUID               `gorm:"type:uuid;not null;index:idx_ledger_renter_month,priority:1"`
	Type              billing.LedgerEntryType `gorm:"type:varchar(20);not null"`
	Amount            decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Method            string                  `gorm:"type:varchar(50)"`
	Note              string                  `gorm:"type:text"`
	AppliesToMonthKey billing.MonthKey        `gorm:"type:varchar(7);not null;index:idx_ledger_account_month,priority:2;index:idx_ledger_renter_month,priority:2"`
	DueDate           *time.Time
	CreatedByUID      uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry entity.
func (m *LedgerEntryModel) ToDomain() *billing.LedgerEntry {
	return &billing.LedgerEntry{
		BaseEntity:        m.BaseModel.ToDomain(),
		AccountID:         m.AccountID,
		RenterID:          m.RenterID,
		Type:              m.Type,
		Amount:            m.Amount,
		Method:            m.Method,
		Note:              m.Note,
		AppliesToMonthKey: m.AppliesToMonthKey,
		DueDate:           m.DueDate,
		CreatedByUID:      m.CreatedByUID,
	}
}

// LedgerEntryModelFromDomain creates a persistence model from a domain LedgerEntry entity.
func LedgerEntryModelFromDomain(e *billing.LedgerEntry) *LedgerEntryModel {
	model := &LedgerEntryModel{
		AccountID:         e.AccountID,
		RenterID:          e.RenterID,
		Type:              e.Type,
		Amount:            e.Amount,
		Method:            e.Method,
		Note:              e.Note,
		AppliesToMonthKey: e.AppliesToMonthKey,
		DueDate:           e.DueDate,
		CreatedByUID:      e.CreatedByUID,
	}
	model.FromDomainBaseEntity(e.BaseEntity)
	return model
}

// RenterEventModel is the persistence model for the RenterEvent domain entity.
type RenterEventModel struct {
	BaseModel
	AccountID uuid.UUID               `gorm:"type:uuid;not null;index"`
	RenterID  uuid.UUID               `gorm:"type:uuid;not null;index:idx_renter_events_renter_month,priority:1"`
	Type      billing.RenterEventType `gorm:"type:varchar(30);not null"`
	MonthKey  billing.MonthKey        `gorm:"type:varchar(7);index:idx_renter_events_renter_month,priority:2"`
	SentAt    *time.Time
	Message   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RenterEventModel) TableName() string {
	return "renter_events"
}

// ToDomain converts the persistence model to a domain RenterEvent entity.
func (m *RenterEventModel) ToDomain() *billing.RenterEvent {
	return &billing.RenterEvent{
		BaseEntity: m.BaseModel.ToDomain(),
		AccountID:  m.AccountID,
		RenterID:   m.RenterID,
		Type:       m.Type,
		MonthKey:   m.MonthKey,
		SentAt:     m.SentAt,
		Message:    m.Message,
	}
}

// RenterEventModelFromDomain creates a persistence model from a domain RenterEvent entity.
func RenterEventModelFromDomain(e *billing.RenterEvent) *RenterEventModel {
	model := &RenterEventModel{
		AccountID: e.AccountID,
		RenterID:  e.RenterID,
		Type:      e.Type,
		MonthKey:  e.MonthKey,
		SentAt:    e.SentAt,
		Message:   e.Message,
	}
	model.FromDomainBaseEntity(e.BaseEntity)
	return model
}
