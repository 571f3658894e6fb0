package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerEntryType represents the type of ledger entry
type LedgerEntryType string

const (
	// LedgerEntryTypeCharge represents an amount owed for a billing month
	LedgerEntryTypeCharge LedgerEntryType = "charge"
	// LedgerEntryTypePayment represents an amount received against the balance
	LedgerEntryTypePayment LedgerEntryType = "payment"
)

// String returns the string representation of LedgerEntryType
func (t LedgerEntryType) String() string {
	return string(t)
}

// IsValid returns true if the entry type is valid
func (t LedgerEntryType) IsValid() bool {
	switch t {
	case LedgerEntryTypeCharge, LedgerEntryTypePayment:
		return true
	}
	return false
}

// LedgerEntry represents an immutable record in a renter's billing ledger.
// Entries are never updated in place; the only removal path is the
// permanent-delete cascade of the owning renter.
type LedgerEntry struct {
	shared.BaseEntity
	AccountID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	RenterID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type              LedgerEntryType `gorm:"type:varchar(20);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method            string          `gorm:"type:varchar(50)"`
	Note              string          `gorm:"type:text"`
	AppliesToMonthKey MonthKey        `gorm:"type:varchar(7);not null;index"`
	DueDate           *time.Time
	CreatedByUID      uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// NewCharge creates a charge entry for a billing month
func NewCharge(accountID, renterID uuid.UUID, amount decimal.Decimal, note string, monthKey MonthKey, dueDate time.Time, createdBy uuid.UUID) (*LedgerEntry, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if !monthKey.IsValid() {
		return nil, shared.NewDomainError("INVALID_MONTH_KEY", fmt.Sprintf("Month key must be in YYYY-MM format, got %q", monthKey))
	}

	return &LedgerEntry{
		BaseEntity:        shared.NewBaseEntity(),
		AccountID:         accountID,
		RenterID:          renterID,
		Type:              LedgerEntryTypeCharge,
		Amount:            amount,
		Note:              note,
		AppliesToMonthKey: monthKey,
		DueDate:           &dueDate,
		CreatedByUID:      createdBy,
	}, nil
}

// NewPayment creates a payment entry against a billing month.
// The payment method is required.
func NewPayment(accountID, renterID uuid.UUID, amount decimal.Decimal, method, note string, monthKey MonthKey, createdBy uuid.UUID) (*LedgerEntry, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if strings.TrimSpace(method) == "" {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method cannot be empty")
	}
	if !monthKey.IsValid() {
		return nil, shared.NewDomainError("INVALID_MONTH_KEY", fmt.Sprintf("Month key must be in YYYY-MM format, got %q", monthKey))
	}

	return &LedgerEntry{
		BaseEntity:        shared.NewBaseEntity(),
		AccountID:         accountID,
		RenterID:          renterID,
		Type:              LedgerEntryTypePayment,
		Amount:            amount,
		Method:            strings.TrimSpace(method),
		Note:              note,
		AppliesToMonthKey: monthKey,
		CreatedByUID:      createdBy,
	}, nil
}

// IsCharge returns true if this entry is a charge
func (e *LedgerEntry) IsCharge() bool {
	return e.Type == LedgerEntryTypeCharge
}

// IsPayment returns true if this entry is a payment
func (e *LedgerEntry) IsPayment() bool {
	return e.Type == LedgerEntryTypePayment
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	return nil
}
