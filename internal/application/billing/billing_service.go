package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"go.uber.org/zap"
)

// Reason codes reported by EnsureMonthlyCharge. They are outcomes, not
// errors: the caller always gets a result unless persistence itself failed.
const (
	ReasonGenerated       = "generated"
	ReasonBeforeDueDate   = "before_due_date"
	ReasonAlreadyExists   = "already_exists"
	ReasonRenterArchived  = "renter_archived"
	ReasonNoRentConfigure = "no_rent_configured"
)

// EnsureChargeResult reports the outcome of an idempotent charge generation
type EnsureChargeResult struct {
	Created  bool                 `json:"created"`
	Reason   string               `json:"reason"`
	MonthKey billing.MonthKey     `json:"month_key"`
	Entry    *billing.LedgerEntry `json:"entry,omitempty"`
}

// BillingService generates the recurring monthly rent charges
type BillingService struct {
	renterRepo billing.RenterRepository
	ledgerRepo billing.LedgerEntryRepository
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewBillingService creates a new BillingService
func NewBillingService(
	renterRepo billing.RenterRepository,
	ledgerRepo billing.LedgerEntryRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		renterRepo: renterRepo,
		ledgerRepo: ledgerRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// EnsureMonthlyCharge makes sure exactly one rent charge exists for the
// renter's current billing month. It is deterministic and idempotent:
// calling it any number of times within one month yields one charge.
//
// Charges are never generated ahead of the due date. The existence check and
// the write are two store operations, so concurrent callers can race between
// them; the partial unique index on (account_id, renter_id, month_key) for
// monthly rent charges is the store-level backstop.
func (s *BillingService) EnsureMonthlyCharge(ctx context.Context, accountID, renterID uuid.UUID, now time.Time) (*EnsureChargeResult, error) {
	renter, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
	if err != nil {
		return nil, err
	}

	monthKey := renter.CurrentMonthKey(now)

	if !renter.IsActive() {
		return &EnsureChargeResult{Created: false, Reason: ReasonRenterArchived, MonthKey: monthKey}, nil
	}
	if !renter.MonthlyRent.IsPositive() {
		return &EnsureChargeResult{Created: false, Reason: ReasonNoRentConfigure, MonthKey: monthKey}, nil
	}

	dueDate, err := renter.DueDateForMonth(monthKey)
	if err != nil {
		return nil, err
	}

	if billing.BeforeDueDate(now, dueDate) {
		return &EnsureChargeResult{Created: false, Reason: ReasonBeforeDueDate, MonthKey: monthKey}, nil
	}

	existing, err := s.ledgerRepo.FindChargeForMonth(ctx, accountID, renterID, monthKey)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing charge: %w", err)
	}
	if existing != nil {
		return &EnsureChargeResult{Created: false, Reason: ReasonAlreadyExists, MonthKey: monthKey, Entry: existing}, nil
	}

	note := fmt.Sprintf("Monthly rent for %s", monthKey)
	entry, err := billing.NewCharge(accountID, renterID, renter.MonthlyRent, note, monthKey, dueDate, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save monthly charge: %w", err)
	}

	s.logger.Info("generated monthly charge",
		zap.String("renter_id", renterID.String()),
		zap.String("month_key", monthKey.String()),
		zap.String("amount", entry.Amount.String()),
	)

	if err := s.eventBus.Publish(ctx, billing.NewLedgerEntryCreatedEvent(entry)); err != nil {
		s.logger.Warn("failed to publish ledger event", zap.Error(err))
	}

	return &EnsureChargeResult{Created: true, Reason: ReasonGenerated, MonthKey: monthKey, Entry: entry}, nil
}
