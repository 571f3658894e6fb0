package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordPaymentRequest describes a payment received from a renter
type RecordPaymentRequest struct {
	Amount   decimal.Decimal
	Method   string
	Note     string
	MonthKey billing.MonthKey
}

// RecordChargeRequest describes a one-off charge for a renter
type RecordChargeRequest struct {
	Amount   decimal.Decimal
	Note     string
	MonthKey billing.MonthKey
}

// LedgerService appends payments, ad hoc charges, and reminder log records.
// All validation happens before anything is written; a rejected request
// leaves the ledger untouched.
type LedgerService struct {
	renterRepo billing.RenterRepository
	ledgerRepo billing.LedgerEntryRepository
	eventRepo  billing.RenterEventRepository
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	renterRepo billing.RenterRepository,
	ledgerRepo billing.LedgerEntryRepository,
	eventRepo billing.RenterEventRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		renterRepo: renterRepo,
		ledgerRepo: ledgerRepo,
		eventRepo:  eventRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// RecordPayment validates and appends a payment entry
func (s *LedgerService) RecordPayment(ctx context.Context, accountID, renterID uuid.UUID, req RecordPaymentRequest) (*billing.LedgerEntry, error) {
	if _, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID); err != nil {
		return nil, err
	}

	entry, err := billing.NewPayment(accountID, renterID, req.Amount, req.Method, req.Note, req.MonthKey, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.logger.Info("payment recorded",
		zap.String("renter_id", renterID.String()),
		zap.String("amount", entry.Amount.String()),
		zap.String("method", entry.Method),
	)

	if err := s.eventBus.Publish(ctx, billing.NewLedgerEntryCreatedEvent(entry)); err != nil {
		s.logger.Warn("failed to publish ledger event", zap.Error(err))
	}

	return entry, nil
}

// RecordCharge validates and appends a one-off charge entry
func (s *LedgerService) RecordCharge(ctx context.Context, accountID, renterID uuid.UUID, req RecordChargeRequest) (*billing.LedgerEntry, error) {
	renter, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
	if err != nil {
		return nil, err
	}

	dueDate, err := renter.DueDateForMonth(req.MonthKey)
	if err != nil {
		return nil, err
	}

	entry, err := billing.NewCharge(accountID, renterID, req.Amount, req.Note, req.MonthKey, dueDate, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save charge: %w", err)
	}

	s.logger.Info("charge recorded",
		zap.String("renter_id", renterID.String()),
		zap.String("amount", entry.Amount.String()),
	)

	if err := s.eventBus.Publish(ctx, billing.NewLedgerEntryCreatedEvent(entry)); err != nil {
		s.logger.Warn("failed to publish ledger event", zap.Error(err))
	}

	return entry, nil
}

// MarkReminderSent logs that a payment reminder went out for a billing month
func (s *LedgerService) MarkReminderSent(ctx context.Context, accountID, renterID uuid.UUID, monthKey billing.MonthKey, message string, now time.Time) (*billing.RenterEvent, error) {
	if _, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID); err != nil {
		return nil, err
	}

	event, err := billing.NewReminderSentEvent(accountID, renterID, monthKey, now, message)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save reminder event: %w", err)
	}

	s.logger.Info("reminder marked sent",
		zap.String("renter_id", renterID.String()),
		zap.String("month_key", monthKey.String()),
	)

	if err := s.eventBus.Publish(ctx, billing.NewReminderMarkedSentEvent(event)); err != nil {
		s.logger.Warn("failed to publish reminder event", zap.Error(err))
	}

	return event, nil
}

// ListForRenter returns a renter's ledger entries, newest first
func (s *LedgerService) ListForRenter(ctx context.Context, accountID, renterID uuid.UUID, filter shared.Filter) ([]billing.LedgerEntry, error) {
	if _, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID); err != nil {
		return nil, err
	}

	return s.ledgerRepo.FindForRenter(ctx, accountID, renterID, filter)
}
