package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// monthlyNoteMarker is the substring that flags a charge note as an
// automatic monthly rent charge. Duplicate suppression keys off it, which
// makes the check content-dependent; see DESIGN.md for the tradeoff.
const monthlyNoteMarker = "monthly"

// BulkChargeRequest describes an ad hoc charge applied to many renters
type BulkChargeRequest struct {
	RenterIDs []uuid.UUID
	Amount    decimal.Decimal
	Note      string
	MonthKey  billing.MonthKey
}

// SkippedCharge explains why one renter was left out of a bulk charge run
type SkippedCharge struct {
	RenterID uuid.UUID `json:"renter_id"`
	Reason   string    `json:"reason"`
}

// BulkChargeResult reports what a bulk charge run did
type BulkChargeResult struct {
	Created int                    `json:"created"`
	Skipped []SkippedCharge        `json:"skipped"`
	Entries []*billing.LedgerEntry `json:"entries"`
}

// BulkChargeService creates charges for many renters at once, suppressing
// likely duplicate monthly rent charges
type BulkChargeService struct {
	renterRepo billing.RenterRepository
	ledgerRepo billing.LedgerEntryRepository
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewBulkChargeService creates a new BulkChargeService
func NewBulkChargeService(
	renterRepo billing.RenterRepository,
	ledgerRepo billing.LedgerEntryRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *BulkChargeService {
	return &BulkChargeService{
		renterRepo: renterRepo,
		ledgerRepo: ledgerRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// CreateChargeBulk creates the charge for each renter in the request.
// Renters that do not exist are skipped with a reason rather than failing
// the whole run. When the charge looks like an automatic monthly rent charge
// (current month, note containing "monthly", amount matching the renter's
// rent) and one already exists, the renter is skipped as a likely duplicate.
//
// A persistence failure mid-run returns the partial result alongside the
// error, so the caller knows exactly which entries landed.
func (s *BulkChargeService) CreateChargeBulk(ctx context.Context, accountID uuid.UUID, req BulkChargeRequest, now time.Time) (*BulkChargeResult, error) {
	if err := validateBulkRequest(req); err != nil {
		return nil, err
	}

	result := &BulkChargeResult{
		Skipped: make([]SkippedCharge, 0),
		Entries: make([]*billing.LedgerEntry, 0, len(req.RenterIDs)),
	}

	for _, renterID := range req.RenterIDs {
		renter, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Skipped = append(result.Skipped, SkippedCharge{
					RenterID: renterID,
					Reason:   "renter not found",
				})
				continue
			}
			return result, fmt.Errorf("failed to load renter %s: %w", renterID, err)
		}

		skip, reason, err := s.isLikelyDuplicate(ctx, accountID, renter, req, now)
		if err != nil {
			return result, err
		}
		if skip {
			result.Skipped = append(result.Skipped, SkippedCharge{RenterID: renterID, Reason: reason})
			continue
		}

		dueDate, err := renter.DueDateForMonth(req.MonthKey)
		if err != nil {
			return result, err
		}

		entry, err := billing.NewCharge(accountID, renterID, req.Amount, req.Note, req.MonthKey, dueDate, accountID)
		if err != nil {
			return result, err
		}

		if err := s.ledgerRepo.Save(ctx, entry); err != nil {
			return result, fmt.Errorf("failed to save charge for renter %s: %w", renterID, err)
		}

		result.Created++
		result.Entries = append(result.Entries, entry)

		if err := s.eventBus.Publish(ctx, billing.NewLedgerEntryCreatedEvent(entry)); err != nil {
			s.logger.Warn("failed to publish ledger event", zap.Error(err))
		}
	}

	s.logger.Info("bulk charge run finished",
		zap.String("month_key", req.MonthKey.String()),
		zap.Int("created", result.Created),
		zap.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

// isLikelyDuplicate applies the monthly-rent duplicate heuristic. It only
// fires when the requested charge looks like this month's automatic rent
// charge for the renter.
func (s *BulkChargeService) isLikelyDuplicate(ctx context.Context, accountID uuid.UUID, renter *billing.Renter, req BulkChargeRequest, now time.Time) (bool, string, error) {
	if req.MonthKey != renter.CurrentMonthKey(now) {
		return false, "", nil
	}
	if !strings.Contains(strings.ToLower(req.Note), monthlyNoteMarker) {
		return false, "", nil
	}
	if !req.Amount.Equal(renter.MonthlyRent) {
		return false, "", nil
	}

	entries, err := s.ledgerRepo.FindForRenterMonth(ctx, accountID, renter.ID, req.MonthKey)
	if err != nil {
		return false, "", fmt.Errorf("failed to check existing charges for renter %s: %w", renter.ID, err)
	}

	for i := range entries {
		if entries[i].IsCharge() && strings.Contains(strings.ToLower(entries[i].Note), monthlyNoteMarker) {
			reason := fmt.Sprintf("%s already has a monthly charge for %s", renter.Name, req.MonthKey)
			return true, reason, nil
		}
	}

	return false, "", nil
}

func validateBulkRequest(req BulkChargeRequest) error {
	if len(req.RenterIDs) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "At least one renter is required")
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !req.MonthKey.IsValid() {
		return shared.NewDomainError("INVALID_MONTH_KEY",
			fmt.Sprintf("Month key must be in YYYY-MM format, got %q", req.MonthKey))
	}
	return nil
}
