package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultDeleteBatchSize bounds each delete pass of the permanent-delete
// cascade. The backing store caps batch writes, so the cascade works in
// fixed-size slices and re-queries between passes.
const DefaultDeleteBatchSize = 200

// PermanentDeleteResult reports what a permanent delete cascade removed
type PermanentDeleteResult struct {
	DeletedRenter bool  `json:"deleted_renter"`
	DeletedEvents int64 `json:"deleted_events"`
	DeletedLedger int64 `json:"deleted_ledger"`
}

// LifecycleService drives the renter lifecycle state machine:
// active -> archived (reversible), archived -> permanently deleted (terminal,
// cascading into the ledger and event log).
type LifecycleService struct {
	renterRepo      billing.RenterRepository
	ledgerRepo      billing.LedgerEntryRepository
	eventRepo       billing.RenterEventRepository
	eventBus        shared.EventPublisher
	logger          *zap.Logger
	deleteBatchSize int
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	renterRepo billing.RenterRepository,
	ledgerRepo billing.LedgerEntryRepository,
	eventRepo billing.RenterEventRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
	deleteBatchSize int,
) *LifecycleService {
	if deleteBatchSize <= 0 {
		deleteBatchSize = DefaultDeleteBatchSize
	}
	return &LifecycleService{
		renterRepo:      renterRepo,
		ledgerRepo:      ledgerRepo,
		eventRepo:       eventRepo,
		eventBus:        eventBus,
		logger:          logger,
		deleteBatchSize: deleteBatchSize,
	}
}

// Archive soft-deletes a renter. Ledger entries and events stay untouched.
func (s *LifecycleService) Archive(ctx context.Context, accountID, renterID uuid.UUID) error {
	renter, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
	if err != nil {
		return err
	}

	oldStatus := renter.Status
	if err := renter.Archive(); err != nil {
		return err
	}

	if err := s.renterRepo.Save(ctx, renter); err != nil {
		return fmt.Errorf("failed to archive renter: %w", err)
	}

	if err := s.eventRepo.Save(ctx, billing.NewStatusChangedLog(accountID, renterID, oldStatus, renter.Status)); err != nil {
		s.logger.Warn("failed to log status change", zap.Error(err))
	}

	s.publishPending(ctx, renter)
	s.logger.Info("renter archived", zap.String("renter_id", renterID.String()))

	return nil
}

// Restore reactivates an archived renter, reversing only the status flag
// and clearing any pending-delete marker.
func (s *LifecycleService) Restore(ctx context.Context, accountID, renterID uuid.UUID) error {
	renter, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
	if err != nil {
		return err
	}

	oldStatus := renter.Status
	if err := renter.Restore(); err != nil {
		return err
	}

	if err := s.renterRepo.Save(ctx, renter); err != nil {
		return fmt.Errorf("failed to restore renter: %w", err)
	}

	if err := s.eventRepo.Save(ctx, billing.NewStatusChangedLog(accountID, renterID, oldStatus, renter.Status)); err != nil {
		s.logger.Warn("failed to log status change", zap.Error(err))
	}

	s.publishPending(ctx, renter)
	s.logger.Info("renter restored", zap.String("renter_id", renterID.String()))

	return nil
}

// PermanentlyDelete removes an archived renter and every ledger entry and
// event attached to it. The sequence is crash-recoverable: the renter is
// stamped with a pending-delete marker before any rows are removed, so an
// interrupted cascade can be found and resumed via
// RenterRepository.FindPendingPermanentDelete.
//
// Deletion runs in bounded batches. Each batch call re-queries matching rows
// because deletion changes the result set.
func (s *LifecycleService) PermanentlyDelete(ctx context.Context, accountID, renterID uuid.UUID, now time.Time) (*PermanentDeleteResult, error) {
	renter, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
	if err != nil {
		return nil, err
	}

	if err := renter.MarkPendingPermanentDelete(now); err != nil {
		return nil, err
	}
	if err := s.renterRepo.Save(ctx, renter); err != nil {
		return nil, fmt.Errorf("failed to stamp pending delete: %w", err)
	}

	result := &PermanentDeleteResult{}

	for {
		deleted, err := s.eventRepo.DeleteBatchForRenter(ctx, accountID, renterID, s.deleteBatchSize)
		if err != nil {
			return result, fmt.Errorf("failed to delete renter events: %w", err)
		}
		result.DeletedEvents += deleted
		if deleted == 0 {
			break
		}
	}

	for {
		deleted, err := s.ledgerRepo.DeleteBatchForRenter(ctx, accountID, renterID, s.deleteBatchSize)
		if err != nil {
			return result, fmt.Errorf("failed to delete ledger entries: %w", err)
		}
		result.DeletedLedger += deleted
		if deleted == 0 {
			break
		}
	}

	if err := s.renterRepo.Delete(ctx, renterID); err != nil {
		return result, fmt.Errorf("failed to delete renter: %w", err)
	}
	result.DeletedRenter = true

	s.logger.Info("renter permanently deleted",
		zap.String("renter_id", renterID.String()),
		zap.Int64("deleted_ledger", result.DeletedLedger),
		zap.Int64("deleted_events", result.DeletedEvents),
	)

	// Notify subscribers only after the whole cascade completed
	if err := s.eventBus.Publish(ctx, billing.NewRenterDeletedEvent(renter, int(result.DeletedLedger), int(result.DeletedEvents))); err != nil {
		s.logger.Warn("failed to publish renter deleted event", zap.Error(err))
	}

	return result, nil
}

func (s *LifecycleService) publishPending(ctx context.Context, renter *billing.Renter) {
	events := renter.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish renter events", zap.Error(err))
	}
	renter.ClearDomainEvents()
}
