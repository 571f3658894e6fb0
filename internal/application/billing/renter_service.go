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

// RenterService handles renter CRUD and the read-side views: month
// summaries, merged history, and the combined detail view
type RenterService struct {
	renterRepo     billing.RenterRepository
	ledgerRepo     billing.LedgerEntryRepository
	eventRepo      billing.RenterEventRepository
	billingService *BillingService
	eventBus       shared.EventPublisher
	logger         *zap.Logger
}

// NewRenterService creates a new RenterService
func NewRenterService(
	renterRepo billing.RenterRepository,
	ledgerRepo billing.LedgerEntryRepository,
	eventRepo billing.RenterEventRepository,
	billingService *BillingService,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *RenterService {
	return &RenterService{
		renterRepo:     renterRepo,
		ledgerRepo:     ledgerRepo,
		eventRepo:      eventRepo,
		billingService: billingService,
		eventBus:       eventBus,
		logger:         logger,
	}
}

// Create creates a new renter
func (s *RenterService) Create(ctx context.Context, accountID uuid.UUID, req CreateRenterRequest) (*RenterResponse, error) {
	renter, err := billing.NewRenter(accountID, req.Name, req.MonthlyRent, req.DueDayOfMonth)
	if err != nil {
		return nil, err
	}

	if req.Email != "" || req.Phone != "" {
		if err := renter.SetContact(req.Email, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Timezone != "" {
		if err := renter.SetTimezone(req.Timezone); err != nil {
			return nil, err
		}
	}
	if req.Color != "" {
		if err := renter.SetColor(req.Color); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		renter.SetNotes(req.Notes)
	}

	if err := s.renterRepo.Save(ctx, renter); err != nil {
		return nil, fmt.Errorf("failed to save renter: %w", err)
	}

	s.publishPending(ctx, renter)

	response := ToRenterResponse(renter)
	return &response, nil
}

// Update applies the provided field updates to a renter
func (s *RenterService) Update(ctx context.Context, accountID, renterID uuid.UUID, req UpdateRenterRequest) (*RenterResponse, error) {
	renter, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := renter.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil || req.Phone != nil {
		email := renter.Email
		phone := renter.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := renter.SetContact(email, phone); err != nil {
			return nil, err
		}
	}
	if req.MonthlyRent != nil {
		if err := renter.SetMonthlyRent(*req.MonthlyRent); err != nil {
			return nil, err
		}
	}
	if req.DueDayOfMonth != nil {
		if err := renter.SetDueDayOfMonth(*req.DueDayOfMonth); err != nil {
			return nil, err
		}
	}
	if req.Timezone != nil {
		if err := renter.SetTimezone(*req.Timezone); err != nil {
			return nil, err
		}
	}
	if req.Color != nil {
		if err := renter.SetColor(*req.Color); err != nil {
			return nil, err
		}
	}
	if req.GradeScore != nil && req.GradeLetter != nil {
		if err := renter.SetGrade(*req.GradeScore, *req.GradeLetter); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		renter.SetNotes(*req.Notes)
		if err := s.eventRepo.Save(ctx, billing.NewNoteUpdatedLog(accountID, renterID)); err != nil {
			s.logger.Warn("failed to log note update", zap.Error(err))
		}
	}

	if err := s.renterRepo.Save(ctx, renter); err != nil {
		return nil, fmt.Errorf("failed to update renter: %w", err)
	}

	s.publishPending(ctx, renter)

	response := ToRenterResponse(renter)
	return &response, nil
}

// GetByID retrieves a renter by ID
func (s *RenterService) GetByID(ctx context.Context, accountID, renterID uuid.UUID) (*RenterResponse, error) {
	renter, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
	if err != nil {
		return nil, err
	}
	response := ToRenterResponse(renter)
	return &response, nil
}

// ListByStatus lists renters with the given lifecycle status
func (s *RenterService) ListByStatus(ctx context.Context, accountID uuid.UUID, status billing.RenterStatus, filter shared.Filter) ([]RenterResponse, error) {
	renters, err := s.renterRepo.FindByStatus(ctx, accountID, status, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RenterResponse, len(renters))
	for i := range renters {
		responses[i] = ToRenterResponse(&renters[i])
	}
	return responses, nil
}

// ListWithSummaries lists active renters together with their current-month
// standing, the dashboard view
func (s *RenterService) ListWithSummaries(ctx context.Context, accountID uuid.UUID, now time.Time) ([]RenterSummaryResponse, error) {
	renters, err := s.renterRepo.FindByStatus(ctx, accountID, billing.RenterStatusActive, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]RenterSummaryResponse, 0, len(renters))
	for i := range renters {
		renter := &renters[i]
		monthKey := renter.CurrentMonthKey(now)

		entries, err := s.ledgerRepo.FindForRenterMonth(ctx, accountID, renter.ID, monthKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load ledger for renter %s: %w", renter.ID, err)
		}

		summary, err := billing.SummarizeMonth(renter, monthKey, entries, now)
		if err != nil {
			return nil, err
		}

		responses = append(responses, RenterSummaryResponse{
			Renter:  ToRenterResponse(renter),
			Summary: summary,
		})
	}

	return responses, nil
}

// GetMonthSummary computes a renter's standing for one billing month
func (s *RenterService) GetMonthSummary(ctx context.Context, accountID, renterID uuid.UUID, monthKey billing.MonthKey, now time.Time) (*billing.MonthSummary, error) {
	renter, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindForRenterMonth(ctx, accountID, renterID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	return billing.SummarizeMonth(renter, monthKey, entries, now)
}

// GetHistory returns the renter's merged timeline of charges, payments,
// and reminders, newest first
func (s *RenterService) GetHistory(ctx context.Context, accountID, renterID uuid.UUID, filter shared.Filter) ([]billing.HistoryItem, error) {
	if _, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID); err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindForRenter(ctx, accountID, renterID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	events, err := s.eventRepo.FindForRenter(ctx, accountID, renterID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load renter events: %w", err)
	}

	return billing.MergeHistory(entries, events), nil
}

// GetDetail assembles the full detail view for an open renter screen. It
// first makes sure the current month's charge exists, then loads the month
// summary and merged history so the caller sees a converged snapshot.
func (s *RenterService) GetDetail(ctx context.Context, accountID, renterID uuid.UUID, now time.Time) (*RenterDetailResponse, error) {
	chargeResult, err := s.billingService.EnsureMonthlyCharge(ctx, accountID, renterID, now)
	if err != nil {
		return nil, err
	}

	renter, err := s.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
	if err != nil {
		return nil, err
	}

	monthKey := renter.CurrentMonthKey(now)
	entries, err := s.ledgerRepo.FindForRenterMonth(ctx, accountID, renterID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	summary, err := billing.SummarizeMonth(renter, monthKey, entries, now)
	if err != nil {
		return nil, err
	}

	history, err := s.GetHistory(ctx, accountID, renterID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	return &RenterDetailResponse{
		Renter:       ToRenterResponse(renter),
		Summary:      summary,
		History:      history,
		ChargeResult: chargeResult,
	}, nil
}

func (s *RenterService) publishPending(ctx context.Context, renter *billing.Renter) {
	events := renter.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish renter events", zap.Error(err))
	}
	renter.ClearDomainEvents()
}
