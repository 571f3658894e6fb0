package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"go.uber.org/zap"
)

// SummaryUpdate is pushed to watchers of an open renter view. Closed is set
// when the renter was archived or permanently removed; the view must close
// and release its watch.
type SummaryUpdate struct {
	RenterID uuid.UUID
	Summary  *billing.MonthSummary
	Closed   bool
}

// WatchFunc receives summary updates for a watched renter
type WatchFunc func(SummaryUpdate)

// SummaryProjection keeps current-month summaries converged as ledger
// entries land. It subscribes to ledger and lifecycle events, recomputes the
// affected renter's summary, and fans the result out to any watchers of that
// renter's detail view. Intermediate states may be skipped; watchers are
// only guaranteed the final snapshot.
type SummaryProjection struct {
	renterRepo billing.RenterRepository
	ledgerRepo billing.LedgerEntryRepository
	logger     *zap.Logger
	clock      func() time.Time

	mu       sync.RWMutex
	watchers map[uuid.UUID]map[int]WatchFunc
	nextID   int
}

// NewSummaryProjection creates a new SummaryProjection
func NewSummaryProjection(
	renterRepo billing.RenterRepository,
	ledgerRepo billing.LedgerEntryRepository,
	logger *zap.Logger,
) *SummaryProjection {
	return &SummaryProjection{
		renterRepo: renterRepo,
		ledgerRepo: ledgerRepo,
		logger:     logger,
		clock:      time.Now,
		watchers:   make(map[uuid.UUID]map[int]WatchFunc),
	}
}

// EventTypes returns the event types this handler is interested in
func (p *SummaryProjection) EventTypes() []string {
	return []string{
		billing.EventTypeLedgerEntryCreated,
		billing.EventTypeRenterStatusChanged,
		billing.EventTypeRenterDeleted,
	}
}

// Handle recomputes and fans out the renter's summary for the event
func (p *SummaryProjection) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *billing.LedgerEntryCreatedEvent:
		return p.refresh(ctx, e.AccountID(), e.RenterID)
	case *billing.RenterStatusChangedEvent:
		// Archiving closes any open view of the renter
		if e.NewStatus == billing.RenterStatusArchived {
			p.closeWatchers(e.RenterID)
			return nil
		}
		return p.refresh(ctx, e.AccountID(), e.RenterID)
	case *billing.RenterDeletedEvent:
		p.closeWatchers(e.RenterID)
		return nil
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

// Watch registers a callback for summary updates of one renter. The returned
// function releases the watch; callers switching views must invoke it before
// watching another renter.
func (p *SummaryProjection) Watch(renterID uuid.UUID, fn WatchFunc) (unwatch func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := p.nextID
	if p.watchers[renterID] == nil {
		p.watchers[renterID] = make(map[int]WatchFunc)
	}
	p.watchers[renterID][id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if fns, ok := p.watchers[renterID]; ok {
			delete(fns, id)
			if len(fns) == 0 {
				delete(p.watchers, renterID)
			}
		}
	}
}

// WatcherCount reports how many callbacks are registered for a renter
func (p *SummaryProjection) WatcherCount(renterID uuid.UUID) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.watchers[renterID])
}

func (p *SummaryProjection) refresh(ctx context.Context, accountID, renterID uuid.UUID) error {
	p.mu.RLock()
	watched := len(p.watchers[renterID]) > 0
	p.mu.RUnlock()
	if !watched {
		return nil
	}

	renter, err := p.renterRepo.FindByIDForAccount(ctx, accountID, renterID)
	if err != nil {
		return fmt.Errorf("failed to load renter for summary refresh: %w", err)
	}

	now := p.clock()
	monthKey := renter.CurrentMonthKey(now)
	entries, err := p.ledgerRepo.FindForRenterMonth(ctx, accountID, renterID, monthKey)
	if err != nil {
		return fmt.Errorf("failed to load ledger for summary refresh: %w", err)
	}

	summary, err := billing.SummarizeMonth(renter, monthKey, entries, now)
	if err != nil {
		return err
	}

	p.notify(renterID, SummaryUpdate{RenterID: renterID, Summary: summary})
	return nil
}

func (p *SummaryProjection) closeWatchers(renterID uuid.UUID) {
	p.notify(renterID, SummaryUpdate{RenterID: renterID, Closed: true})

	p.mu.Lock()
	delete(p.watchers, renterID)
	p.mu.Unlock()
}

func (p *SummaryProjection) notify(renterID uuid.UUID, update SummaryUpdate) {
	p.mu.RLock()
	fns := make([]WatchFunc, 0, len(p.watchers[renterID]))
	for _, fn := range p.watchers[renterID] {
		fns = append(fns, fn)
	}
	p.mu.RUnlock()

	for _, fn := range fns {
		fn(update)
	}
}
