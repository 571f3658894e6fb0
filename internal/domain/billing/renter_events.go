package billing

import (
	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRenter = "Renter"

// Event type constants
const (
	EventTypeRenterCreated       = "RenterCreated"
	EventTypeRenterUpdated       = "RenterUpdated"
	EventTypeRenterStatusChanged = "RenterStatusChanged"
	EventTypeRenterDeleted       = "RenterDeleted"
)

// RenterCreatedEvent is published when a new renter is created
type RenterCreatedEvent struct {
	shared.BaseDomainEvent
	RenterID uuid.UUID `json:"renter_id"`
	Name     string    `json:"name"`
}

// NewRenterCreatedEvent creates a new RenterCreatedEvent
func NewRenterCreatedEvent(renter *Renter) *RenterCreatedEvent {
	return &RenterCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRenterCreated, AggregateTypeRenter, renter.ID, renter.AccountID),
		RenterID:        renter.ID,
		Name:            renter.Name,
	}
}

// RenterUpdatedEvent is published when a renter's billing details change
type RenterUpdatedEvent struct {
	shared.BaseDomainEvent
	RenterID    uuid.UUID `json:"renter_id"`
	Name        string    `json:"name"`
	MonthlyRent string    `json:"monthly_rent"`
}

// NewRenterUpdatedEvent creates a new RenterUpdatedEvent
func NewRenterUpdatedEvent(renter *Renter) *RenterUpdatedEvent {
	return &RenterUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRenterUpdated, AggregateTypeRenter, renter.ID, renter.AccountID),
		RenterID:        renter.ID,
		Name:            renter.Name,
		MonthlyRent:     renter.MonthlyRent.String(),
	}
}

// RenterStatusChangedEvent is published when a renter is archived or restored
type RenterStatusChangedEvent struct {
	shared.BaseDomainEvent
	RenterID  uuid.UUID    `json:"renter_id"`
	Name      string       `json:"name"`
	OldStatus RenterStatus `json:"old_status"`
	NewStatus RenterStatus `json:"new_status"`
}

// NewRenterStatusChangedEvent creates a new RenterStatusChangedEvent
func NewRenterStatusChangedEvent(renter *Renter, oldStatus, newStatus RenterStatus) *RenterStatusChangedEvent {
	return &RenterStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRenterStatusChanged, AggregateTypeRenter, renter.ID, renter.AccountID),
		RenterID:        renter.ID,
		Name:            renter.Name,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// RenterDeletedEvent is published after a permanent delete cascade completes.
// Subscribers holding open views of the renter must close them on receipt.
type RenterDeletedEvent struct {
	shared.BaseDomainEvent
	RenterID      uuid.UUID `json:"renter_id"`
	Name          string    `json:"name"`
	DeletedLedger int       `json:"deleted_ledger"`
	DeletedEvents int       `json:"deleted_events"`
}

// NewRenterDeletedEvent creates a new RenterDeletedEvent
func NewRenterDeletedEvent(renter *Renter, deletedLedger, deletedEvents int) *RenterDeletedEvent {
	return &RenterDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRenterDeleted, AggregateTypeRenter, renter.ID, renter.AccountID),
		RenterID:        renter.ID,
		Name:            renter.Name,
		DeletedLedger:   deletedLedger,
		DeletedEvents:   deletedEvents,
	}
}
