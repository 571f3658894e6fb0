package billing

import (
	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
)

// Aggregate type constants for ledger records
const (
	AggregateTypeLedgerEntry = "LedgerEntry"
	AggregateTypeRenterEvent = "RenterEvent"
)

// Event type constants
const (
	EventTypeLedgerEntryCreated = "LedgerEntryCreated"
	EventTypeReminderMarkedSent = "ReminderMarkedSent"
)

// LedgerEntryCreatedEvent is published whenever a charge or payment lands in
// the ledger. Subscribers recompute the renter's month summary on receipt.
type LedgerEntryCreatedEvent struct {
	shared.BaseDomainEvent
	EntryID   uuid.UUID       `json:"entry_id"`
	RenterID  uuid.UUID       `json:"renter_id"`
	EntryType LedgerEntryType `json:"entry_type"`
	Amount    string          `json:"amount"`
	MonthKey  MonthKey        `json:"month_key"`
}

// NewLedgerEntryCreatedEvent creates a new LedgerEntryCreatedEvent
func NewLedgerEntryCreatedEvent(entry *LedgerEntry) *LedgerEntryCreatedEvent {
	return &LedgerEntryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLedgerEntryCreated, AggregateTypeLedgerEntry, entry.ID, entry.AccountID),
		EntryID:         entry.ID,
		RenterID:        entry.RenterID,
		EntryType:       entry.Type,
		Amount:          entry.Amount.String(),
		MonthKey:        entry.AppliesToMonthKey,
	}
}

// ReminderMarkedSentEvent is published when a payment reminder is logged
type ReminderMarkedSentEvent struct {
	shared.BaseDomainEvent
	RenterID uuid.UUID `json:"renter_id"`
	MonthKey MonthKey  `json:"month_key"`
	Message  string    `json:"message"`
}

// NewReminderMarkedSentEvent creates a new ReminderMarkedSentEvent
func NewReminderMarkedSentEvent(event *RenterEvent) *ReminderMarkedSentEvent {
	return &ReminderMarkedSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReminderMarkedSent, AggregateTypeRenterEvent, event.ID, event.AccountID),
		RenterID:        event.RenterID,
		MonthKey:        event.MonthKey,
		Message:         event.Message,
	}
}
