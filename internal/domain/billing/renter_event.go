package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
)

// RenterEventType represents the type of a logged renter event
type RenterEventType string

const (
	// RenterEventTypeReminderSent records that a payment reminder went out
	RenterEventTypeReminderSent RenterEventType = "reminder_marked_sent"
	// RenterEventTypeStatusChanged records an archive/restore transition
	RenterEventTypeStatusChanged RenterEventType = "status_changed"
	// RenterEventTypeNoteUpdated records a change to the renter's notes
	RenterEventTypeNoteUpdated RenterEventType = "note_updated"
)

// IsValid returns true if the event type is valid
func (t RenterEventType) IsValid() bool {
	switch t {
	case RenterEventTypeReminderSent, RenterEventTypeStatusChanged, RenterEventTypeNoteUpdated:
		return true
	}
	return false
}

// RenterEvent is an immutable log record attached to a renter, such as a
// sent payment reminder. Like ledger entries, the only removal path is the
// permanent-delete cascade.
type RenterEvent struct {
	shared.BaseEntity
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RenterID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type      RenterEventType `gorm:"type:varchar(30);not null"`
	MonthKey  MonthKey        `gorm:"type:varchar(7);index"`
	SentAt    *time.Time
	Message   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RenterEvent) TableName() string {
	return "renter_events"
}

// NewReminderSentEvent records that a payment reminder was sent for a month
func NewReminderSentEvent(accountID, renterID uuid.UUID, monthKey MonthKey, sentAt time.Time, message string) (*RenterEvent, error) {
	if !monthKey.IsValid() {
		return nil, shared.NewDomainError("INVALID_MONTH_KEY",
			fmt.Sprintf("Month key must be in YYYY-MM format, got %q", monthKey))
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Reminder message cannot be empty")
	}

	return &RenterEvent{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		RenterID:   renterID,
		Type:       RenterEventTypeReminderSent,
		MonthKey:   monthKey,
		SentAt:     &sentAt,
		Message:    message,
	}, nil
}

// NewStatusChangedLog records an archive/restore transition in the history log
func NewStatusChangedLog(accountID, renterID uuid.UUID, oldStatus, newStatus RenterStatus) *RenterEvent {
	return &RenterEvent{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		RenterID:   renterID,
		Type:       RenterEventTypeStatusChanged,
		Message:    fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus),
	}
}

// NewNoteUpdatedLog records that the renter's notes were edited
func NewNoteUpdatedLog(accountID, renterID uuid.UUID) *RenterEvent {
	return &RenterEvent{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		RenterID:   renterID,
		Type:       RenterEventTypeNoteUpdated,
		Message:    "Notes updated",
	}
}

// RenterEventRepository defines the interface for renter event persistence
type RenterEventRepository interface {
	// FindForRenter finds all events for a renter, newest first
	FindForRenter(ctx context.Context, accountID, renterID uuid.UUID, filter shared.Filter) ([]RenterEvent, error)

	// FindForRenterMonth finds a renter's events for one billing month
	FindForRenterMonth(ctx context.Context, accountID, renterID uuid.UUID, monthKey MonthKey) ([]RenterEvent, error)

	// Save persists a new renter event
	Save(ctx context.Context, event *RenterEvent) error

	// DeleteBatchForRenter deletes up to limit events for the renter and
	// returns how many rows were removed. Callers loop until zero.
	DeleteBatchForRenter(ctx context.Context, accountID, renterID uuid.UUID, limit int) (int64, error)

	// CountForRenter counts events for a renter
	CountForRenter(ctx context.Context, accountID, renterID uuid.UUID) (int64, error)
}
