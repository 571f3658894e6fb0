package account

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
)

// InviteStatus represents the status of an invite
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusRevoked  InviteStatus = "revoked"
	InviteStatusAccepted InviteStatus = "accepted"
)

// Invite represents an invitation for another user to join the account.
// At most one pending invite may exist per normalized email per account;
// the invite service and a partial unique index enforce this together.
type Invite struct {
	shared.AccountAggregateRoot
	Email        string       `gorm:"type:varchar(200);not null;index"`
	Status       InviteStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedByUID uuid.UUID    `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Invite) TableName() string {
	return "invites"
}

// NewInvite creates a pending invite with a normalized email
func NewInvite(accountID uuid.UUID, email string, createdBy uuid.UUID) (*Invite, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	return &Invite{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		Email:                normalized,
		Status:               InviteStatusPending,
		CreatedByUID:         createdBy,
	}, nil
}

// Revoke cancels a pending invite
func (i *Invite) Revoke() error {
	if i.Status != InviteStatusPending {
		return shared.NewDomainError("NOT_PENDING", "Only pending invites can be revoked")
	}

	i.Status = InviteStatusRevoked
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Accept marks a pending invite as accepted
func (i *Invite) Accept() error {
	if i.Status != InviteStatusPending {
		return shared.NewDomainError("NOT_PENDING", "Only pending invites can be accepted")
	}

	i.Status = InviteStatusAccepted
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IsPending returns true if the invite is still open
func (i *Invite) IsPending() bool {
	return i.Status == InviteStatusPending
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail lowercases and trims an email address, validating its shape.
// All invite uniqueness checks run against the normalized form.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(normalized) > 200 || !emailPattern.MatchString(normalized) {
		return "", shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return normalized, nil
}
