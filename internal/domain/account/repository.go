package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
)

// BusinessProfileRepository defines the interface for profile persistence
type BusinessProfileRepository interface {
	// FindForAccount finds the account's profile, or returns shared.ErrNotFound
	FindForAccount(ctx context.Context, accountID uuid.UUID) (*BusinessProfile, error)

	// Save creates or updates the profile
	Save(ctx context.Context, profile *BusinessProfile) error
}

// InviteRepository defines the interface for invite persistence
type InviteRepository interface {
	// FindByID finds an invite by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invite, error)

	// FindByIDForAccount finds an invite by ID within an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Invite, error)

	// FindPendingByEmail finds the pending invite for a normalized email,
	// or returns shared.ErrNotFound
	FindPendingByEmail(ctx context.Context, accountID uuid.UUID, email string) (*Invite, error)

	// FindAllForAccount finds all invites for an account
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Invite, error)

	// Save creates or updates an invite
	Save(ctx context.Context, invite *Invite) error

	// Delete removes an invite
	Delete(ctx context.Context, id uuid.UUID) error
}
