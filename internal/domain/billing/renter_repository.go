package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
)

// RenterRepository defines the interface for renter persistence
type RenterRepository interface {
	// FindByID finds a renter by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Renter, error)

	// FindByIDForAccount finds a renter by ID within an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Renter, error)

	// FindAllForAccount finds all renters for an account
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Renter, error)

	// FindByStatus finds renters by lifecycle status for an account
	FindByStatus(ctx context.Context, accountID uuid.UUID, status RenterStatus, filter shared.Filter) ([]Renter, error)

	// FindByIDs finds multiple renters by their IDs within an account
	FindByIDs(ctx context.Context, accountID uuid.UUID, ids []uuid.UUID) ([]Renter, error)

	// FindPendingPermanentDelete finds renters whose delete cascade was
	// stamped but may not have completed
	FindPendingPermanentDelete(ctx context.Context, accountID uuid.UUID) ([]Renter, error)

	// Save creates or updates a renter
	Save(ctx context.Context, renter *Renter) error

	// Delete removes the renter record. Callers are responsible for
	// cascading ledger entries and events first.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus counts renters by status for an account
	CountByStatus(ctx context.Context, accountID uuid.UUID, status RenterStatus) (int64, error)
}
