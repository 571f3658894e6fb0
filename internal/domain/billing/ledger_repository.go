package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
)

// LedgerEntryRepository defines the interface for ledger persistence.
// The ledger is an append-mostly log: Save is only ever called for new
// entries, and deletion happens solely through the permanent-delete cascade.
type LedgerEntryRepository interface {
	// FindByID finds a ledger entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)

	// FindForRenter finds all ledger entries for a renter, newest first
	FindForRenter(ctx context.Context, accountID, renterID uuid.UUID, filter shared.Filter) ([]LedgerEntry, error)

	// FindForRenterMonth finds a renter's ledger entries for one billing month
	FindForRenterMonth(ctx context.Context, accountID, renterID uuid.UUID, monthKey MonthKey) ([]LedgerEntry, error)

	// FindChargeForMonth finds an existing charge for the renter and month,
	// or returns shared.ErrNotFound
	FindChargeForMonth(ctx context.Context, accountID, renterID uuid.UUID, monthKey MonthKey) (*LedgerEntry, error)

	// FindForMonth finds all ledger entries for an account in one billing month
	FindForMonth(ctx context.Context, accountID uuid.UUID, monthKey MonthKey) ([]LedgerEntry, error)

	// Save persists a new ledger entry
	Save(ctx context.Context, entry *LedgerEntry) error

	// DeleteBatchForRenter deletes up to limit entries for the renter and
	// returns how many rows were removed. Callers loop until zero.
	DeleteBatchForRenter(ctx context.Context, accountID, renterID uuid.UUID, limit int) (int64, error)

	// CountForRenter counts ledger entries for a renter
	CountForRenter(ctx context.Context, accountID, renterID uuid.UUID) (int64, error)
}
