package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories shared by the billing application tests
// =============================================================================

// MockRenterRepository is a mock implementation of billing.RenterRepository
type MockRenterRepository struct {
	mock.Mock
}

func (m *MockRenterRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Renter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Renter), args.Error(1)
}

func (m *MockRenterRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*billing.Renter, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Renter), args.Error(1)
}

func (m *MockRenterRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]billing.Renter, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).([]billing.Renter), args.Error(1)
}

func (m *MockRenterRepository) FindByStatus(ctx context.Context, accountID uuid.UUID, status billing.RenterStatus, filter shared.Filter) ([]billing.Renter, error) {
	args := m.Called(ctx, accountID, status, filter)
	return args.Get(0).([]billing.Renter), args.Error(1)
}

func (m *MockRenterRepository) FindByIDs(ctx context.Context, accountID uuid.UUID, ids []uuid.UUID) ([]billing.Renter, error) {
	args := m.Called(ctx, accountID, ids)
	return args.Get(0).([]billing.Renter), args.Error(1)
}

func (m *MockRenterRepository) FindPendingPermanentDelete(ctx context.Context, accountID uuid.UUID) ([]billing.Renter, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]billing.Renter), args.Error(1)
}

func (m *MockRenterRepository) Save(ctx context.Context, renter *billing.Renter) error {
	args := m.Called(ctx, renter)
	return args.Error(0)
}

func (m *MockRenterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRenterRepository) CountByStatus(ctx context.Context, accountID uuid.UUID, status billing.RenterStatus) (int64, error) {
	args := m.Called(ctx, accountID, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerEntryRepository is a mock implementation of billing.LedgerEntryRepository
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindForRenter(ctx context.Context, accountID, renterID uuid.UUID, filter shared.Filter) ([]billing.LedgerEntry, error) {
	args := m.Called(ctx, accountID, renterID, filter)
	return args.Get(0).([]billing.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindForRenterMonth(ctx context.Context, accountID, renterID uuid.UUID, monthKey billing.MonthKey) ([]billing.LedgerEntry, error) {
	args := m.Called(ctx, accountID, renterID, monthKey)
	return args.Get(0).([]billing.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindChargeForMonth(ctx context.Context, accountID, renterID uuid.UUID, monthKey billing.MonthKey) (*billing.LedgerEntry, error) {
	args := m.Called(ctx, accountID, renterID, monthKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindForMonth(ctx context.Context, accountID uuid.UUID, monthKey billing.MonthKey) ([]billing.LedgerEntry, error) {
	args := m.Called(ctx, accountID, monthKey)
	return args.Get(0).([]billing.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) Save(ctx context.Context, entry *billing.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) DeleteBatchForRenter(ctx context.Context, accountID, renterID uuid.UUID, limit int) (int64, error) {
	args := m.Called(ctx, accountID, renterID, limit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerEntryRepository) CountForRenter(ctx context.Context, accountID, renterID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID, renterID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRenterEventRepository is a mock implementation of billing.RenterEventRepository
type MockRenterEventRepository struct {
	mock.Mock
}

func (m *MockRenterEventRepository) FindForRenter(ctx context.Context, accountID, renterID uuid.UUID, filter shared.Filter) ([]billing.RenterEvent, error) {
	args := m.Called(ctx, accountID, renterID, filter)
	return args.Get(0).([]billing.RenterEvent), args.Error(1)
}

func (m *MockRenterEventRepository) FindForRenterMonth(ctx context.Context, accountID, renterID uuid.UUID, monthKey billing.MonthKey) ([]billing.RenterEvent, error) {
	args := m.Called(ctx, accountID, renterID, monthKey)
	return args.Get(0).([]billing.RenterEvent), args.Error(1)
}

func (m *MockRenterEventRepository) Save(ctx context.Context, event *billing.RenterEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRenterEventRepository) DeleteBatchForRenter(ctx context.Context, accountID, renterID uuid.UUID, limit int) (int64, error) {
	args := m.Called(ctx, accountID, renterID, limit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRenterEventRepository) CountForRenter(ctx context.Context, accountID, renterID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID, renterID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventBus is a mock implementation of shared.EventPublisher that also
// records every published event for inspection
type MockEventBus struct {
	mock.Mock
	Published []shared.DomainEvent
}

func (m *MockEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	m.Published = append(m.Published, events...)
	return args.Error(0)
}
