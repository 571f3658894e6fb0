package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newBulkChargeFixture() (*MockRenterRepository, *MockLedgerEntryRepository, *MockEventBus, *BulkChargeService) {
	renterRepo := new(MockRenterRepository)
	ledgerRepo := new(MockLedgerEntryRepository)
	eventBus := new(MockEventBus)
	service := NewBulkChargeService(renterRepo, ledgerRepo, eventBus, zap.NewNop())
	return renterRepo, ledgerRepo, eventBus, service
}

func TestBulkChargeService_CreateChargeBulk_SkipsExistingMonthlyCharge(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	now := chicagoTime(2026, 3, 15)
	monthKey := billing.MonthKey("2026-03")
	rent := decimal.NewFromInt(900)

	renterRepo, ledgerRepo, eventBus, service := newBulkChargeFixture()

	// Five renters, all at the same rent; one already carries this month's
	// automatic charge
	renters := make([]*billing.Renter, 5)
	ids := make([]uuid.UUID, 5)
	for i := range renters {
		renters[i] = createTestRenter(accountID, rent, 1)
		ids[i] = renters[i].ID
		renterRepo.On("FindByIDForAccount", ctx, accountID, ids[i]).Return(renters[i], nil)
	}

	dueDate, err := renters[0].DueDateForMonth(monthKey)
	assert.NoError(t, err)
	existing, err := billing.NewCharge(accountID, ids[2], rent, "Monthly rent for 2026-03", monthKey, dueDate, accountID)
	assert.NoError(t, err)

	for i, id := range ids {
		entries := []billing.LedgerEntry{}
		if i == 2 {
			entries = append(entries, *existing)
		}
		ledgerRepo.On("FindForRenterMonth", ctx, accountID, id, monthKey).Return(entries, nil)
	}
	ledgerRepo.On("Save", ctx, mock.AnythingOfType("*billing.LedgerEntry")).Return(nil)
	eventBus.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := service.CreateChargeBulk(ctx, accountID, BulkChargeRequest{
		RenterIDs: ids,
		Amount:    rent,
		Note:      "Monthly rent for 2026-03",
		MonthKey:  monthKey,
	}, now)

	assert.NoError(t, err)
	assert.Equal(t, 4, result.Created)
	assert.Len(t, result.Entries, 4)
	assert.Len(t, result.Skipped, 1)
	assert.Equal(t, ids[2], result.Skipped[0].RenterID)
	assert.NotEmpty(t, result.Skipped[0].Reason)
	assert.Contains(t, result.Skipped[0].Reason, "2026-03")

	ledgerRepo.AssertNumberOfCalls(t, "Save", 4)
}

func TestBulkChargeService_CreateChargeBulk_MissingRenterSkipped(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	now := chicagoTime(2026, 3, 15)
	monthKey := billing.MonthKey("2026-03")

	renterRepo, ledgerRepo, eventBus, service := newBulkChargeFixture()

	renter := createTestRenter(accountID, decimal.NewFromInt(900), 1)
	missingID := uuid.New()

	renterRepo.On("FindByIDForAccount", ctx, accountID, renter.ID).Return(renter, nil)
	renterRepo.On("FindByIDForAccount", ctx, accountID, missingID).Return(nil, shared.ErrNotFound)
	ledgerRepo.On("Save", ctx, mock.AnythingOfType("*billing.LedgerEntry")).Return(nil)
	eventBus.On("Publish", ctx, mock.Anything).Return(nil)

	// A late-fee note never triggers the monthly duplicate heuristic, so no
	// existing-charge lookup happens
	result, err := service.CreateChargeBulk(ctx, accountID, BulkChargeRequest{
		RenterIDs: []uuid.UUID{renter.ID, missingID},
		Amount:    decimal.NewFromInt(50),
		Note:      "Late fee",
		MonthKey:  monthKey,
	}, now)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Len(t, result.Skipped, 1)
	assert.Equal(t, missingID, result.Skipped[0].RenterID)
	assert.Equal(t, "renter not found", result.Skipped[0].Reason)

	ledgerRepo.AssertNotCalled(t, "FindForRenterMonth", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBulkChargeService_CreateChargeBulk_DifferentAmountNotSuppressed(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	now := chicagoTime(2026, 3, 15)
	monthKey := billing.MonthKey("2026-03")

	renterRepo, ledgerRepo, eventBus, service := newBulkChargeFixture()

	renter := createTestRenter(accountID, decimal.NewFromInt(900), 1)
	renterRepo.On("FindByIDForAccount", ctx, accountID, renter.ID).Return(renter, nil)
	ledgerRepo.On("Save", ctx, mock.AnythingOfType("*billing.LedgerEntry")).Return(nil)
	eventBus.On("Publish", ctx, mock.Anything).Return(nil)

	// Note says monthly but the amount differs from the renter's rent, so
	// the duplicate heuristic stays out of the way
	result, err := service.CreateChargeBulk(ctx, accountID, BulkChargeRequest{
		RenterIDs: []uuid.UUID{renter.ID},
		Amount:    decimal.NewFromInt(450),
		Note:      "Monthly storage fee",
		MonthKey:  monthKey,
	}, now)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Empty(t, result.Skipped)
}

func TestBulkChargeService_CreateChargeBulk_PartialResultOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	now := chicagoTime(2026, 3, 15)
	monthKey := billing.MonthKey("2026-03")

	renterRepo, ledgerRepo, eventBus, service := newBulkChargeFixture()

	first := createTestRenter(accountID, decimal.NewFromInt(900), 1)
	second := createTestRenter(accountID, decimal.NewFromInt(900), 1)
	renterRepo.On("FindByIDForAccount", ctx, accountID, first.ID).Return(first, nil)
	renterRepo.On("FindByIDForAccount", ctx, accountID, second.ID).Return(second, nil)

	ledgerRepo.On("Save", ctx, mock.AnythingOfType("*billing.LedgerEntry")).Return(nil).Once()
	ledgerRepo.On("Save", ctx, mock.AnythingOfType("*billing.LedgerEntry")).Return(assert.AnError).Once()
	eventBus.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := service.CreateChargeBulk(ctx, accountID, BulkChargeRequest{
		RenterIDs: []uuid.UUID{first.ID, second.ID},
		Amount:    decimal.NewFromInt(25),
		Note:      "Cleaning fee",
		MonthKey:  monthKey,
	}, now)

	// The error surfaces but the partial result still says what landed
	assert.Error(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 1, result.Created)
	assert.Len(t, result.Entries, 1)
	assert.Equal(t, first.ID, result.Entries[0].RenterID)
}

func TestBulkChargeService_CreateChargeBulk_ValidatesRequest(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	now := chicagoTime(2026, 3, 15)

	_, _, _, service := newBulkChargeFixture()

	tests := []struct {
		name string
		req  BulkChargeRequest
	}{
		{
			name: "no renters",
			req:  BulkChargeRequest{Amount: decimal.NewFromInt(10), MonthKey: "2026-03"},
		},
		{
			name: "zero amount",
			req:  BulkChargeRequest{RenterIDs: []uuid.UUID{uuid.New()}, MonthKey: "2026-03"},
		},
		{
			name: "negative amount",
			req:  BulkChargeRequest{RenterIDs: []uuid.UUID{uuid.New()}, Amount: decimal.NewFromInt(-5), MonthKey: "2026-03"},
		},
		{
			name: "bad month key",
			req:  BulkChargeRequest{RenterIDs: []uuid.UUID{uuid.New()}, Amount: decimal.NewFromInt(10), MonthKey: "2026-13"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.CreateChargeBulk(ctx, accountID, tt.req, now)
			assert.Error(t, err)
			assert.Nil(t, result)

			var domainErr *shared.DomainError
			assert.ErrorAs(t, err, &domainErr)
		})
	}
}
