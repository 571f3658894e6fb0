package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newRenterFixture() (*MockRenterRepository, *MockLedgerEntryRepository, *MockRenterEventRepository, *MockEventBus, *RenterService) {
	renterRepo := new(MockRenterRepository)
	ledgerRepo := new(MockLedgerEntryRepository)
	eventRepo := new(MockRenterEventRepository)
	eventBus := new(MockEventBus)
	billingService := NewBillingService(renterRepo, ledgerRepo, eventBus, zap.NewNop())
	service := NewRenterService(renterRepo, ledgerRepo, eventRepo, billingService, eventBus, zap.NewNop())
	return renterRepo, ledgerRepo, eventRepo, eventBus, service
}

func TestRenterService_Create(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	renterRepo, _, _, eventBus, service := newRenterFixture()
	renterRepo.On("Save", ctx, mock.AnythingOfType("*billing.Renter")).Return(nil)
	eventBus.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := service.Create(ctx, accountID, CreateRenterRequest{
		Name:          "April Jones",
		Email:         "april@example.com",
		MonthlyRent:   decimal.NewFromInt(900),
		DueDayOfMonth: 1,
	})

	assert.NoError(t, err)
	assert.Equal(t, "April Jones", resp.Name)
	assert.Equal(t, billing.RenterStatusActive, resp.Status)
	assert.Equal(t, billing.DefaultTimezone, resp.Timezone)
	assert.Equal(t, 1, resp.DueDayOfMonth)
	assert.NotEmpty(t, eventBus.Published)
}

func TestRenterService_Create_InvalidInput(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	renterRepo, _, _, _, service := newRenterFixture()

	tests := []struct {
		name string
		req  CreateRenterRequest
	}{
		{
			name: "empty name",
			req:  CreateRenterRequest{MonthlyRent: decimal.NewFromInt(900), DueDayOfMonth: 1},
		},
		{
			name: "due day out of range",
			req:  CreateRenterRequest{Name: "April", MonthlyRent: decimal.NewFromInt(900), DueDayOfMonth: 31},
		},
		{
			name: "negative rent",
			req:  CreateRenterRequest{Name: "April", MonthlyRent: decimal.NewFromInt(-1), DueDayOfMonth: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.Create(ctx, accountID, tt.req)
			assert.Error(t, err)
			assert.Nil(t, resp)
		})
	}

	renterRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRenterService_Update_NotesLogged(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	renter := createTestRenter(accountID, decimal.NewFromInt(900), 1)

	renterRepo, _, eventRepo, eventBus, service := newRenterFixture()
	renterRepo.On("FindByIDForAccount", ctx, accountID, renter.ID).Return(renter, nil)
	renterRepo.On("Save", ctx, renter).Return(nil)
	eventRepo.On("Save", ctx, mock.AnythingOfType("*billing.RenterEvent")).Return(nil)
	eventBus.On("Publish", ctx, mock.Anything).Return(nil)

	notes := "Prefers text reminders"
	resp, err := service.Update(ctx, accountID, renter.ID, UpdateRenterRequest{Notes: &notes})

	assert.NoError(t, err)
	assert.Equal(t, notes, resp.Notes)
	eventRepo.AssertCalled(t, "Save", ctx, mock.MatchedBy(func(e *billing.RenterEvent) bool {
		return e.Type == billing.RenterEventTypeNoteUpdated
	}))
}

func TestRenterService_GetHistory_MergesLedgerAndEvents(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	renter := createTestRenter(accountID, decimal.NewFromInt(900), 1)
	monthKey := billing.MonthKey("2026-03")

	renterRepo, ledgerRepo, eventRepo, _, service := newRenterFixture()

	dueDate, _ := renter.DueDateForMonth(monthKey)
	charge, _ := billing.NewCharge(accountID, renter.ID, decimal.NewFromInt(900), "Monthly rent for 2026-03", monthKey, dueDate, accountID)
	payment, _ := billing.NewPayment(accountID, renter.ID, decimal.NewFromInt(900), "cash", "", monthKey, accountID)
	payment.CreatedAt = charge.CreatedAt.Add(48 * time.Hour)
	reminder, _ := billing.NewReminderSentEvent(accountID, renter.ID, monthKey, charge.CreatedAt.Add(24*time.Hour), "Reminder sent")
	reminder.CreatedAt = *reminder.SentAt

	renterRepo.On("FindByIDForAccount", ctx, accountID, renter.ID).Return(renter, nil)
	ledgerRepo.On("FindForRenter", ctx, accountID, renter.ID, mock.Anything).
		Return([]billing.LedgerEntry{*charge, *payment}, nil)
	eventRepo.On("FindForRenter", ctx, accountID, renter.ID, mock.Anything).
		Return([]billing.RenterEvent{*reminder}, nil)

	history, err := service.GetHistory(ctx, accountID, renter.ID, shared.DefaultFilter())
	assert.NoError(t, err)
	assert.Len(t, history, 3)

	// Newest first: payment, then reminder, then charge
	assert.Equal(t, billing.HistoryKindPayment, history[0].Kind)
	assert.Equal(t, billing.HistoryKindReminder, history[1].Kind)
	assert.Equal(t, billing.HistoryKindCharge, history[2].Kind)
}

func TestRenterService_GetDetail_EnsuresChargeFirst(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	now := chicagoTime(2026, 3, 15)
	monthKey := billing.MonthKey("2026-03")

	renter := createTestRenter(accountID, decimal.NewFromInt(900), 1)

	renterRepo, ledgerRepo, eventRepo, eventBus, service := newRenterFixture()

	renterRepo.On("FindByIDForAccount", ctx, accountID, renter.ID).Return(renter, nil)
	ledgerRepo.On("FindChargeForMonth", ctx, accountID, renter.ID, monthKey).
		Return(nil, shared.ErrNotFound)
	eventBus.On("Publish", ctx, mock.Anything).Return(nil)

	var saved *billing.LedgerEntry
	ledgerRepo.On("Save", ctx, mock.AnythingOfType("*billing.LedgerEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*billing.LedgerEntry) }).
		Return(nil)
	ledgerRepo.On("FindForRenterMonth", ctx, accountID, renter.ID, monthKey).
		Return([]billing.LedgerEntry{}, nil).Maybe()
	ledgerRepo.On("FindForRenter", ctx, accountID, renter.ID, mock.Anything).
		Return([]billing.LedgerEntry{}, nil)
	eventRepo.On("FindForRenter", ctx, accountID, renter.ID, mock.Anything).
		Return([]billing.RenterEvent{}, nil)

	detail, err := service.GetDetail(ctx, accountID, renter.ID, now)
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.True(t, detail.ChargeResult.Created)
	assert.Equal(t, ReasonGenerated, detail.ChargeResult.Reason)
	assert.Equal(t, monthKey, detail.Summary.MonthKey)
}
