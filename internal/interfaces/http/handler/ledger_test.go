package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billingapp "github.com/ljwebdevelopment/booth-rent-pro/internal/application/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/interfaces/http/dto"
)

type ledgerHandlerFixture struct {
	renterRepo *MockRenterRepository
	ledgerRepo *MockLedgerEntryRepository
	eventRepo  *MockRenterEventRepository
	publisher  *MockEventPublisher
	accountID  uuid.UUID
	userID     uuid.UUID
	router     *gin.Engine
}

func newLedgerHandlerFixture(t *testing.T) *ledgerHandlerFixture {
	t.Helper()

	f := &ledgerHandlerFixture{
		renterRepo: new(MockRenterRepository),
		ledgerRepo: new(MockLedgerEntryRepository),
		eventRepo:  new(MockRenterEventRepository),
		publisher:  new(MockEventPublisher),
		accountID:  uuid.New(),
		userID:     uuid.New(),
	}

	log := zap.NewNop()
	ledgerService := billingapp.NewLedgerService(f.renterRepo, f.ledgerRepo, f.eventRepo, f.publisher, log)
	bulkChargeService := billingapp.NewBulkChargeService(f.renterRepo, f.ledgerRepo, f.publisher, log)
	h := NewLedgerHandler(ledgerService, bulkChargeService)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, f.accountID, f.userID)
	})
	router.POST("/renters/:id/payments", h.RecordPayment)
	router.POST("/renters/:id/charges", h.RecordCharge)
	router.POST("/renters/:id/reminders", h.MarkReminderSent)
	router.GET("/renters/:id/ledger", h.ListForRenter)
	router.POST("/charges/bulk", h.BulkCharge)

	f.router = router
	return f
}

func TestLedgerHandlerRecordPayment(t *testing.T) {
	f := newLedgerHandlerFixture(t)
	renter := newTestRenter(t, f.accountID)
	f.renterRepo.On("FindByIDForAccount", mock.Anything, f.accountID, renter.ID).Return(renter, nil)
	f.ledgerRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.LedgerEntry")).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	body, _ := json.Marshal(map[string]any{
		"amount": 450.0,
		"method": "cash",
		"note":   "Week two",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/renters/"+renter.ID.String()+"/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	f.ledgerRepo.AssertCalled(t, "Save", mock.Anything, mock.AnythingOfType("*billing.LedgerEntry"))
}

func TestLedgerHandlerRecordPaymentUnknownMethod(t *testing.T) {
	f := newLedgerHandlerFixture(t)
	renterID := uuid.New()

	body, _ := json.Marshal(map[string]any{
		"amount": 450.0,
		"method": "venmo",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/renters/"+renterID.String()+"/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLedgerHandlerRecordChargeRenterNotFound(t *testing.T) {
	f := newLedgerHandlerFixture(t)
	renterID := uuid.New()
	f.renterRepo.On("FindByIDForAccount", mock.Anything, f.accountID, renterID).
		Return(nil, shared.ErrNotFound)

	body, _ := json.Marshal(map[string]any{
		"amount": 75.0,
		"note":   "Product order",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/renters/"+renterID.String()+"/charges", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestLedgerHandlerMarkReminderSent(t *testing.T) {
	f := newLedgerHandlerFixture(t)
	renter := newTestRenter(t, f.accountID)
	f.renterRepo.On("FindByIDForAccount", mock.Anything, f.accountID, renter.ID).Return(renter, nil)
	f.eventRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.RenterEvent")).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	body, _ := json.Marshal(map[string]any{
		"message": "Rent reminder sent by text",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/renters/"+renter.ID.String()+"/reminders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	f.eventRepo.AssertCalled(t, "Save", mock.Anything, mock.AnythingOfType("*billing.RenterEvent"))
}

func TestLedgerHandlerListForRenter(t *testing.T) {
	f := newLedgerHandlerFixture(t)
	renter := newTestRenter(t, f.accountID)
	f.renterRepo.On("FindByIDForAccount", mock.Anything, f.accountID, renter.ID).Return(renter, nil)
	f.ledgerRepo.On("FindForRenter", mock.Anything, f.accountID, renter.ID, mock.AnythingOfType("shared.Filter")).
		Return([]billing.LedgerEntry{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/renters/"+renter.ID.String()+"/ledger", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Data    []billing.LedgerEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}

func TestLedgerHandlerBulkChargeSkipsMissingRenter(t *testing.T) {
	f := newLedgerHandlerFixture(t)
	renter := newTestRenter(t, f.accountID)
	missingID := uuid.New()

	f.renterRepo.On("FindByIDForAccount", mock.Anything, f.accountID, renter.ID).Return(renter, nil)
	f.renterRepo.On("FindByIDForAccount", mock.Anything, f.accountID, missingID).
		Return(nil, shared.ErrNotFound)
	f.ledgerRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.LedgerEntry")).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	body, _ := json.Marshal(map[string]any{
		"renter_ids": []string{renter.ID.String(), missingID.String()},
		"amount":     40.0,
		"note":       "Cleaning fee",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/charges/bulk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                        `json:"success"`
		Data    billingapp.BulkChargeResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Created)
	require.Len(t, resp.Data.Skipped, 1)
	assert.Equal(t, missingID, resp.Data.Skipped[0].RenterID)
}
