package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	billingapp "github.com/ljwebdevelopment/booth-rent-pro/internal/application/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/interfaces/http/dto"
)

// LedgerHandler handles ledger and bulk charge API endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService     *billingapp.LedgerService
	bulkChargeService *billingapp.BulkChargeService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *billingapp.LedgerService, bulkChargeService *billingapp.BulkChargeService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:     ledgerService,
		bulkChargeService: bulkChargeService,
	}
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Method   string  `json:"method" binding:"required,oneof=cash card transfer other"`
	Note     string  `json:"note" binding:"max=500"`
	MonthKey string  `json:"month_key" binding:"omitempty,len=7"`
}

// RecordChargeRequest represents a request to record a one-off charge
type RecordChargeRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Note     string  `json:"note" binding:"max=500"`
	MonthKey string  `json:"month_key" binding:"omitempty,len=7"`
}

// MarkReminderRequest represents a request to log a sent payment reminder
type MarkReminderRequest struct {
	MonthKey string `json:"month_key" binding:"omitempty,len=7"`
	Message  string `json:"message" binding:"required,max=1000"`
}

// BulkChargeHTTPRequest represents a request to charge many renters at once
type BulkChargeHTTPRequest struct {
	RenterIDs []string `json:"renter_ids" binding:"required,min=1,dive,uuid"`
	Amount    float64  `json:"amount" binding:"required,gt=0"`
	Note      string   `json:"note" binding:"max=500"`
	MonthKey  string   `json:"month_key" binding:"omitempty,len=7"`
}

// RecordPayment records a payment against a renter's ledger
func (h *LedgerHandler) RecordPayment(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	monthKey, err := resolveMonthKey(req.MonthKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	entry, err := h.ledgerService.RecordPayment(c.Request.Context(), accountID, renterID, billingapp.RecordPaymentRequest{
		Amount:   decimal.NewFromFloat(req.Amount),
		Method:   req.Method,
		Note:     req.Note,
		MonthKey: monthKey,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// RecordCharge records a one-off charge against a renter's ledger
func (h *LedgerHandler) RecordCharge(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	var req RecordChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	monthKey, err := resolveMonthKey(req.MonthKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	entry, err := h.ledgerService.RecordCharge(c.Request.Context(), accountID, renterID, billingapp.RecordChargeRequest{
		Amount:   decimal.NewFromFloat(req.Amount),
		Note:     req.Note,
		MonthKey: monthKey,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// MarkReminderSent logs that a payment reminder went out for a billing month
func (h *LedgerHandler) MarkReminderSent(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	var req MarkReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	monthKey, err := resolveMonthKey(req.MonthKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	event, err := h.ledgerService.MarkReminderSent(c.Request.Context(), accountID, renterID, monthKey, req.Message, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, event)
}

// ListForRenter lists a renter's ledger entries, newest first
func (h *LedgerHandler) ListForRenter(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.ledgerService.ListForRenter(c.Request.Context(), accountID, renterID, toFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// BulkCharge applies one charge to many renters, skipping likely duplicates
func (h *LedgerHandler) BulkCharge(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid account")
		return
	}

	var req BulkChargeHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	monthKey, err := resolveMonthKey(req.MonthKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	renterIDs := make([]uuid.UUID, 0, len(req.RenterIDs))
	for _, raw := range req.RenterIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid renter ID: "+raw)
			return
		}
		renterIDs = append(renterIDs, id)
	}

	result, err := h.bulkChargeService.CreateChargeBulk(c.Request.Context(), accountID, billingapp.BulkChargeRequest{
		RenterIDs: renterIDs,
		Amount:    decimal.NewFromFloat(req.Amount),
		Note:      req.Note,
		MonthKey:  monthKey,
	}, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// resolveMonthKey parses an explicit month key, defaulting to the current
// month in UTC when the request omits one
func resolveMonthKey(raw string) (billing.MonthKey, error) {
	if raw == "" {
		return billing.MonthKeyOf(time.Now(), time.UTC), nil
	}
	return billing.ParseMonthKey(raw)
}
