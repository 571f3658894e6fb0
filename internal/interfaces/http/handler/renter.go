package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	billingapp "github.com/ljwebdevelopment/booth-rent-pro/internal/application/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/interfaces/http/dto"
)

// RenterHandler handles renter-related API endpoints
type RenterHandler struct {
	BaseHandler
	renterService    *billingapp.RenterService
	lifecycleService *billingapp.LifecycleService
	billingService   *billingapp.BillingService
}

// NewRenterHandler creates a new RenterHandler
func NewRenterHandler(
	renterService *billingapp.RenterService,
	lifecycleService *billingapp.LifecycleService,
	billingService *billingapp.BillingService,
) *RenterHandler {
	return &RenterHandler{
		renterService:    renterService,
		lifecycleService: lifecycleService,
		billingService:   billingService,
	}
}

// CreateRenterRequest represents a request to create a new renter
type CreateRenterRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=200"`
	Email         string  `json:"email" binding:"omitempty,email,max=200"`
	Phone         string  `json:"phone" binding:"max=50"`
	MonthlyRent   float64 `json:"monthly_rent" binding:"min=0"`
	DueDayOfMonth int     `json:"due_day_of_month" binding:"required,min=1,max=28"`
	Timezone      string  `json:"timezone" binding:"max=100"`
	Color         string  `json:"color" binding:"max=20"`
	Notes         string  `json:"notes"`
}

// UpdateRenterRequest represents a request to update a renter
type UpdateRenterRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Email         *string  `json:"email" binding:"omitempty,max=200"`
	Phone         *string  `json:"phone" binding:"omitempty,max=50"`
	MonthlyRent   *float64 `json:"monthly_rent" binding:"omitempty,min=0"`
	DueDayOfMonth *int     `json:"due_day_of_month" binding:"omitempty,min=1,max=28"`
	Timezone      *string  `json:"timezone" binding:"omitempty,max=100"`
	Color         *string  `json:"color" binding:"omitempty,max=20"`
	Notes         *string  `json:"notes"`
	GradeScore    *int     `json:"grade_score" binding:"omitempty,min=0,max=100"`
	GradeLetter   *string  `json:"grade_letter" binding:"omitempty,oneof=A B C D F"`
}

// Create creates a new renter
func (h *RenterHandler) Create(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid account")
		return
	}

	var req CreateRenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	renter, err := h.renterService.Create(c.Request.Context(), accountID, billingapp.CreateRenterRequest{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		MonthlyRent:   decimal.NewFromFloat(req.MonthlyRent),
		DueDayOfMonth: req.DueDayOfMonth,
		Timezone:      req.Timezone,
		Color:         req.Color,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, renter)
}

// List lists renters, optionally filtered by lifecycle status
func (h *RenterHandler) List(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid account")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	status := billing.RenterStatusActive
	if s := c.Query("status"); s != "" {
		switch billing.RenterStatus(s) {
		case billing.RenterStatusActive, billing.RenterStatusArchived:
			status = billing.RenterStatus(s)
		default:
			h.BadRequest(c, "Unknown status: "+s)
			return
		}
	}

	renters, err := h.renterService.ListByStatus(c.Request.Context(), accountID, status, toFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, renters)
}

// ListWithSummaries lists active renters with their current-month standing
func (h *RenterHandler) ListWithSummaries(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid account")
		return
	}

	summaries, err := h.renterService.ListWithSummaries(c.Request.Context(), accountID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summaries)
}

// GetByID returns a single renter record
func (h *RenterHandler) GetByID(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	renter, err := h.renterService.GetByID(c.Request.Context(), accountID, renterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, renter)
}

// GetDetail returns the full detail view: the renter, its current-month
// summary (generating the monthly charge first if due), and the merged
// history timeline
func (h *RenterHandler) GetDetail(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	detail, err := h.renterService.GetDetail(c.Request.Context(), accountID, renterID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, detail)
}

// GetHistory returns the merged ledger and event timeline for a renter
func (h *RenterHandler) GetHistory(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	history, err := h.renterService.GetHistory(c.Request.Context(), accountID, renterID, toFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// GetMonthSummary returns a renter's standing for one billing month
func (h *RenterHandler) GetMonthSummary(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	monthKey, err := billing.ParseMonthKey(c.Query("month"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	summary, err := h.renterService.GetMonthSummary(c.Request.Context(), accountID, renterID, monthKey, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Update updates a renter's fields
func (h *RenterHandler) Update(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	var req UpdateRenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := billingapp.UpdateRenterRequest{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		DueDayOfMonth: req.DueDayOfMonth,
		Timezone:      req.Timezone,
		Color:         req.Color,
		Notes:         req.Notes,
		GradeScore:    req.GradeScore,
		GradeLetter:   req.GradeLetter,
	}
	if req.MonthlyRent != nil {
		rent := decimal.NewFromFloat(*req.MonthlyRent)
		appReq.MonthlyRent = &rent
	}

	renter, err := h.renterService.Update(c.Request.Context(), accountID, renterID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, renter)
}

// Archive soft-deletes a renter, keeping its ledger and history
func (h *RenterHandler) Archive(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	if err := h.lifecycleService.Archive(c.Request.Context(), accountID, renterID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore reactivates an archived renter
func (h *RenterHandler) Restore(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	if err := h.lifecycleService.Restore(c.Request.Context(), accountID, renterID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// PermanentlyDelete removes an archived renter and cascades into its
// ledger entries and events
func (h *RenterHandler) PermanentlyDelete(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	result, err := h.lifecycleService.PermanentlyDelete(c.Request.Context(), accountID, renterID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// EnsureCharge generates the renter's monthly charge if one is due and
// missing, reporting why nothing was written otherwise
func (h *RenterHandler) EnsureCharge(c *gin.Context) {
	accountID, renterID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	result, err := h.billingService.EnsureMonthlyCharge(c.Request.Context(), accountID, renterID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// toFilter converts a list request to a repository filter
func toFilter(req dto.ListRequest) shared.Filter {
	return shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
}
