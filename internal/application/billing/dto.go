package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// CreateRenterRequest carries the fields needed to create a renter
type CreateRenterRequest struct {
	Name          string
	Email         string
	Phone         string
	MonthlyRent   decimal.Decimal
	DueDayOfMonth int
	Timezone      string
	Color         string
	Notes         string
}

// UpdateRenterRequest carries optional field updates for a renter
type UpdateRenterRequest struct {
	Name          *string
	Email         *string
	Phone         *string
	MonthlyRent   *decimal.Decimal
	DueDayOfMonth *int
	Timezone      *string
	Color         *string
	Notes         *string
	GradeScore    *int
	GradeLetter   *string
}

// RenterResponse is the outward shape of a renter record
type RenterResponse struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Email         string               `json:"email,omitempty"`
	Phone         string               `json:"phone,omitempty"`
	Status        billing.RenterStatus `json:"status"`
	Color         string               `json:"color"`
	BillingCycle  billing.BillingCycle `json:"billing_cycle"`
	MonthlyRent   decimal.Decimal      `json:"monthly_rent"`
	DueDayOfMonth int                  `json:"due_day_of_month"`
	Timezone      string               `json:"timezone"`
	NextDueDate   *time.Time           `json:"next_due_date,omitempty"`
	GradeScore    int                  `json:"grade_score"`
	GradeLetter   string               `json:"grade_letter"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// RenterSummaryResponse pairs a renter with its current-month standing
type RenterSummaryResponse struct {
	Renter  RenterResponse        `json:"renter"`
	Summary *billing.MonthSummary `json:"summary"`
}

// RenterDetailResponse is the full detail view of one renter: the record,
// the current-month summary, and the merged history timeline
type RenterDetailResponse struct {
	Renter       RenterResponse        `json:"renter"`
	Summary      *billing.MonthSummary `json:"summary"`
	History      []billing.HistoryItem `json:"history"`
	ChargeResult *EnsureChargeResult   `json:"charge_result,omitempty"`
}

// ToRenterResponse converts a renter aggregate to its response shape
func ToRenterResponse(renter *billing.Renter) RenterResponse {
	return RenterResponse{
		ID:            renter.ID,
		Name:          renter.Name,
		Email:         renter.Email,
		Phone:         renter.Phone,
		Status:        renter.Status,
		Color:         renter.Color,
		BillingCycle:  renter.BillingCycle,
		MonthlyRent:   renter.MonthlyRent,
		DueDayOfMonth: renter.DueDayOfMonth,
		Timezone:      renter.Timezone,
		NextDueDate:   renter.NextDueDate,
		GradeScore:    renter.GradeScore,
		GradeLetter:   renter.GradeLetter,
		Notes:         renter.Notes,
		CreatedAt:     renter.CreatedAt,
		UpdatedAt:     renter.UpdatedAt,
	}
}
