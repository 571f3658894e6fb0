package billing

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RenterStatus represents the lifecycle status of a renter
type RenterStatus string

const (
	RenterStatusActive   RenterStatus = "active"
	RenterStatusArchived RenterStatus = "archived"
)

// BillingCycle represents the recurring billing cadence. Only monthly is
// supported; the field exists so the cadence is explicit on every record.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
)

// DefaultTimezone is used when a renter has no explicit timezone
const DefaultTimezone = "America/Chicago"

// Renter represents a booth renter billed on a recurring monthly cycle.
// It is the aggregate root for billing operations; ledger entries and
// reminder events reference it by ID rather than being contained in it.
type Renter struct {
	shared.AccountAggregateRoot
	Name                     string          `gorm:"type:varchar(200);not null"`
	Email                    string          `gorm:"type:varchar(200);index"`
	Phone                    string          `gorm:"type:varchar(50)"`
	Status                   RenterStatus    `gorm:"type:varchar(20);not null;default:'active';index"`
	Color                    string          `gorm:"type:varchar(20);default:'#e2f2ea'"`
	BillingCycle             BillingCycle    `gorm:"type:varchar(20);not null;default:'monthly'"`
	MonthlyRent              decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DueDayOfMonth            int             `gorm:"not null;default:1"`
	Timezone                 string          `gorm:"type:varchar(100);not null;default:'America/Chicago'"`
	NextDueDate              *time.Time
	GradeScore               int    `gorm:"not null;default:0"`
	GradeLetter              string `gorm:"type:varchar(2);default:'C'"`
	Notes                    string `gorm:"type:text"`
	PendingPermanentDeleteAt *time.Time
}

// TableName returns the table name for GORM
func (Renter) TableName() string {
	return "renters"
}

// NewRenter creates a new active renter with required fields
func NewRenter(accountID uuid.UUID, name string, monthlyRent decimal.Decimal, dueDay int) (*Renter, error) {
	if err := validateRenterName(name); err != nil {
		return nil, err
	}
	if monthlyRent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent cannot be negative")
	}
	if err := ValidateDueDay(dueDay); err != nil {
		return nil, err
	}

	renter := &Renter{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		Name:                 name,
		Status:               RenterStatusActive,
		Color:                "#e2f2ea",
		BillingCycle:         BillingCycleMonthly,
		MonthlyRent:          monthlyRent,
		DueDayOfMonth:        dueDay,
		Timezone:             DefaultTimezone,
		GradeLetter:          "C",
	}

	renter.AddDomainEvent(NewRenterCreatedEvent(renter))

	return renter, nil
}

// Update updates the renter's basic information
func (r *Renter) Update(name string) error {
	if err := validateRenterName(name); err != nil {
		return err
	}

	r.Name = name
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRenterUpdatedEvent(r))

	return nil
}

// SetContact sets the renter's contact information
func (r *Renter) SetContact(email, phone string) error {
	if email != "" {
		if err := validateRenterEmail(email); err != nil {
			return err
		}
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}

	r.Email = email
	r.Phone = phone
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetMonthlyRent sets the recurring rent amount
func (r *Renter) SetMonthlyRent(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_RENT", "Monthly rent cannot be negative")
	}

	r.MonthlyRent = amount
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRenterUpdatedEvent(r))

	return nil
}

// SetDueDayOfMonth sets the day of month rent comes due
func (r *Renter) SetDueDayOfMonth(day int) error {
	if err := ValidateDueDay(day); err != nil {
		return err
	}

	r.DueDayOfMonth = day
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetTimezone sets the IANA timezone the renter is billed in
func (r *Renter) SetTimezone(tz string) error {
	if _, err := time.LoadLocation(tz); err != nil {
		return shared.NewDomainError("INVALID_TIMEZONE", "Unknown timezone: "+tz)
	}

	r.Timezone = tz
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetColor sets the display color for the renter card
func (r *Renter) SetColor(color string) error {
	if color != "" && !colorPattern.MatchString(color) {
		return shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #e2f2ea")
	}
	if color == "" {
		color = "#e2f2ea"
	}

	r.Color = color
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetGrade sets the renter's payment grade
func (r *Renter) SetGrade(score int, letter string) error {
	if score < 0 || score > 100 {
		return shared.NewDomainError("INVALID_GRADE", "Grade score must be between 0 and 100")
	}
	switch letter {
	case "A", "B", "C", "D", "F":
	default:
		return shared.NewDomainError("INVALID_GRADE", "Grade letter must be one of A, B, C, D, F")
	}

	r.GradeScore = score
	r.GradeLetter = letter
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes about the renter
func (r *Renter) SetNotes(notes string) {
	r.Notes = notes
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// SetNextDueDate records the precomputed next due date for display
func (r *Renter) SetNextDueDate(t *time.Time) {
	r.NextDueDate = t
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Archive soft-deletes the renter. The ledger and event history stay intact
// and the transition is reversible via Restore.
func (r *Renter) Archive() error {
	if r.Status == RenterStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Renter is already archived")
	}

	oldStatus := r.Status
	r.Status = RenterStatusArchived
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRenterStatusChangedEvent(r, oldStatus, RenterStatusArchived))

	return nil
}

// Restore reactivates an archived renter and clears any pending-delete marker
func (r *Renter) Restore() error {
	if r.Status == RenterStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Renter is already active")
	}

	oldStatus := r.Status
	r.Status = RenterStatusActive
	r.PendingPermanentDeleteAt = nil
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRenterStatusChangedEvent(r, oldStatus, RenterStatusActive))

	return nil
}

// MarkPendingPermanentDelete stamps the renter before cascading deletion
// starts, so a crash mid-cascade is detectable and reconcilable.
func (r *Renter) MarkPendingPermanentDelete(at time.Time) error {
	if r.Status != RenterStatusArchived {
		return shared.NewDomainError("NOT_ARCHIVED", "Only archived renters can be permanently deleted")
	}

	r.PendingPermanentDeleteAt = &at
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// IsActive returns true if the renter is active
func (r *Renter) IsActive() bool {
	return r.Status == RenterStatusActive
}

// IsArchived returns true if the renter is archived
func (r *Renter) IsArchived() bool {
	return r.Status == RenterStatusArchived
}

// Location returns the renter's timezone, falling back to the default
func (r *Renter) Location() *time.Location {
	if loc, err := time.LoadLocation(r.Timezone); err == nil {
		return loc
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CurrentMonthKey returns the billing month key for now in the renter's timezone
func (r *Renter) CurrentMonthKey(now time.Time) MonthKey {
	return MonthKeyOf(now, r.Location())
}

// DueDateForMonth returns the renter's due date within the given billing month
func (r *Renter) DueDateForMonth(key MonthKey) (time.Time, error) {
	return key.DueDate(r.DueDayOfMonth, r.Location())
}

// Validation functions

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateRenterName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Renter name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Renter name cannot exceed 200 characters")
	}
	return nil
}

func validateRenterEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
