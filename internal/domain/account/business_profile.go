package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
)

// BusinessProfile holds the business identity shown on statements and
// reminders. There is exactly one profile per account.
type BusinessProfile struct {
	shared.AccountAggregateRoot
	BusinessName string `gorm:"type:varchar(200);not null"`
	Phone        string `gorm:"type:varchar(50)"`
	Address1     string `gorm:"type:varchar(200)"`
	Address2     string `gorm:"type:varchar(200)"`
	City         string `gorm:"type:varchar(100)"`
	State        string `gorm:"type:varchar(100)"`
	Zip          string `gorm:"type:varchar(20)"`
	LogoURL      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BusinessProfile) TableName() string {
	return "business_profiles"
}

// NewBusinessProfile creates the profile for an account
func NewBusinessProfile(accountID uuid.UUID, businessName string) (*BusinessProfile, error) {
	if err := validateBusinessName(businessName); err != nil {
		return nil, err
	}

	return &BusinessProfile{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		BusinessName:         businessName,
	}, nil
}

// Update updates the profile's business identity fields
func (p *BusinessProfile) Update(businessName, phone string) error {
	if err := validateBusinessName(businessName); err != nil {
		return err
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}

	p.BusinessName = businessName
	p.Phone = phone
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetAddress sets the business mailing address
func (p *BusinessProfile) SetAddress(address1, address2, city, state, zip string) error {
	for _, field := range []struct {
		value string
		max   int
		code  string
		msg   string
	}{
		{address1, 200, "INVALID_ADDRESS", "Address cannot exceed 200 characters"},
		{address2, 200, "INVALID_ADDRESS", "Address cannot exceed 200 characters"},
		{city, 100, "INVALID_CITY", "City cannot exceed 100 characters"},
		{state, 100, "INVALID_STATE", "State cannot exceed 100 characters"},
		{zip, 20, "INVALID_ZIP", "Zip cannot exceed 20 characters"},
	} {
		if len(field.value) > field.max {
			return shared.NewDomainError(field.code, field.msg)
		}
	}

	p.Address1 = address1
	p.Address2 = address2
	p.City = city
	p.State = state
	p.Zip = zip
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetLogoURL stores the uploaded logo location. Upload itself happens
// elsewhere; the profile only keeps the resulting URL.
func (p *BusinessProfile) SetLogoURL(url string) {
	p.LogoURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateBusinessName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Business name cannot exceed 200 characters")
	}
	return nil
}
