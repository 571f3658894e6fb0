package models

import (
	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/account"
)

// BusinessProfileModel is the persistence model for the BusinessProfile
// domain entity. One row per account.
type BusinessProfileModel struct {
	AccountAggregateModel
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
func (BusinessProfileModel) TableName() string {
	return "business_profiles"
}

// ToDomain converts the persistence model to a domain BusinessProfile entity.
func (m *BusinessProfileModel) ToDomain() *account.BusinessProfile {
	profile := &account.BusinessProfile{
		BusinessName: m.BusinessName,
		Phone:        m.Phone,
		Address1:     m.Address1,
		Address2:     m.Address2,
		City:         m.City,
		State:        m.State,
		Zip:          m.Zip,
		LogoURL:      m.LogoURL,
	}
	m.PopulateAccountAggregateRoot(&profile.AccountAggregateRoot)
	return profile
}

// BusinessProfileModelFromDomain creates a persistence model from a domain BusinessProfile entity.
func BusinessProfileModelFromDomain(p *account.BusinessProfile) *BusinessProfileModel {
	model := &BusinessProfileModel{
		BusinessName: p.BusinessName,
		Phone:        p.Phone,
		Address1:     p.Address1,
		Address2:     p.Address2,
		City:         p.City,
		State:        p.State,
		Zip:          p.Zip,
		LogoURL:      p.LogoURL,
	}
	model.FromDomainAccountAggregateRoot(p.AccountAggregateRoot)
	return model
}

// InviteModel is the persistence model for the Invite domain entity.
type InviteModel struct {
	AccountAggregateModel
	Email        string               `gorm:"type:varchar(200);not null;index"`
	Status       account.InviteStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedByUID uuid.UUID            `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (InviteModel) TableName() string {
	return "invites"
}

// ToDomain converts the persistence model to a domain Invite entity.
func (m *InviteModel) ToDomain() *account.Invite {
	invite := &account.Invite{
		Email:        m.Email,
		Status:       m.Status,
		CreatedByUID: m.CreatedByUID,
	}
	m.PopulateAccountAggregateRoot(&invite.AccountAggregateRoot)
	return invite
}

// InviteModelFromDomain creates a persistence model from a domain Invite entity.
func InviteModelFromDomain(i *account.Invite) *InviteModel {
	model := &InviteModel{
		Email:        i.Email,
		Status:       i.Status,
		CreatedByUID: i.CreatedByUID,
	}
	model.FromDomainAccountAggregateRoot(i.AccountAggregateRoot)
	return model
}
