package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/account"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"go.uber.org/zap"
)

// UpdateProfileRequest carries the business profile fields
type UpdateProfileRequest struct {
	BusinessName string
	Phone        string
	Address1     string
	Address2     string
	City         string
	State        string
	Zip          string
	LogoURL      *string
}

// ProfileService manages the per-account business profile
type ProfileService struct {
	profileRepo account.BusinessProfileRepository
	logger      *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo account.BusinessProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Get retrieves the account's business profile
func (s *ProfileService) Get(ctx context.Context, accountID uuid.UUID) (*account.BusinessProfile, error) {
	return s.profileRepo.FindForAccount(ctx, accountID)
}

// Upsert creates the profile on first save and updates it afterwards.
// There is exactly one profile per account, so no identifier is taken.
func (s *ProfileService) Upsert(ctx context.Context, accountID uuid.UUID, req UpdateProfileRequest) (*account.BusinessProfile, error) {
	profile, err := s.profileRepo.FindForAccount(ctx, accountID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		profile, err = account.NewBusinessProfile(accountID, req.BusinessName)
		if err != nil {
			return nil, err
		}
	}

	if err := profile.Update(req.BusinessName, req.Phone); err != nil {
		return nil, err
	}
	if err := profile.SetAddress(req.Address1, req.Address2, req.City, req.State, req.Zip); err != nil {
		return nil, err
	}
	if req.LogoURL != nil {
		profile.SetLogoURL(*req.LogoURL)
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("business profile saved", zap.String("account_id", accountID.String()))

	return profile, nil
}
