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

// InviteService manages the invite lifecycle: create, revoke, accept.
// Uniqueness of pending invites per email is checked here and backed by a
// partial unique index in the store.
type InviteService struct {
	inviteRepo account.InviteRepository
	logger     *zap.Logger
}

// NewInviteService creates a new InviteService
func NewInviteService(inviteRepo account.InviteRepository, logger *zap.Logger) *InviteService {
	return &InviteService{
		inviteRepo: inviteRepo,
		logger:     logger,
	}
}

// Create opens a pending invite for an email address. Emails are normalized
// before the uniqueness check, so case and whitespace variants of an already
// invited address are rejected.
func (s *InviteService) Create(ctx context.Context, accountID uuid.UUID, email string, createdBy uuid.UUID) (*account.Invite, error) {
	normalized, err := account.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	existing, err := s.inviteRepo.FindPendingByEmail(ctx, accountID, normalized)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check pending invites: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("INVITE_EXISTS",
			fmt.Sprintf("A pending invite already exists for %s", normalized))
	}

	invite, err := account.NewInvite(accountID, normalized, createdBy)
	if err != nil {
		return nil, err
	}

	if err := s.inviteRepo.Save(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to save invite: %w", err)
	}

	s.logger.Info("invite created",
		zap.String("account_id", accountID.String()),
		zap.String("email", normalized),
	)

	return invite, nil
}

// Revoke cancels a pending invite
func (s *InviteService) Revoke(ctx context.Context, accountID, inviteID uuid.UUID) error {
	invite, err := s.inviteRepo.FindByIDForAccount(ctx, accountID, inviteID)
	if err != nil {
		return err
	}

	if err := invite.Revoke(); err != nil {
		return err
	}

	if err := s.inviteRepo.Save(ctx, invite); err != nil {
		return fmt.Errorf("failed to revoke invite: %w", err)
	}

	s.logger.Info("invite revoked", zap.String("invite_id", inviteID.String()))

	return nil
}

// Accept marks a pending invite as accepted for the joining user
func (s *InviteService) Accept(ctx context.Context, accountID, inviteID uuid.UUID) error {
	invite, err := s.inviteRepo.FindByIDForAccount(ctx, accountID, inviteID)
	if err != nil {
		return err
	}

	if err := invite.Accept(); err != nil {
		return err
	}

	if err := s.inviteRepo.Save(ctx, invite); err != nil {
		return fmt.Errorf("failed to accept invite: %w", err)
	}

	s.logger.Info("invite accepted", zap.String("invite_id", inviteID.String()))

	return nil
}

// List returns the account's invites
func (s *InviteService) List(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]account.Invite, error) {
	return s.inviteRepo.FindAllForAccount(ctx, accountID, filter)
}
