package account

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvite(t *testing.T) {
	accountID := uuid.New()
	creator := uuid.New()

	t.Run("creates pending invite with normalized email", func(t *testing.T) {
		invite, err := NewInvite(accountID, "  Jamie.Lee@Example.COM ", creator)

		require.NoError(t, err)
		assert.Equal(t, "jamie.lee@example.com", invite.Email)
		assert.Equal(t, InviteStatusPending, invite.Status)
		assert.True(t, invite.IsPending())
		assert.Equal(t, creator, invite.CreatedByUID)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		for _, email := range []string{"", "   ", "no-at-sign", "a@b"} {
			_, err := NewInvite(accountID, email, creator)
			assert.Error(t, err, "expected %q to be rejected", email)
		}
	})
}

func TestInviteTransitions(t *testing.T) {
	accountID := uuid.New()

	newPending := func(t *testing.T) *Invite {
		invite, err := NewInvite(accountID, "jamie@example.com", uuid.New())
		require.NoError(t, err)
		return invite
	}

	t.Run("revoke pending invite", func(t *testing.T) {
		invite := newPending(t)

		require.NoError(t, invite.Revoke())
		assert.Equal(t, InviteStatusRevoked, invite.Status)
	})

	t.Run("accept pending invite", func(t *testing.T) {
		invite := newPending(t)

		require.NoError(t, invite.Accept())
		assert.Equal(t, InviteStatusAccepted, invite.Status)
	})

	t.Run("revoked invite cannot be accepted", func(t *testing.T) {
		invite := newPending(t)
		require.NoError(t, invite.Revoke())

		assert.Error(t, invite.Accept())
	})

	t.Run("accepted invite cannot be revoked", func(t *testing.T) {
		invite := newPending(t)
		require.NoError(t, invite.Accept())

		assert.Error(t, invite.Revoke())
	})
}

func TestNormalizeEmail(t *testing.T) {
	normalized, err := NormalizeEmail("  USER+tag@Example.Org ")
	require.NoError(t, err)
	assert.Equal(t, "user+tag@example.org", normalized)
}

func TestBusinessProfile(t *testing.T) {
	accountID := uuid.New()

	t.Run("creates profile with business name", func(t *testing.T) {
		profile, err := NewBusinessProfile(accountID, "Shear Genius Salon")

		require.NoError(t, err)
		assert.Equal(t, "Shear Genius Salon", profile.BusinessName)
		assert.Equal(t, accountID, profile.AccountID)
	})

	t.Run("rejects empty business name", func(t *testing.T) {
		_, err := NewBusinessProfile(accountID, "")
		assert.Error(t, err)
	})

	t.Run("stores logo URL as opaque string", func(t *testing.T) {
		profile, err := NewBusinessProfile(accountID, "Shear Genius Salon")
		require.NoError(t, err)

		profile.SetLogoURL("https://cdn.example.com/logos/shear-genius.png")
		assert.Equal(t, "https://cdn.example.com/logos/shear-genius.png", profile.LogoURL)
	})
}
