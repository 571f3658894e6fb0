package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenter(t *testing.T) {
	accountID := uuid.New()

	t.Run("creates active renter with defaults", func(t *testing.T) {
		renter, err := NewRenter(accountID, "Jamie Lee", decimal.NewFromInt(900), 15)

		require.NoError(t, err)
		assert.Equal(t, "Jamie Lee", renter.Name)
		assert.Equal(t, RenterStatusActive, renter.Status)
		assert.Equal(t, BillingCycleMonthly, renter.BillingCycle)
		assert.Equal(t, accountID, renter.AccountID)
		assert.Equal(t, 15, renter.DueDayOfMonth)
		assert.Equal(t, DefaultTimezone, renter.Timezone)
		assert.Equal(t, "#e2f2ea", renter.Color)
		assert.Nil(t, renter.PendingPermanentDeleteAt)
		assert.Len(t, renter.GetDomainEvents(), 1)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		renter, err := NewRenter(accountID, "", decimal.NewFromInt(900), 1)

		assert.Error(t, err)
		assert.Nil(t, renter)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with negative rent", func(t *testing.T) {
		renter, err := NewRenter(accountID, "Jamie Lee", decimal.NewFromInt(-1), 1)

		assert.Error(t, err)
		assert.Nil(t, renter)
	})

	t.Run("fails with out-of-range due day", func(t *testing.T) {
		_, err := NewRenter(accountID, "Jamie Lee", decimal.NewFromInt(900), 29)
		assert.Error(t, err)

		_, err = NewRenter(accountID, "Jamie Lee", decimal.NewFromInt(900), 0)
		assert.Error(t, err)
	})
}

func TestRenterArchiveRestore(t *testing.T) {
	accountID := uuid.New()

	newTestRenter := func(t *testing.T) *Renter {
		renter, err := NewRenter(accountID, "Jamie Lee", decimal.NewFromInt(900), 15)
		require.NoError(t, err)
		renter.ClearDomainEvents()
		return renter
	}

	t.Run("archive flips status only", func(t *testing.T) {
		renter := newTestRenter(t)

		require.NoError(t, renter.Archive())

		assert.Equal(t, RenterStatusArchived, renter.Status)
		assert.True(t, renter.IsArchived())
		assert.Len(t, renter.GetDomainEvents(), 1)
	})

	t.Run("archive is rejected when already archived", func(t *testing.T) {
		renter := newTestRenter(t)
		require.NoError(t, renter.Archive())

		err := renter.Archive()
		assert.Error(t, err)
	})

	t.Run("restore reverses the status flag and clears pending delete", func(t *testing.T) {
		renter := newTestRenter(t)
		require.NoError(t, renter.Archive())
		require.NoError(t, renter.MarkPendingPermanentDelete(time.Now()))

		require.NoError(t, renter.Restore())

		assert.True(t, renter.IsActive())
		assert.Nil(t, renter.PendingPermanentDeleteAt)
	})

	t.Run("pending delete requires archived state", func(t *testing.T) {
		renter := newTestRenter(t)

		err := renter.MarkPendingPermanentDelete(time.Now())
		assert.Error(t, err)
		assert.Nil(t, renter.PendingPermanentDeleteAt)
	})
}

func TestRenterSetters(t *testing.T) {
	accountID := uuid.New()
	renter, err := NewRenter(accountID, "Jamie Lee", decimal.NewFromInt(900), 15)
	require.NoError(t, err)

	t.Run("contact validation", func(t *testing.T) {
		assert.NoError(t, renter.SetContact("jamie@example.com", "555-0101"))
		assert.Error(t, renter.SetContact("not-an-email", ""))
	})

	t.Run("timezone validation", func(t *testing.T) {
		assert.NoError(t, renter.SetTimezone("America/New_York"))
		assert.Error(t, renter.SetTimezone("Mars/Olympus_Mons"))
	})

	t.Run("grade validation", func(t *testing.T) {
		assert.NoError(t, renter.SetGrade(92, "A"))
		assert.Error(t, renter.SetGrade(101, "A"))
		assert.Error(t, renter.SetGrade(50, "Z"))
	})

	t.Run("color validation", func(t *testing.T) {
		assert.NoError(t, renter.SetColor("#aabbcc"))
		assert.Error(t, renter.SetColor("red"))
	})

	t.Run("due day validation", func(t *testing.T) {
		assert.NoError(t, renter.SetDueDayOfMonth(28))
		assert.Error(t, renter.SetDueDayOfMonth(31))
	})
}

func TestRenterDueDateForMonth(t *testing.T) {
	accountID := uuid.New()
	renter, err := NewRenter(accountID, "Jamie Lee", decimal.NewFromInt(900), 10)
	require.NoError(t, err)
	require.NoError(t, renter.SetTimezone("UTC"))

	due, err := renter.DueDateForMonth(MonthKey("2026-08"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), due)
}
