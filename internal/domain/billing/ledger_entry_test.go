package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCharge(t *testing.T) {
	accountID := uuid.New()
	renterID := uuid.New()
	creator := uuid.New()
	due := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates a charge with due date", func(t *testing.T) {
		entry, err := NewCharge(accountID, renterID, decimal.NewFromInt(900), "Monthly rent 2026-08", MonthKey("2026-08"), due, creator)

		require.NoError(t, err)
		assert.True(t, entry.IsCharge())
		assert.Equal(t, MonthKey("2026-08"), entry.AppliesToMonthKey)
		require.NotNil(t, entry.DueDate)
		assert.True(t, due.Equal(*entry.DueDate))
		assert.Equal(t, creator, entry.CreatedByUID)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := NewCharge(accountID, renterID, decimal.Zero, "rent", MonthKey("2026-08"), due, creator)
		assert.Error(t, err)

		_, err = NewCharge(accountID, renterID, decimal.NewFromInt(-5), "rent", MonthKey("2026-08"), due, creator)
		assert.Error(t, err)
	})

	t.Run("rejects malformed month key", func(t *testing.T) {
		_, err := NewCharge(accountID, renterID, decimal.NewFromInt(900), "rent", MonthKey("2026-8"), due, creator)
		assert.Error(t, err)
	})
}

func TestNewPayment(t *testing.T) {
	accountID := uuid.New()
	renterID := uuid.New()
	creator := uuid.New()

	t.Run("creates a payment with method", func(t *testing.T) {
		entry, err := NewPayment(accountID, renterID, decimal.NewFromInt(300), "cash", "partial", MonthKey("2026-08"), creator)

		require.NoError(t, err)
		assert.True(t, entry.IsPayment())
		assert.Equal(t, "cash", entry.Method)
		assert.Nil(t, entry.DueDate)
	})

	t.Run("rejects empty payment method", func(t *testing.T) {
		_, err := NewPayment(accountID, renterID, decimal.NewFromInt(300), "", "", MonthKey("2026-08"), creator)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "method")

		_, err = NewPayment(accountID, renterID, decimal.NewFromInt(300), "   ", "", MonthKey("2026-08"), creator)
		assert.Error(t, err)
	})

	t.Run("trims the payment method", func(t *testing.T) {
		entry, err := NewPayment(accountID, renterID, decimal.NewFromInt(300), " zelle ", "", MonthKey("2026-08"), creator)
		require.NoError(t, err)
		assert.Equal(t, "zelle", entry.Method)
	})
}
