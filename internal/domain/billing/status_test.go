package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusTestRenter(t *testing.T) *Renter {
	t.Helper()
	renter, err := NewRenter(uuid.New(), "Jamie Lee", decimal.NewFromInt(900), 15)
	require.NoError(t, err)
	require.NoError(t, renter.SetTimezone("UTC"))
	return renter
}

func charge(renter *Renter, amount int64, due time.Time) LedgerEntry {
	e, _ := NewCharge(renter.AccountID, renter.ID, decimal.NewFromInt(amount), "Monthly rent", MonthKey("2026-08"), due, uuid.New())
	return *e
}

func payment(renter *Renter, amount int64) LedgerEntry {
	e, _ := NewPayment(renter.AccountID, renter.ID, decimal.NewFromInt(amount), "cash", "", MonthKey("2026-08"), uuid.New())
	return *e
}

func TestComputeStatus(t *testing.T) {
	renter := statusTestRenter(t)
	due := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	beforeDue := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	onDue := time.Date(2026, 8, 15, 18, 0, 0, 0, time.UTC)
	afterDue := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	t.Run("fully paid", func(t *testing.T) {
		entries := []LedgerEntry{charge(renter, 900, due), payment(renter, 900)}
		assert.Equal(t, PaymentStatusPaid, ComputeStatus(renter, entries, due, afterDue))
	})

	t.Run("overpaid is still paid", func(t *testing.T) {
		entries := []LedgerEntry{charge(renter, 900, due), payment(renter, 1000)}
		assert.Equal(t, PaymentStatusPaid, ComputeStatus(renter, entries, due, beforeDue))
	})

	t.Run("partial payment before due date", func(t *testing.T) {
		entries := []LedgerEntry{charge(renter, 900, due), payment(renter, 300)}
		assert.Equal(t, PaymentStatusPartial, ComputeStatus(renter, entries, due, beforeDue))
	})

	t.Run("partial wins over overdue", func(t *testing.T) {
		entries := []LedgerEntry{charge(renter, 900, due), payment(renter, 300)}
		assert.Equal(t, PaymentStatusPartial, ComputeStatus(renter, entries, due, afterDue))
	})

	t.Run("unpaid past due date is overdue", func(t *testing.T) {
		entries := []LedgerEntry{charge(renter, 900, due)}
		assert.Equal(t, PaymentStatusOverdue, ComputeStatus(renter, entries, due, afterDue))
	})

	t.Run("the due date itself still counts as due", func(t *testing.T) {
		entries := []LedgerEntry{charge(renter, 900, due)}
		assert.Equal(t, PaymentStatusDue, ComputeStatus(renter, entries, due, onDue))
	})

	t.Run("unpaid before due date is due", func(t *testing.T) {
		entries := []LedgerEntry{charge(renter, 900, due)}
		assert.Equal(t, PaymentStatusDue, ComputeStatus(renter, entries, due, beforeDue))
	})

	t.Run("no charge before due date is upcoming", func(t *testing.T) {
		assert.Equal(t, PaymentStatusUpcoming, ComputeStatus(renter, nil, due, beforeDue))
	})

	t.Run("no charge past due date falls through to due", func(t *testing.T) {
		assert.Equal(t, PaymentStatusDue, ComputeStatus(renter, nil, due, afterDue))
	})

	t.Run("is pure", func(t *testing.T) {
		entries := []LedgerEntry{charge(renter, 900, due), payment(renter, 300)}
		first := ComputeStatus(renter, entries, due, beforeDue)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ComputeStatus(renter, entries, due, beforeDue))
		}
	})
}

func TestSummarizeMonth(t *testing.T) {
	renter := statusTestRenter(t)
	due := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	t.Run("paid month has zero remaining", func(t *testing.T) {
		entries := []LedgerEntry{charge(renter, 900, due), payment(renter, 900)}

		summary, err := SummarizeMonth(renter, MonthKey("2026-08"), entries, now)
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusPaid, summary.Status)
		assert.True(t, summary.Remaining.IsZero())
		assert.True(t, summary.HasCharge)
		assert.True(t, summary.ChargesTotal.Equal(decimal.NewFromInt(900)))
		assert.True(t, summary.PaymentsTotal.Equal(decimal.NewFromInt(900)))
		assert.True(t, summary.UpcomingCharge.IsZero())
	})

	t.Run("remaining is clamped at zero when overpaid", func(t *testing.T) {
		entries := []LedgerEntry{charge(renter, 900, due), payment(renter, 1200)}

		summary, err := SummarizeMonth(renter, MonthKey("2026-08"), entries, now)
		require.NoError(t, err)
		assert.True(t, summary.Remaining.IsZero())
	})

	t.Run("uncharged month surfaces the upcoming rent", func(t *testing.T) {
		summary, err := SummarizeMonth(renter, MonthKey("2026-09"), nil, now)
		require.NoError(t, err)

		assert.False(t, summary.HasCharge)
		assert.True(t, summary.UpcomingCharge.Equal(renter.MonthlyRent))
		assert.Equal(t, PaymentStatusUpcoming, summary.Status)
	})
}
