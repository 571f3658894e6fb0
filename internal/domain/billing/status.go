package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is a renter's derived standing for a billing month
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusOverdue  PaymentStatus = "overdue"
	PaymentStatusDue      PaymentStatus = "due"
	PaymentStatusUpcoming PaymentStatus = "upcoming"
)

// MonthSummary aggregates a renter's ledger for one billing month
type MonthSummary struct {
	MonthKey       MonthKey        `json:"month_key"`
	DueDate        time.Time       `json:"due_date"`
	ChargesTotal   decimal.Decimal `json:"charges_total"`
	PaymentsTotal  decimal.Decimal `json:"payments_total"`
	Remaining      decimal.Decimal `json:"remaining"`
	Status         PaymentStatus   `json:"status"`
	HasCharge      bool            `json:"has_charge"`
	UpcomingCharge decimal.Decimal `json:"upcoming_charge"`
}

// ComputeStatus derives a renter's payment status for a billing month from
// the month's ledger entries. It is pure: no I/O, no clock reads.
//
// The rules are evaluated in order, first match wins:
//  1. charged and nothing remaining        -> paid
//  2. charged, partly paid, remainder left -> partial
//  3. charged, remainder, past due date    -> overdue
//  4. charged, remainder, due date not yet passed -> due
//  5. not charged, before the due date     -> upcoming
//  6. anything else                        -> due
//
// The due date itself still counts as due, not overdue.
func ComputeStatus(renter *Renter, entriesForMonth []LedgerEntry, dueDate, now time.Time) PaymentStatus {
	chargesTotal, paymentsTotal := sumEntries(entriesForMonth)
	remaining := chargesTotal.Sub(paymentsTotal)
	hasCharge := chargesTotal.GreaterThan(decimal.Zero)

	switch {
	case hasCharge && remaining.LessThanOrEqual(decimal.Zero):
		return PaymentStatusPaid
	case hasCharge && paymentsTotal.GreaterThan(decimal.Zero) && remaining.GreaterThan(decimal.Zero):
		return PaymentStatusPartial
	case hasCharge && remaining.GreaterThan(decimal.Zero) && AfterDueDate(now, dueDate):
		return PaymentStatusOverdue
	case hasCharge && remaining.GreaterThan(decimal.Zero):
		return PaymentStatusDue
	case !hasCharge && BeforeDueDate(now, dueDate):
		return PaymentStatusUpcoming
	default:
		return PaymentStatusDue
	}
}

// SummarizeMonth wraps ComputeStatus into a display-ready summary for the
// given billing month.
func SummarizeMonth(renter *Renter, monthKey MonthKey, entries []LedgerEntry, now time.Time) (*MonthSummary, error) {
	dueDate, err := renter.DueDateForMonth(monthKey)
	if err != nil {
		return nil, err
	}

	chargesTotal, paymentsTotal := sumEntries(entries)
	remaining := chargesTotal.Sub(paymentsTotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	hasCharge := chargesTotal.GreaterThan(decimal.Zero)

	upcoming := decimal.Zero
	if !hasCharge {
		upcoming = renter.MonthlyRent
	}

	return &MonthSummary{
		MonthKey:       monthKey,
		DueDate:        dueDate,
		ChargesTotal:   chargesTotal,
		PaymentsTotal:  paymentsTotal,
		Remaining:      remaining,
		Status:         ComputeStatus(renter, entries, dueDate, now),
		HasCharge:      hasCharge,
		UpcomingCharge: upcoming,
	}, nil
}

func sumEntries(entries []LedgerEntry) (charges, payments decimal.Decimal) {
	charges = decimal.Zero
	payments = decimal.Zero
	for i := range entries {
		switch entries[i].Type {
		case LedgerEntryTypeCharge:
			charges = charges.Add(entries[i].Amount)
		case LedgerEntryTypePayment:
			payments = payments.Add(entries[i].Amount)
		}
	}
	return charges, payments
}
