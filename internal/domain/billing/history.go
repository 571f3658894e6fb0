package billing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistoryItemKind identifies the source record of a timeline item
type HistoryItemKind string

const (
	HistoryKindCharge   HistoryItemKind = "charge"
	HistoryKindPayment  HistoryItemKind = "payment"
	HistoryKindReminder HistoryItemKind = "reminder"
)

// HistoryItem is one row of a renter's merged timeline: ledger entries and
// reminder events normalized to a single shape.
type HistoryItem struct {
	ID        uuid.UUID       `json:"id"`
	Kind      HistoryItemKind `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// MergeHistory combines ledger entries and renter events into one timeline
// sorted strictly descending by timestamp. Items with a zero timestamp sort
// last; ties break on the record ID so the output is a reproducible total
// order.
func MergeHistory(entries []LedgerEntry, events []RenterEvent) []HistoryItem {
	items := make([]HistoryItem, 0, len(entries)+len(events))

	for i := range entries {
		kind := HistoryKindCharge
		if entries[i].IsPayment() {
			kind = HistoryKindPayment
		}
		items = append(items, HistoryItem{
			ID:        entries[i].ID,
			Kind:      kind,
			Timestamp: entries[i].CreatedAt,
			Amount:    entries[i].Amount,
			Method:    entries[i].Method,
			Note:      entries[i].Note,
		})
	}

	for i := range events {
		ts := events[i].CreatedAt
		if events[i].SentAt != nil {
			ts = *events[i].SentAt
		}
		items = append(items, HistoryItem{
			ID:        events[i].ID,
			Kind:      HistoryKindReminder,
			Timestamp: ts,
			Note:      events[i].Message,
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		ta, tb := items[a].Timestamp, items[b].Timestamp
		if ta.IsZero() != tb.IsZero() {
			return !ta.IsZero()
		}
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return items[a].ID.String() < items[b].ID.String()
	})

	return items
}
