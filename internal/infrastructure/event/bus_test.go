package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) seen() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func testEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Renter", uuid.New(), uuid.New())
	return &e
}

func TestInMemoryEventBus_PublishToSubscribers(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryEventBus(zap.NewNop())

	ledgerHandler := &recordingHandler{types: []string{"LedgerEntryCreated"}}
	allHandler := &recordingHandler{}

	bus.Subscribe(ledgerHandler)
	bus.Subscribe(allHandler) // no types: receives everything

	assert.NoError(t, bus.Publish(ctx, testEvent("LedgerEntryCreated")))
	assert.NoError(t, bus.Publish(ctx, testEvent("RenterDeleted")))

	assert.Equal(t, 1, ledgerHandler.seen())
	assert.Equal(t, 2, allHandler.seen())
}

func TestInMemoryEventBus_HandlerErrorDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := &recordingHandler{types: []string{"LedgerEntryCreated"}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{"LedgerEntryCreated"}}

	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	assert.NoError(t, bus.Publish(ctx, testEvent("LedgerEntryCreated")))
	assert.Equal(t, 1, healthy.seen())
}

func TestInMemoryEventBus_HandlerPanicIsContained(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryEventBus(zap.NewNop())

	panicking := &recordingHandler{types: []string{"LedgerEntryCreated"}, panics: true}
	healthy := &recordingHandler{types: []string{"LedgerEntryCreated"}}

	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	assert.NotPanics(t, func() {
		_ = bus.Publish(ctx, testEvent("LedgerEntryCreated"))
	})
	assert.Equal(t, 1, healthy.seen())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := &recordingHandler{types: []string{"RenterStatusChanged"}}
	bus.Subscribe(handler)

	assert.NoError(t, bus.Publish(ctx, testEvent("RenterStatusChanged")))
	bus.Unsubscribe(handler)
	assert.NoError(t, bus.Publish(ctx, testEvent("RenterStatusChanged")))

	assert.Equal(t, 1, handler.seen())
}
