package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/storefront/backend/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Test", uuid.New()),
	}
}

func TestInMemoryEventBus_PublishDispatchesToSubscribers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"order.placed"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("order.placed"))
	require.NoError(t, err)
	require.Len(t, handler.received, 1)
	assert.Equal(t, "order.placed", handler.received[0].EventType())
}

func TestInMemoryEventBus_PublishSkipsUnrelatedTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"order.placed"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("order.status_changed"))
	require.NoError(t, err)
	assert.Empty(t, handler.received)
}

func TestInMemoryEventBus_WildcardHandlerReceivesAll(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("order.placed"),
		newTestEvent("order.payment_updated"),
	))
	assert.Len(t, handler.received, 2)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDispatch(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"order.placed"}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{"order.placed"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("order.placed"))
	require.NoError(t, err)
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_HandlerPanicIsRecovered(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))
	panicking := &recordingHandler{types: []string{"order.placed"}, panics: true}
	healthy := &recordingHandler{types: []string{"order.placed"}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	event := newTestEvent("order.placed")
	assert.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), event)
	})
	assert.Len(t, healthy.received, 1)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "event handler failed", logs[0].Message)
	assert.Equal(t, event.AggregateID().String(), logs[0].ContextMap()["aggregate_id"])
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"order.placed"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.placed")))
	assert.Empty(t, handler.received)
}
