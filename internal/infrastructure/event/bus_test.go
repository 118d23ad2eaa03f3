package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/thankyou"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicWith  any
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	h.handled = append(h.handled, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

// stoppingHandler stops its bus from inside Handle
type stoppingHandler struct {
	bus *InMemoryEventBus
}

func (h *stoppingHandler) Handle(ctx context.Context, _ shared.DomainEvent) error {
	return h.bus.Stop(ctx)
}

func (h *stoppingHandler) EventTypes() []string {
	return nil
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("routes by event type", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		created := &recordingHandler{eventTypes: []string{thankyou.EventTypeThankYouCreated}}
		all := &recordingHandler{}
		bus.Subscribe(created)
		bus.Subscribe(all)

		err := bus.Publish(ctx,
			thankyou.NewThankYouDeletedEvent(1, 2),
			thankyou.NewThankYouDeletedEvent(3, 2),
		)
		require.NoError(t, err)
		assert.Equal(t, 0, created.count())
		assert.Equal(t, 2, all.count())
	})

	t.Run("joins handler failures and keeps going", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		errMail := errors.New("mail down")
		failing := &recordingHandler{eventTypes: []string{thankyou.EventTypeThankYouDeleted}, err: errMail}
		panicking := &recordingHandler{eventTypes: []string{thankyou.EventTypeThankYouDeleted}, panicWith: "boom"}
		healthy := &recordingHandler{eventTypes: []string{thankyou.EventTypeThankYouDeleted}}
		bus.Subscribe(failing)
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		err := bus.Publish(ctx, thankyou.NewThankYouDeletedEvent(1, 2))
		require.Error(t, err)
		assert.ErrorIs(t, err, errMail)
		assert.Contains(t, err.Error(), "panicked")
		assert.Equal(t, 1, healthy.count())
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &recordingHandler{}
		bus.Subscribe(h, thankyou.EventTypeThankYouDeleted)
		bus.Unsubscribe(h)

		require.NoError(t, bus.Publish(ctx, thankyou.NewThankYouDeletedEvent(1, 2)))
		assert.Equal(t, 0, h.count())
	})

	t.Run("publish after stop fails", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &recordingHandler{}
		bus.Subscribe(h, thankyou.EventTypeThankYouDeleted)

		require.NoError(t, bus.Start(ctx))
		require.NoError(t, bus.Stop(ctx))
		assert.ErrorIs(t, bus.Publish(ctx, thankyou.NewThankYouDeletedEvent(1, 2)), ErrBusStopped)
		assert.Equal(t, 0, h.count())

		require.NoError(t, bus.Start(ctx))
		require.NoError(t, bus.Publish(ctx, thankyou.NewThankYouDeletedEvent(1, 2)))
		assert.Equal(t, 1, h.count())
	})
	t.Run("stop during delivery lets the publish finish", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		stopper := &stoppingHandler{bus: bus}
		after := &recordingHandler{}
		bus.Subscribe(stopper, thankyou.EventTypeThankYouDeleted)
		bus.Subscribe(after, thankyou.EventTypeThankYouDeleted)

		err := bus.Publish(ctx, thankyou.NewThankYouDeletedEvent(1, 2), thankyou.NewThankYouDeletedEvent(3, 2))
		require.NoError(t, err)
		assert.Equal(t, 2, after.count())
		assert.ErrorIs(t, bus.Publish(ctx, thankyou.NewThankYouDeletedEvent(4, 2)), ErrBusStopped)
	})
}

func TestHandlerRegistry(t *testing.T) {
	r := NewHandlerRegistry()
	typed := &recordingHandler{}
	wildcard := &recordingHandler{}

	r.Register(typed, "A", "B")
	r.Register(typed, "A")
	r.Register(wildcard)
	r.Register(wildcard)

	assert.Equal(t, []shared.EventHandler{typed, wildcard}, r.HandlersFor("A"))
	assert.Equal(t, []shared.EventHandler{wildcard}, r.HandlersFor("C"))
	assert.Equal(t, 2, r.Len())

	r.Unregister(typed)
	assert.Equal(t, []shared.EventHandler{wildcard}, r.HandlersFor("A"))
	assert.Empty(t, r.typed)
	assert.Equal(t, 1, r.Len())
}
