package event

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/thankyou/backend/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrBusStopped is returned by Publish once Stop has been called
var ErrBusStopped = errors.New("event bus stopped")

const tracerName = "github.com/thankyou/backend/internal/infrastructure/event"

// InMemoryEventBus delivers thank-you events to handlers on the publishing
// goroutine, after the change has been committed. Each event gets its own
// span under the caller's span.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	stopped  atomic.Bool
}

func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger.Named("event_bus"),
	}
}

// Publish runs every matching handler for each event. A failing or panicking
// handler does not stop the others; all failures come back joined.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if b.stopped.Load() {
		return ErrBusStopped
	}

	var errs []error
	for _, event := range events {
		if err := b.deliver(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *InMemoryEventBus) deliver(ctx context.Context, event shared.DomainEvent) error {
	handlers := b.registry.HandlersFor(event.EventType())
	if len(handlers) == 0 {
		return nil
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "event."+event.EventType(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("event.id", event.EventID().String()),
			attribute.String("event.aggregate_type", event.AggregateType()),
			attribute.Int64("event.aggregate_id", event.AggregateID()),
			attribute.Int("event.handlers", len(handlers)),
		),
	)
	defer span.End()

	var errs []error
	for _, handler := range handlers {
		if err := dispatch(ctx, handler, event); err != nil {
			b.logger.Error("handler failed",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Int64("aggregate_id", event.AggregateID()),
				zap.String("handler", fmt.Sprintf("%T", handler)),
				zap.Error(err),
			)
			span.RecordError(err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d handlers failed", len(errs), len(handlers)))
	}
	return errors.Join(errs...)
}

// Subscribe registers a handler. Without explicit types the handler's own
// EventTypes are used.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.String("handler", fmt.Sprintf("%T", handler)),
		zap.Strings("event_types", eventTypes),
	)
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start re-opens a stopped bus
func (b *InMemoryEventBus) Start(context.Context) error {
	b.stopped.Store(false)
	b.logger.Info("event bus started", zap.Int("handlers", b.registry.Len()))
	return nil
}

// Stop makes later Publish calls fail with ErrBusStopped. Delivery runs on
// the publisher's goroutine, so a Publish already in progress completes.
func (b *InMemoryEventBus) Stop(context.Context) error {
	b.stopped.Store(true)
	b.logger.Info("event bus stopped")
	return nil
}

func dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%T panicked on %s: %v", handler, event.EventType(), r)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
