package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/thankyou"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// AttrEventType labels activity counters
var AttrEventType = attribute.Key("event_type")

// ActivityMetrics counts thank-you lifecycle events. It subscribes to the
// event bus like any other handler and never fails the publish.
type ActivityMetrics struct {
	events     metric.Int64Counter
	recipients metric.Int64Histogram
}

// NewActivityMetrics creates the activity instruments on meter
func NewActivityMetrics(meter metric.Meter) (*ActivityMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	events, err := meter.Int64Counter("thankyou_events_total",
		metric.WithDescription("Thank-you lifecycle events by type"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create events counter: %w", err)
	}

	recipients, err := meter.Int64Histogram("thankyou_recipients",
		metric.WithDescription("Users notified per created thank you"),
		metric.WithUnit("{user}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 5, 10, 25, 50, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipients histogram: %w", err)
	}

	return &ActivityMetrics{events: events, recipients: recipients}, nil
}

// EventTypes returns the event types this handler is interested in
func (m *ActivityMetrics) EventTypes() []string {
	return []string{
		thankyou.EventTypeThankYouCreated,
		thankyou.EventTypeThankYouUpdated,
		thankyou.EventTypeThankYouDeleted,
	}
}

// Handle records the event
func (m *ActivityMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	m.events.Add(ctx, 1, metric.WithAttributes(AttrEventType.String(event.EventType())))
	if created, ok := event.(*thankyou.ThankYouCreatedEvent); ok {
		m.recipients.Record(ctx, int64(len(created.RecipientIDs)))
	}
	return nil
}
