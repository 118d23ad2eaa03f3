package shared

import "context"

// EventHandler reacts to published domain events
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the types the handler subscribes to by default.
	// Empty means every event.
	EventTypes() []string
}

// EventPublisher is what application services depend on. Publish is
// called after the aggregate has been saved; the returned error joins every
// handler failure and never undoes the save.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber wires handlers at startup
type EventSubscriber interface {
	// Subscribe registers handler for eventTypes, or for its own
	// EventTypes when none are given
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the process-wide publisher and subscriber
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	// Stop refuses further publishing
	Stop(ctx context.Context) error
}
