package shared

import "time"

// AggregateRoot is an entity that queues domain events until the
// application layer has saved it and publishes them.
type AggregateRoot interface {
	Entity
	Record(event DomainEvent)
	PendingEvents() []DomainEvent
	PullEvents() []DomainEvent
}

// BaseAggregateRoot carries the optimistic-lock version and pending events.
// Version starts at 1 and grows on every Touch.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	pending []DomainEvent
}

func NewBaseAggregateRoot(now time.Time) BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(now),
		Version:    1,
	}
}

// Touch stamps a modification at now
func (a *BaseAggregateRoot) Touch(now time.Time) {
	a.UpdatedAt = now
	a.Version++
}

// Record queues event for publishing
func (a *BaseAggregateRoot) Record(event DomainEvent) {
	a.pending = append(a.pending, event)
}

func (a *BaseAggregateRoot) PendingEvents() []DomainEvent {
	return a.pending
}

// PullEvents returns the queued events and empties the queue
func (a *BaseAggregateRoot) PullEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	return events
}
