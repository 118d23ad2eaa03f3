package thankyou

import "github.com/thankyou/backend/internal/domain/shared"

// Event type constants
const (
	EventTypeThankYouCreated = "ThankYouCreated"
	EventTypeThankYouUpdated = "ThankYouUpdated"
	EventTypeThankYouDeleted = "ThankYouDeleted"
)

// ThankYouCreatedEvent is published after a thank you is first saved
type ThankYouCreatedEvent struct {
	shared.BaseDomainEvent
	ThankYouID   int64   `json:"thank_you_id"`
	AuthorID     int64   `json:"author_id"`
	RecipientIDs []int64 `json:"recipient_ids"`
	Description  string  `json:"description"`
}

// NewThankYouCreatedEvent creates a new ThankYouCreatedEvent
func NewThankYouCreatedEvent(t *ThankYou) *ThankYouCreatedEvent {
	return &ThankYouCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeThankYouCreated, AggregateTypeThankYou, t.ID),
		ThankYouID:      t.ID,
		AuthorID:        t.author.ID,
		RecipientIDs:    t.NotifiableUserIDs(),
		Description:     t.description,
	}
}

// ThankYouUpdatedEvent is published after an update is saved
type ThankYouUpdatedEvent struct {
	shared.BaseDomainEvent
	ThankYouID int64 `json:"thank_you_id"`
}

// NewThankYouUpdatedEvent creates a new ThankYouUpdatedEvent
func NewThankYouUpdatedEvent(t *ThankYou) *ThankYouUpdatedEvent {
	return &ThankYouUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeThankYouUpdated, AggregateTypeThankYou, t.ID),
		ThankYouID:      t.ID,
	}
}

// ThankYouDeletedEvent is published after a thank you is deleted
type ThankYouDeletedEvent struct {
	shared.BaseDomainEvent
	ThankYouID int64 `json:"thank_you_id"`
	DeletedBy  int64 `json:"deleted_by"`
}

// NewThankYouDeletedEvent creates a new ThankYouDeletedEvent
func NewThankYouDeletedEvent(id, deletedBy int64) *ThankYouDeletedEvent {
	return &ThankYouDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeThankYouDeleted, AggregateTypeThankYou, id),
		ThankYouID:      id,
		DeletedBy:       deletedBy,
	}
}
