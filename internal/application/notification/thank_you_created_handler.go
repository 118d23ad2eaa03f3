// Package notification tells thanked users that someone appreciated them.
package notification

import (
	"context"
	"fmt"

	"github.com/thankyou/backend/internal/domain/directory"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/thankyou"
	"go.uber.org/zap"
)

// MessageTypeThankYou identifies thank-you notifications
const MessageTypeThankYou = "thank_you"

// Message is delivered to every recipient of a new thank you
type Message struct {
	Type         string  `json:"type"`
	ThankYouID   int64   `json:"thank_you_id"`
	AuthorID     int64   `json:"author_id"`
	AuthorName   string  `json:"author_name"`
	RecipientIDs []int64 `json:"recipient_ids"`
	Description  string  `json:"description"`
}

// Notifier delivers messages over some channel (pub/sub, log, mail)
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// ThankYouCreatedHandler notifies the recipients of new thank-yous
type ThankYouCreatedHandler struct {
	notifier Notifier
	dir      directory.Directory
	logger   *zap.Logger
}

// NewThankYouCreatedHandler creates a new handler for ThankYouCreated events
func NewThankYouCreatedHandler(notifier Notifier, dir directory.Directory, logger *zap.Logger) *ThankYouCreatedHandler {
	return &ThankYouCreatedHandler{
		notifier: notifier,
		dir:      dir,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ThankYouCreatedHandler) EventTypes() []string {
	return []string{thankyou.EventTypeThankYouCreated}
}

// Handle sends one message covering all recipients of the event
func (h *ThankYouCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*thankyou.ThankYouCreatedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", thankyou.EventTypeThankYouCreated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			thankyou.EventTypeThankYouCreated, event.EventType())
	}

	if len(created.RecipientIDs) == 0 {
		h.logger.Debug("No recipients to notify", zap.Int64("thank_you_id", created.ThankYouID))
		return nil
	}

	users, err := h.dir.UsersByIDs(ctx, []int64{created.AuthorID})
	if err != nil {
		return fmt.Errorf("failed to load author: %w", err)
	}

	msg := Message{
		Type:         MessageTypeThankYou,
		ThankYouID:   created.ThankYouID,
		AuthorID:     created.AuthorID,
		AuthorName:   directory.UserName(users, created.AuthorID),
		RecipientIDs: created.RecipientIDs,
		Description:  created.Description,
	}

	if err := h.notifier.Notify(ctx, msg); err != nil {
		h.logger.Warn("Failed to notify thank you recipients",
			zap.Int64("thank_you_id", created.ThankYouID),
			zap.Int("recipients", len(created.RecipientIDs)),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("Thank you recipients notified",
		zap.Int64("thank_you_id", created.ThankYouID),
		zap.Int64s("recipient_ids", created.RecipientIDs),
	)
	return nil
}
