// Package notification delivers thank-you messages to recipients.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	appnotification "github.com/thankyou/backend/internal/application/notification"
	"go.uber.org/zap"
)

// RedisNotifier publishes each message as JSON on a Redis channel. Delivery
// to users (web push, mail) is done by subscribers of that channel.
type RedisNotifier struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisNotifier creates a notifier publishing on channel
func NewRedisNotifier(client redis.UniversalClient, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

// Notify publishes msg
func (n *RedisNotifier) Notify(ctx context.Context, msg appnotification.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// LogNotifier writes messages to the log. Used when no broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notification")}
}

// Notify logs msg
func (n *LogNotifier) Notify(_ context.Context, msg appnotification.Message) error {
	n.logger.Info("Thank you notification",
		zap.Int64("thank_you_id", msg.ThankYouID),
		zap.String("author", msg.AuthorName),
		zap.Int64s("recipient_ids", msg.RecipientIDs),
	)
	return nil
}

var (
	_ appnotification.Notifier = (*RedisNotifier)(nil)
	_ appnotification.Notifier = (*LogNotifier)(nil)
)
