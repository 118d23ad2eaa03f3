package cache

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thankyou/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// NewIdempotencyStore returns a Redis store when a client is available and
// an in-memory store otherwise
func NewIdempotencyStore(client redis.UniversalClient, logger *zap.Logger) shared.IdempotencyStore {
	if client != nil {
		logger.Info("using Redis idempotency store")
		return NewRedisIdempotencyStore(client, "")
	}
	logger.Warn("Redis disabled, using in-memory idempotency store; " +
		"notifications may repeat when several instances run")
	return NewInMemoryIdempotencyStore(5 * time.Minute)
}
