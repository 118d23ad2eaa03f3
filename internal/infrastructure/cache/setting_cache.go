package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thankyou/backend/internal/domain/setting"
	"go.uber.org/zap"
)

// DefaultSettingsKey holds the cached option values
const DefaultSettingsKey = "thankyou:settings"

// CachedSettingRepository serves option values from Redis and falls back to
// the wrapped repository. Save writes through and drops the cached copy.
type CachedSettingRepository struct {
	next   setting.SettingRepository
	client redis.UniversalClient
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSettingRepository wraps next with a Redis read cache
func NewCachedSettingRepository(next setting.SettingRepository, client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *CachedSettingRepository {
	return &CachedSettingRepository{
		next:   next,
		client: client,
		key:    DefaultSettingsKey,
		ttl:    ttl,
		logger: logger,
	}
}

// Load returns cached values, filling the cache on a miss. Cache errors
// are logged and bypassed.
func (r *CachedSettingRepository) Load(ctx context.Context) (setting.Values, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	switch {
	case err == nil:
		var values setting.Values
		if jsonErr := json.Unmarshal(raw, &values); jsonErr == nil {
			return values, nil
		}
		r.logger.Warn("Discarding unreadable cached settings")
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Settings cache read failed", zap.Error(err))
	}

	values, err := r.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(values); jsonErr == nil {
		if setErr := r.client.Set(ctx, r.key, encoded, r.ttl).Err(); setErr != nil {
			r.logger.Warn("Settings cache write failed", zap.Error(setErr))
		}
	}
	return values, nil
}

// Save stores values and invalidates the cache
func (r *CachedSettingRepository) Save(ctx context.Context, values setting.Values) error {
	if err := r.next.Save(ctx, values); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		r.logger.Warn("Settings cache invalidation failed", zap.Error(err))
	}
	return nil
}

var _ setting.SettingRepository = (*CachedSettingRepository)(nil)
