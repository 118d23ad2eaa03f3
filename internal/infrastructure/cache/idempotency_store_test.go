package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thankyou/backend/internal/domain/shared"
	"go.uber.org/zap"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return s, client
}

func TestInMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore(0)
	defer store.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	isNew, err := store.MarkProcessed(ctx, "evt-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = store.MarkProcessed(ctx, "evt-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, isNew)

	processed, err := store.IsProcessed(ctx, "evt-1")
	require.NoError(t, err)
	assert.True(t, processed)

	now = now.Add(2 * time.Minute)

	processed, err = store.IsProcessed(ctx, "evt-1")
	require.NoError(t, err)
	assert.False(t, processed)

	store.cleanup()
	assert.Equal(t, 0, store.Len())

	isNew, err = store.MarkProcessed(ctx, "evt-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, isNew)

	require.NoError(t, store.Release(ctx, "evt-1"))
	isNew, err = store.MarkProcessed(ctx, "evt-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, isNew)
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestRedisIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	s, client := newMiniRedis(t)
	store := NewRedisIdempotencyStore(client, "")

	isNew, err := store.MarkProcessed(ctx, "evt-9", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.True(t, s.Exists(DefaultIdempotencyPrefix+"evt-9"))

	isNew, err = store.MarkProcessed(ctx, "evt-9", time.Hour)
	require.NoError(t, err)
	assert.False(t, isNew)

	require.NoError(t, store.Release(ctx, "evt-9"))
	assert.False(t, s.Exists(DefaultIdempotencyPrefix+"evt-9"))

	_, err = store.MarkProcessed(ctx, "evt-9", time.Hour)
	require.NoError(t, err)
	s.FastForward(2 * time.Hour)

	processed, err := store.IsProcessed(ctx, "evt-9")
	require.NoError(t, err)
	assert.False(t, processed)

	s.Close()
	_, err = store.MarkProcessed(ctx, "evt-10", time.Hour)
	assert.Error(t, err)
}

func TestNewIdempotencyStore(t *testing.T) {
	_, client := newMiniRedis(t)

	assert.IsType(t, &RedisIdempotencyStore{}, NewIdempotencyStore(client, zap.NewNop()))

	var store shared.IdempotencyStore = NewIdempotencyStore(nil, zap.NewNop())
	defer store.Close()
	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
}
