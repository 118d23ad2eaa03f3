package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("returns nop logger when absent", func(t *testing.T) {
		l := FromContext(context.Background())
		assert.NotNil(t, l)
	})

	t.Run("returns stored logger", func(t *testing.T) {
		stored := zap.NewExample()
		ctx := WithContext(context.Background(), stored)
		assert.Same(t, stored, FromContext(ctx))
	})
}

func TestWithRequestIDAndUserID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, _ := WithRequestID(context.Background(), base, "req-1")
	ctx, l := WithUserID(ctx, FromContext(ctx), 42)

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, int64(42), GetUserID(ctx))

	l.Info("Thank you created")
	L(ctx).Info("Tag renamed")

	entries := logs.All()
	assert.Len(t, entries, 2)
	for _, e := range entries {
		fields := e.ContextMap()
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, int64(42), fields["user_id"])
	}
}

func TestGetters_Empty(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Zero(t, GetUserID(ctx))
	assert.NotNil(t, L(ctx))
}
