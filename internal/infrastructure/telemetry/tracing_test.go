package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)

	ctx, span := StartServiceSpan(context.Background(), "thank_you", "create",
		SpanAttrActorID, int64(42),
		SpanAttrThanked, 3,
		"dangling",
	)
	assert.NotEmpty(t, GetTraceID(ctx))
	RecordError(span, errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "thank_you.create", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "boom", got.Status().Description)
	assert.Contains(t, got.Attributes(), attribute.Int64(SpanAttrActorID, 42))
	assert.Contains(t, got.Attributes(), attribute.Int(SpanAttrThanked, 3))
	assert.Len(t, got.Attributes(), 2)
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestRecordError_Nil(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := StartServiceSpan(context.Background(), "tag", "update")
	RecordError(span, nil)
	span.End()

	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, codes.Unset, sr.Ended()[0].Status().Code)
}

type named string

func (n named) String() string { return "name:" + string(n) }

func TestToAttribute(t *testing.T) {
	tests := []struct {
		value any
		want  attribute.KeyValue
	}{
		{"s", attribute.String("k", "s")},
		{7, attribute.Int("k", 7)},
		{int64(7), attribute.Int64("k", 7)},
		{1.5, attribute.Float64("k", 1.5)},
		{true, attribute.Bool("k", true)},
		{[]string{"a"}, attribute.StringSlice("k", []string{"a"})},
		{[]int64{1, 2}, attribute.Int64Slice("k", []int64{1, 2})},
		{named("x"), attribute.String("k", "name:x")},
		{struct{ A int }{1}, attribute.String("k", "{1}")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toAttribute("k", tt.value))
	}
}
