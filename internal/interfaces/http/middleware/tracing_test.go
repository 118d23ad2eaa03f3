package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thankyou/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer installs an in-memory global tracer provider for the test
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func newTracingRouter(cfg TracingConfig, status int) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Tracing(cfg), func(c *gin.Context) {
		c.Set(logger.GinUserIDKey, int64(42))
		c.Next()
	}, SpanAttributes())
	r.GET("/thanks/:id", func(c *gin.Context) {
		c.Status(status)
	})
	return r
}

func TestTracing_Disabled(t *testing.T) {
	sr := setupTestTracer(t)
	r := newTracingRouter(TracingConfig{Enabled: false}, http.StatusOK)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/thanks/1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_Enabled(t *testing.T) {
	sr := setupTestTracer(t)
	r := newTracingRouter(TracingConfig{Enabled: true, ServiceName: "thankyou-test"}, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/thanks/1", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Len(t, sr.Ended(), 1)
	span := sr.Ended()[0]
	assert.Contains(t, span.Name(), "/thanks/:id")
	assert.Contains(t, span.Attributes(), attribute.String("request_id", "req-1"))
	assert.Contains(t, span.Attributes(), attribute.Int64("user_id", 42))
	assert.NotEqual(t, codes.Error, span.Status().Code)
}

func TestSpanAttributes_ClientErrorMarksSpan(t *testing.T) {
	sr := setupTestTracer(t)
	r := newTracingRouter(TracingConfig{Enabled: true, ServiceName: "thankyou-test"}, http.StatusNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/thanks/9", nil))

	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, codes.Error, sr.Ended()[0].Status().Code)
	assert.Equal(t, http.StatusText(http.StatusNotFound), sr.Ended()[0].Status().Description)
}
