package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables in spans
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string        // "postgresql" or "sqlite"
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// RegisterDBTracing installs the otelgorm plugin on db and marks spans of
// queries slower than the threshold. Disabled configs are a no-op.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartTimeKey, time.Now())
		}
	}
	after := func(tx *gorm.DB) { markSlowQuery(tx, cfg.SlowQueryThresh) }

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("thankyou_timing:before_create", before); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("thankyou_timing:before_query", before); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("thankyou_timing:before_update", before); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("thankyou_timing:before_delete", before); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("thankyou_timing:before_row", before); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("thankyou_timing:before_raw", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("thankyou_slow_query:create", after); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("thankyou_slow_query:query", after); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("thankyou_slow_query:update", after); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("thankyou_slow_query:delete", after); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("thankyou_slow_query:row", after); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("thankyou_slow_query:raw", after); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
		zap.String("db_system", cfg.DBSystem),
	)
	return nil
}

// markSlowQuery annotates the span current in the statement context
func markSlowQuery(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		RecordError(span, tx.Error)
	}

	started, ok := ctx.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(started); elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("threshold_ms", threshold.Milliseconds()),
		))
	}
}
