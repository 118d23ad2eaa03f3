package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	appnotification "github.com/thankyou/backend/internal/application/notification"
	appsetting "github.com/thankyou/backend/internal/application/setting"
	apptag "github.com/thankyou/backend/internal/application/tag"
	appthankyou "github.com/thankyou/backend/internal/application/thankyou"
	"github.com/thankyou/backend/internal/domain/setting"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/infrastructure/auth"
	"github.com/thankyou/backend/internal/infrastructure/cache"
	"github.com/thankyou/backend/internal/infrastructure/config"
	"github.com/thankyou/backend/internal/infrastructure/event"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
	"github.com/thankyou/backend/internal/infrastructure/logger"
	"github.com/thankyou/backend/internal/infrastructure/notification"
	"github.com/thankyou/backend/internal/infrastructure/persistence"
	"github.com/thankyou/backend/internal/infrastructure/telemetry"
	"github.com/thankyou/backend/internal/interfaces/http/dto"
	"github.com/thankyou/backend/internal/interfaces/http/handler"
	"github.com/thankyou/backend/internal/interfaces/http/middleware"
	"github.com/thankyou/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	version          = "1.0.0"
	settingsCacheTTL = 30 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Fields: map[string]string{
			"service": cfg.App.Name,
			"env":     cfg.App.Env,
		},
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting thank-you service",
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// OpenTelemetry; every provider is a no-op when disabled
	ctx := context.Background()
	telCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telCfg, cfg.Telemetry.MetricsInterval, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	logsCfg := telCfg
	logsCfg.Enabled = telCfg.Enabled && cfg.Telemetry.LogsEnabled
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, logsCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	logLevel, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		logLevel = zapcore.InfoLevel
	}
	log = loggerProvider.Bridge(log, logLevel)

	// Database with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	// SQL migrations target postgres; single-node sqlite is migrated here
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	dbSystem := "postgresql"
	if cfg.Database.Driver == "sqlite" {
		dbSystem = "sqlite"
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBSystem:   dbSystem,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Redis is optional. The interface stays nil when it is disabled.
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = client.Close()
		}()
		redisClient = client
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	dir := persistence.NewGormDirectory(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	thankYouRepo := persistence.NewGormThankYouRepository(db.DB)
	var settingRepo setting.SettingRepository = persistence.NewGormSettingRepository(db.DB)
	if redisClient != nil {
		settingRepo = cache.NewCachedSettingRepository(settingRepo, redisClient, settingsCacheTTL, log)
	}

	// Event bus and the notification handler
	eventBus := event.NewInMemoryEventBus(log)
	var notifier appnotification.Notifier
	if cfg.Notification.Driver == "redis" {
		notifier = notification.NewRedisNotifier(redisClient, cfg.Notification.Channel)
	} else {
		notifier = notification.NewLogNotifier(log)
	}
	createdHandler := event.NewIdempotentHandler(
		appnotification.NewThankYouCreatedHandler(notifier, dir, log),
		cache.NewIdempotencyStore(redisClient, log),
		shared.DefaultIdempotencyConfig(),
		log,
	)
	eventBus.Subscribe(createdHandler)
	activity, err := telemetry.NewActivityMetrics(meterProvider.Meter(telemetry.TracerName))
	if err != nil {
		log.Fatal("Failed to create activity metrics", zap.Error(err))
	}
	eventBus.Subscribe(activity)
	if err := telemetry.ObserveCount(meterProvider.Meter(telemetry.TracerName),
		"thankyou_tags", "Tags stored", tagRepo.Count); err != nil {
		log.Fatal("Failed to register tag gauge", zap.Error(err))
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	resolver, err := appthankyou.NewResolver(
		appthankyou.NewUserThankable(dir),
		appthankyou.NewGroupThankable(dir),
	)
	if err != nil {
		log.Fatal("Failed to register thankable classes", zap.Error(err))
	}
	settingService := appsetting.NewSettingService(settingRepo, dir, setting.Values{
		setting.KeyTagsEnabled:   cfg.Tags.Enabled,
		setting.KeyTagsMandatory: cfg.Tags.Mandatory,
	}, log)
	thankYouService := appthankyou.NewThankYouService(
		thankYouRepo, tagRepo, resolver, dir, settingService, eventBus, log,
		appthankyou.Config{AdminMode: cfg.ThankYou.AdminMode, MaxLimit: cfg.ThankYou.MaxPageLimit},
	)
	tagService := apptag.NewTagService(tagRepo, dir, log, apptag.Config{
		NameMaxLength: cfg.Tags.NameMaxLength,
		MaxLimit:      cfg.ThankYou.MaxPageLimit,
	})

	// HTTP
	translator, err := i18n.New(cfg.I18n.DefaultLanguage)
	if err != nil {
		log.Fatal("Failed to load messages", zap.Error(err))
	}
	problems := dto.NewProblems(translator, cfg.HTTP.ProblemTypeURL)

	authCfg := middleware.AuthConfig{AllowUserHeader: cfg.JWT.AllowUserHeader}
	if cfg.JWT.Secret != "" {
		authCfg.JWTService = auth.NewJWTService(cfg.JWT)
	} else {
		log.Warn("jwt.secret is empty, bearer tokens are not accepted")
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine, err := router.NewEngine(router.EngineConfig{
		Logger:         log,
		Problems:       problems,
		CORS:           corsCfg,
		Auth:           authCfg,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Tracing: middleware.TracingConfig{
			Enabled:     cfg.Telemetry.Enabled,
			ServiceName: cfg.Telemetry.ServiceName,
		},
	}, router.Handlers{
		ThankYou: handler.NewThankYouHandler(problems, thankYouService),
		Tag:      handler.NewTagHandler(problems, tagService),
		Config:   handler.NewConfigHandler(problems, settingService),
		System:   handler.NewSystemHandler(db, cfg.App.Name, version),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus did not stop cleanly", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}

	stats := createdHandler.Stats()
	log.Info("Server exited gracefully",
		zap.Int64("notifications_sent", stats.Processed),
		zap.Int64("notifications_skipped", stats.Duplicate),
		zap.Int64("notifications_failed", stats.Failed),
	)
	_ = loggerProvider.Shutdown(shutdownCtx)
}
