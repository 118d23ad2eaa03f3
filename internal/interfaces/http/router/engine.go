package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
	"github.com/thankyou/backend/internal/infrastructure/logger"
	"github.com/thankyou/backend/internal/interfaces/http/dto"
	"github.com/thankyou/backend/internal/interfaces/http/handler"
	"github.com/thankyou/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers are the endpoint implementations mounted by NewEngine
type Handlers struct {
	ThankYou *handler.ThankYouHandler
	Tag      *handler.TagHandler
	Config   *handler.ConfigHandler
	System   *handler.SystemHandler
}

// EngineConfig holds the middleware settings of the HTTP engine
type EngineConfig struct {
	APIVersion     string
	Logger         *zap.Logger
	Problems       *dto.Problems
	CORS           middleware.CORSConfig
	Auth           middleware.AuthConfig
	MaxBodySize    int64
	TrustedProxies []string
	Tracing        middleware.TracingConfig
}

// NewEngine builds the gin engine with the middleware chain and every
// route. GET /health is also served outside the versioned prefix.
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	middleware.SetupValidator()

	cfg.Auth.Problems = cfg.Problems
	if cfg.Auth.Logger == nil {
		cfg.Auth.Logger = cfg.Logger
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(cfg.Tracing),
		logger.Recovery(cfg.Logger),
		logger.GinMiddleware(cfg.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.BodyLimit(cfg.MaxBodySize, cfg.Problems),
		middleware.Authenticate(cfg.Auth),
		middleware.SpanAttributes(),
	)

	engine.NoRoute(func(c *gin.Context) {
		cfg.Problems.Abort(c, http.StatusNotFound, i18n.TitleNoRoute)
	})
	engine.NoMethod(func(c *gin.Context) {
		cfg.Problems.Abort(c, http.StatusMethodNotAllowed, i18n.TitleMethodNotAllowed)
	})

	engine.GET("/health", h.System.Health)

	requireUser := middleware.RequireUser(cfg.Problems)
	opts := []RouterOption{}
	if cfg.APIVersion != "" {
		opts = append(opts, WithAPIVersion(cfg.APIVersion))
	}
	NewRouter(engine, opts...).
		Register(
			ThankYouRoutes(h.ThankYou, requireUser),
			UserRoutes(h.ThankYou),
			TagRoutes(h.Tag, requireUser),
			ConfigRoutes(h.Config, requireUser),
			SystemRoutes(h.System),
		).
		Setup()

	return engine, nil
}
