package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thankyou/backend/internal/infrastructure/auth"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
	"github.com/thankyou/backend/internal/infrastructure/logger"
	"github.com/thankyou/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys and headers
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
	UserIDHeader  = "X-User-ID"
)

var errBadUserHeader = errors.New("malformed user id header")

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	// JWTService validates bearer tokens. Nil disables bearer auth.
	JWTService *auth.JWTService
	// AllowUserHeader trusts X-User-ID when no bearer token is sent. Only
	// enable behind a gateway that sets the header itself.
	AllowUserHeader bool
	Problems        *dto.Problems
	Logger          *zap.Logger
}

// Authenticate identifies the acting user. Requests without credentials
// continue anonymously; credentials that fail validation are rejected
// with 401.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := identify(c, cfg)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Authentication failed",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
				)
			}
			cfg.Problems.Abort(c, http.StatusUnauthorized, i18n.TitleUnauthorized)
			return
		}

		if userID > 0 {
			c.Set(logger.GinUserIDKey, userID)
			ctx := c.Request.Context()
			ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), userID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// identify returns 0 for anonymous requests
func identify(c *gin.Context, cfg AuthConfig) (int64, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader != "" && cfg.JWTService != nil {
		tokenString, ok := strings.CutPrefix(authHeader, BearerPrefix)
		if !ok || tokenString == "" {
			return 0, auth.ErrInvalidToken
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			return 0, err
		}
		c.Set(JWTClaimsKey, claims)
		return claims.UserID()
	}

	if cfg.AllowUserHeader {
		if raw := c.GetHeader(UserIDHeader); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return 0, errBadUserHeader
			}
			return id, nil
		}
	}
	return 0, nil
}

// RequireUser rejects anonymous requests with 401
func RequireUser(problems *dto.Problems) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			problems.Abort(c, http.StatusUnauthorized, i18n.TitleUnauthorized)
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(logger.GinUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}

// GetJWTClaims retrieves the validated token claims, nil when the request
// was not authenticated with a bearer token
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
