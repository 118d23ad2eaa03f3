// Package handler implements the REST endpoints on top of the application
// services.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thankyou/backend/internal/application/payload"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
	"github.com/thankyou/backend/internal/infrastructure/logger"
	"github.com/thankyou/backend/internal/interfaces/http/dto"
	"github.com/thankyou/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Titles selects the problem titles used when an operation fails
type Titles struct {
	// Failure is used for validation failures and unmapped client errors
	Failure   string
	NotFound  string
	Forbidden string
}

// BaseHandler provides common handler utilities
type BaseHandler struct {
	problems *dto.Problems
}

// NewBaseHandler creates a BaseHandler rendering problems with problems
func NewBaseHandler(problems *dto.Problems) BaseHandler {
	return BaseHandler{problems: problems}
}

// Success sends data with status 200
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Problem sends a problem body and aborts
func (h *BaseHandler) Problem(c *gin.Context, status int, titleKey string, params ...dto.InvalidParam) {
	h.problems.Abort(c, status, titleKey, params...)
}

// Violations sends 400 with one invalid-params entry per violation
func (h *BaseHandler) Violations(c *gin.Context, titleKey string, violations shared.Violations) {
	logger.GetGinLogger(c).Debug("Request rejected", zap.Strings("fields", violations.Fields()))
	h.Problem(c, http.StatusBadRequest, titleKey, h.problems.Params(c, violations)...)
}

// HandleDomainError converts a service error into a problem response.
// Server errors are logged with their cause, which never reaches the body.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error, titles Titles) {
	status := dto.StatusForError(err)
	switch status {
	case http.StatusNotFound:
		h.Problem(c, status, orDefault(titles.NotFound, orDefault(titles.Failure, i18n.TitleBadRequest)))
	case http.StatusUnauthorized:
		h.Problem(c, status, orDefault(titles.Forbidden, i18n.TitleUnauthorized))
	case http.StatusInternalServerError:
		_ = c.Error(err)
		logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
		h.Problem(c, status, i18n.TitleServer)
	default:
		h.Problem(c, status, orDefault(titles.Failure, i18n.TitleBadRequest))
	}
}

// ActorID returns the authenticated user, 0 for anonymous requests
func (h *BaseHandler) ActorID(c *gin.Context) int64 {
	id, _ := middleware.GetUserID(c)
	return id
}

// ParseID reads a positive integer path parameter. On failure a 400
// problem has been sent.
func (h *BaseHandler) ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.Problem(c, http.StatusBadRequest, i18n.TitleBadID)
		return 0, false
	}
	return id, true
}

// DecodeBody reads the request body as a JSON object. On failure a problem
// has been sent.
func (h *BaseHandler) DecodeBody(c *gin.Context) (payload.Payload, bool) {
	p, err := payload.Decode(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Problem(c, http.StatusRequestEntityTooLarge, i18n.TitleBodyTooLarge)
			return nil, false
		}
		h.Problem(c, http.StatusBadRequest, i18n.TitleBadBody)
		return nil, false
	}
	return p, true
}

// BindQuery binds query parameters into obj. On failure a 400 problem
// naming the rejected parameters has been sent.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Problem(c, http.StatusBadRequest, i18n.TitleBadQuery, middleware.BindingParams(c, h.problems, err)...)
		return false
	}
	return true
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
