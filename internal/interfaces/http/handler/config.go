package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	appsetting "github.com/thankyou/backend/internal/application/setting"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
	"github.com/thankyou/backend/internal/interfaces/http/dto"
)

// ConfigHandler serves the runtime options
type ConfigHandler struct {
	BaseHandler
	service *appsetting.SettingService
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(problems *dto.Problems, service *appsetting.SettingService) *ConfigHandler {
	return &ConfigHandler{BaseHandler: NewBaseHandler(problems), service: service}
}

// Get handles GET /config
func (h *ConfigHandler) Get(c *gin.Context) {
	values, err := h.service.Values(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err, Titles{})
		return
	}
	h.Success(c, values)
}

// Put handles PUT /config. The body maps option names to new values.
func (h *ConfigHandler) Put(c *gin.Context) {
	p, ok := h.DecodeBody(c)
	if !ok {
		return
	}

	values, err := h.service.Set(c.Request.Context(), h.ActorID(c), p)
	if err != nil {
		var invalid *shared.ValidationError
		if errors.As(err, &invalid) {
			h.Violations(c, i18n.TitleConfigInvalid, invalid.Violations)
			return
		}
		h.HandleDomainError(c, err, Titles{Failure: i18n.TitleConfigInvalid, Forbidden: i18n.TitleConfigNoPermission})
		return
	}
	h.Success(c, values)
}
