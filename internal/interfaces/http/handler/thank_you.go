package handler

import (
	"github.com/gin-gonic/gin"
	appthankyou "github.com/thankyou/backend/internal/application/thankyou"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
	"github.com/thankyou/backend/internal/infrastructure/logger"
	"github.com/thankyou/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// ListThankYousRequest holds the query of GET /thanks
type ListThankYousRequest struct {
	Limit   int `form:"limit" binding:"omitempty,min=0"`
	Offset  int `form:"offset" binding:"omitempty,min=0"`
	Thanked int `form:"thanked" binding:"omitempty,oneof=0 1"`
}

// UserThanksRequest holds the query of GET /users/{id}/thanks
type UserThanksRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=0"`
}

// ThankYouHandler handles thank-you endpoints
type ThankYouHandler struct {
	BaseHandler
	service *appthankyou.ThankYouService
}

// NewThankYouHandler creates a new ThankYouHandler
func NewThankYouHandler(problems *dto.Problems, service *appthankyou.ThankYouService) *ThankYouHandler {
	return &ThankYouHandler{BaseHandler: NewBaseHandler(problems), service: service}
}

// Get handles GET /thanks/{id}
func (h *ThankYouHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), h.ActorID(c), id)
	if err != nil {
		h.HandleDomainError(c, err, Titles{Failure: i18n.TitleThankYouNotFound, NotFound: i18n.TitleThankYouNotFound})
		return
	}
	h.Success(c, resp)
}

// List handles GET /thanks
func (h *ThankYouHandler) List(c *gin.Context) {
	var req ListThankYousRequest
	if !h.BindQuery(c, &req) {
		return
	}

	items, err := h.service.List(c.Request.Context(), h.ActorID(c), appthankyou.ListThankYousQuery{
		Limit:   req.Limit,
		Offset:  req.Offset,
		Thanked: req.Thanked == 1,
	})
	if err != nil {
		h.HandleDomainError(c, err, Titles{})
		return
	}
	h.Success(c, items)
}

// Create handles POST /thanks. A notification failure is logged and does
// not change the response.
func (h *ThankYouHandler) Create(c *gin.Context) {
	p, ok := h.DecodeBody(c)
	if !ok {
		return
	}

	result, violations, err := h.service.Create(c.Request.Context(), h.ActorID(c), p)
	if err != nil {
		h.HandleDomainError(c, err, Titles{Failure: i18n.TitleThankYouCreate})
		return
	}
	if !violations.Empty() {
		h.Violations(c, i18n.TitleThankYouCreate, violations)
		return
	}

	if result.NotifyErr != nil {
		logger.GetGinLogger(c).Error("Thank you created, notification failed (partial failure)",
			zap.Int64("thank_you_id", result.ID),
			zap.Error(result.NotifyErr),
		)
	}
	h.Success(c, true)
}

// Update handles PATCH /thanks/{id}
func (h *ThankYouHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	p, ok := h.DecodeBody(c)
	if !ok {
		return
	}

	violations, err := h.service.Update(c.Request.Context(), h.ActorID(c), id, p)
	if err != nil {
		h.HandleDomainError(c, err, Titles{
			Failure:   i18n.TitleThankYouModify,
			NotFound:  i18n.TitleThankYouNotFound,
			Forbidden: i18n.TitleThankYouNoPermission,
		})
		return
	}
	if !violations.Empty() {
		h.Violations(c, i18n.TitleThankYouModify, violations)
		return
	}
	h.Success(c, true)
}

// Delete handles DELETE /thanks/{id}
func (h *ThankYouHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.ActorID(c), id); err != nil {
		h.HandleDomainError(c, err, Titles{
			Failure:   i18n.TitleThankYouDelete,
			NotFound:  i18n.TitleThankYouNotFound,
			Forbidden: i18n.TitleThankYouNoPermission,
		})
		return
	}
	h.Success(c, true)
}

// ListForUser handles GET /users/{id}/thanks
func (h *ThankYouHandler) ListForUser(c *gin.Context) {
	userID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req UserThanksRequest
	if !h.BindQuery(c, &req) {
		return
	}

	items, err := h.service.ListForUser(c.Request.Context(), h.ActorID(c), userID, req.Limit)
	if err != nil {
		h.HandleDomainError(c, err, Titles{})
		return
	}
	h.Success(c, items)
}

// CountForUser handles GET /users/{id}/thanks/count
func (h *ThankYouHandler) CountForUser(c *gin.Context) {
	userID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	count, err := h.service.CountForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err, Titles{})
		return
	}
	h.Success(c, count)
}
