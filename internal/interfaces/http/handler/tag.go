package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apptag "github.com/thankyou/backend/internal/application/tag"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
	"github.com/thankyou/backend/internal/interfaces/http/dto"
)

// ListTagsRequest holds the query of GET /tags
type ListTagsRequest struct {
	Limit  int    `form:"limit" binding:"omitempty,min=0"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
	Name   string `form:"name" binding:"max=255"`
}

// TagHandler handles tag endpoints
type TagHandler struct {
	BaseHandler
	service *apptag.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(problems *dto.Problems, service *apptag.TagService) *TagHandler {
	return &TagHandler{BaseHandler: NewBaseHandler(problems), service: service}
}

// Get handles GET /tags/{id}
func (h *TagHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err, Titles{NotFound: i18n.TitleTagNotFound})
		return
	}
	h.Success(c, resp)
}

// List handles GET /tags
func (h *TagHandler) List(c *gin.Context) {
	var req ListTagsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	items, err := h.service.List(c.Request.Context(), apptag.ListTagsQuery{
		Limit:  req.Limit,
		Offset: req.Offset,
		Name:   req.Name,
	})
	if err != nil {
		h.HandleDomainError(c, err, Titles{})
		return
	}
	h.Success(c, items)
}

// Count handles GET /tags/count
func (h *TagHandler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err, Titles{})
		return
	}
	h.Success(c, count)
}

// Create handles POST /tags
func (h *TagHandler) Create(c *gin.Context) {
	p, ok := h.DecodeBody(c)
	if !ok {
		return
	}

	resp, violations, err := h.service.Create(c.Request.Context(), h.ActorID(c), p)
	h.respond(c, i18n.TitleTagCreate, resp, violations, err)
}

// Update handles PATCH /tags/{id}
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	p, ok := h.DecodeBody(c)
	if !ok {
		return
	}

	resp, violations, err := h.service.Update(c.Request.Context(), h.ActorID(c), id, p)
	h.respond(c, i18n.TitleTagModify, resp, violations, err)
}

// respond reports a taken name as a violation of the name field
func (h *TagHandler) respond(c *gin.Context, title string, resp *apptag.TagResponse, violations shared.Violations, err error) {
	if errors.Is(err, tag.ErrDuplicateName) {
		violations.Add(apptag.FieldName, apptag.CodeNameNotUnique)
		err = nil
	}
	if err != nil {
		h.HandleDomainError(c, err, Titles{Failure: title, NotFound: i18n.TitleTagNotFound})
		return
	}
	if !violations.Empty() {
		h.Violations(c, title, violations)
		return
	}
	c.JSON(http.StatusOK, resp)
}
