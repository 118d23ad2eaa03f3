package router

import (
	"github.com/gin-gonic/gin"
	"github.com/thankyou/backend/internal/interfaces/http/handler"
)

// ThankYouRoutes mounts /thanks. Mutations require an authenticated user.
func ThankYouRoutes(h *handler.ThankYouHandler, requireUser gin.HandlerFunc) *Resource {
	return NewResource("/thanks").
		GET("", h.List).
		GET("/:id", h.Get).
		POST("", requireUser, h.Create).
		Modify("/:id", requireUser, h.Update).
		DELETE("/:id", requireUser, h.Delete)
}

// UserRoutes mounts the per-user thank-you listings
func UserRoutes(h *handler.ThankYouHandler) *Resource {
	return NewResource("/users").
		GET("/:id/thanks", h.ListForUser).
		GET("/:id/thanks/count", h.CountForUser)
}

// TagRoutes mounts /tags. Tags cannot be deleted.
func TagRoutes(h *handler.TagHandler, requireUser gin.HandlerFunc) *Resource {
	return NewResource("/tags").
		GET("", h.List).
		GET("/count", h.Count).
		GET("/:id", h.Get).
		POST("", requireUser, h.Create).
		Modify("/:id", requireUser, h.Update)
}

// ConfigRoutes mounts the runtime option endpoints
func ConfigRoutes(h *handler.ConfigHandler, requireUser gin.HandlerFunc) *Resource {
	return NewResource("/config").
		GET("", h.Get).
		PUT("", requireUser, h.Put)
}

// SystemRoutes mounts health and build information
func SystemRoutes(h *handler.SystemHandler) *Resource {
	return NewResource("/system").
		GET("/health", h.Health).
		GET("/info", h.GetSystemInfo)
}
