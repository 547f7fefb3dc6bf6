package routes

import (
	"careassoc_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every handler under /api/v1.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	api := router.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(api)
		h.Account.RegisterRoutes(api)
		h.Caregiver.RegisterRoutes(api)
		h.Institution.RegisterRoutes(api)
		h.Document.RegisterRoutes(api)
		h.File.RegisterRoutes(api)
	}
}
