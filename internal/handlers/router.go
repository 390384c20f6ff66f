package handlers

import (
	"net/url"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"genai-space-backend/docs"
	"genai-space-backend/internal/config"
	"genai-space-backend/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Studio   *StudioHandler
	Tokens   *TokensHandler
	Wishlist *WishlistHandler
	Admin    *AdminHandler
	Events   *EventsHandler
	// Blobs is set only when uploads are kept in memory.
	Blobs *BlobsHandler
}

// RegisterRoutes mounts the health check, the Swagger UI and the
// authenticated API on router.
func RegisterRoutes(router *gin.Engine, cfg *config.Config, h Handlers) {
	configureSwagger(cfg.BaseURL)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", h.Health.Health)

	if h.Blobs != nil {
		router.GET("/blobs/*path", h.Blobs.Get)
	}

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// User dashboard
	api.GET("/studio", h.Studio.Dashboard)
	api.POST("/studio/rows/:row_id/images/:kind", h.Studio.UploadImages)
	api.DELETE("/studio/rows/:row_id/images/:kind/:image_id", h.Studio.RemoveImage)
	api.POST("/studio/rows/:row_id/submit", h.Studio.Submit)
	api.GET("/events", h.Events.UserEvents)

	// Tokens
	api.GET("/tokens", h.Tokens.Balance)
	api.GET("/tokens/packages", h.Tokens.Packages)
	api.POST("/tokens/purchase", h.Tokens.Purchase)

	// Wishlist
	api.GET("/wishlist", h.Wishlist.List)
	api.PUT("/wishlist/:item_id", h.Wishlist.Add)
	api.DELETE("/wishlist/:item_id", h.Wishlist.Remove)

	// Admin dashboard
	adm := api.Group("/admin")
	adm.Use(middleware.AdminOnly())
	adm.GET("/submissions", h.Admin.ListSubmissions)
	adm.GET("/submissions/stats", h.Admin.Stats)
	adm.PATCH("/submissions/:id/status", h.Admin.UpdateStatus)
	adm.PATCH("/submissions/:id/priority", h.Admin.UpdatePriority)
	adm.PATCH("/submissions/:id/notes", h.Admin.UpdateNotes)
	adm.POST("/submissions/:id/result", h.Admin.UploadResult)
	adm.GET("/submissions/:id/assets", h.Admin.Assets)
	adm.DELETE("/submissions/:id", h.Admin.DeleteSubmission)
	adm.GET("/events", h.Events.AdminEvents)
}

// configureSwagger points the served docs at the public base URL.
func configureSwagger(baseURL string) {
	if baseURL == "" {
		return
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return
	}
	docs.SwaggerInfo.Host = u.Host
	if u.Scheme == "https" {
		docs.SwaggerInfo.Schemes = []string{"https", "http"}
	} else {
		docs.SwaggerInfo.Schemes = []string{"http", "https"}
	}
}
