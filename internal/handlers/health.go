package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"genai-space-backend/internal/models"
)

// ReadinessChecker reports whether the submission cache has its first snapshot.
type ReadinessChecker interface {
	Ready() bool
}

type HealthHandler struct {
	cache ReadinessChecker
}

func NewHealthHandler(cache ReadinessChecker) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Health godoc
// @Summary     Health check
// @Description Returns the health status of the API and whether the submission cache is live
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := models.HealthResponse{
		Status:     "ok",
		CacheReady: h.cache != nil && h.cache.Ready(),
	}
	c.JSON(http.StatusOK, response)
}
