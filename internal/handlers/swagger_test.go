package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-space-backend/internal/config"
	"genai-space-backend/internal/handlers"
)

func TestSwagger_ServesAPIDocument(t *testing.T) {
	s := newTestServer(t, 100)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/studio/rows/{row_id}/submit"`)
	assert.Contains(t, w.Body.String(), `"/admin/submissions/{id}/status"`)
	assert.Contains(t, w.Body.String(), `"basePath": "/api/v1"`)
}

func TestSwagger_HostFollowsBaseURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers.RegisterRoutes(router, &config.Config{
		SupabaseJWTSecret: jwtSecret,
		BaseURL:           "https://api.genai.example.com",
	}, handlers.Handlers{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"host": "api.genai.example.com"`)
	assert.Contains(t, w.Body.String(), `"https"`)
}
