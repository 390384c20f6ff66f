package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"genai-space-backend/internal/models"
)

// BlobReader is the read side of the in-memory blob store.
type BlobReader interface {
	Read(path string) ([]byte, string, bool)
}

// BlobsHandler serves blobs written to the in-memory blob store so the URLs
// it hands out resolve. It is only mounted with BLOB_BACKEND=memory.
type BlobsHandler struct {
	blobs BlobReader
}

func NewBlobsHandler(blobs BlobReader) *BlobsHandler {
	return &BlobsHandler{blobs: blobs}
}

func (h *BlobsHandler) Get(c *gin.Context) {
	p := strings.TrimPrefix(c.Param("path"), "/")
	data, contentType, ok := h.blobs.Read(p)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found", Message: "blob not found"})
		return
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	c.Data(http.StatusOK, contentType, data)
}
