package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"genai-space-backend/internal/services"
)

const maxUploadMemory = 32 << 20

// fileFieldNames are the multipart field names accepted for uploaded images.
var fileFieldNames = []string{"images", "image", "files", "file"}

// readUploadedFiles parses the multipart form and reads every file of the
// first non-empty accepted field.
func readUploadedFiles(c *gin.Context) ([]services.File, error) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}
	form := c.Request.MultipartForm
	if form == nil {
		return nil, fmt.Errorf("multipart form is nil")
	}

	var headers []*multipart.FileHeader
	for _, name := range fileFieldNames {
		if f := form.File[name]; len(f) > 0 {
			headers = f
			break
		}
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("please provide files with one of these field names: %v", fileFieldNames)
	}

	files := make([]services.File, 0, len(headers))
	for _, h := range headers {
		data, err := readFileHeader(h)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", h.Filename, err)
		}
		files = append(files, services.File{
			Name:        h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

func readFileHeader(h *multipart.FileHeader) ([]byte, error) {
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
