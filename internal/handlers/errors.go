package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"genai-space-backend/internal/admin"
	"genai-space-backend/internal/models"
	"genai-space-backend/internal/store"
	"genai-space-backend/internal/studio"
	"genai-space-backend/internal/tokens"
	"genai-space-backend/internal/wishlist"
)

// respondError writes the error response for a service error. Every endpoint
// goes through here so the response shape and status mapping stay the same.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var writeErr *store.StoreWriteError
	var readErr *store.StoreReadError
	var uploadErr *store.UploadError

	switch {
	case errors.Is(err, tokens.ErrInsufficientTokens):
		c.JSON(http.StatusPaymentRequired, models.ErrorResponse{Error: "insufficient tokens", Message: err.Error()})
	case errors.Is(err, admin.ErrNotFound),
		errors.Is(err, studio.ErrUnknownRow),
		errors.Is(err, studio.ErrImageNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found", Message: err.Error()})
	case errors.Is(err, admin.ErrInvalidTransition),
		errors.Is(err, admin.ErrNotInProgress):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "invalid state", Message: err.Error()})
	case errors.Is(err, studio.ErrIncompleteRow),
		errors.Is(err, studio.ErrNoFiles),
		errors.Is(err, studio.ErrInvalidKind),
		errors.Is(err, admin.ErrInvalidStatus),
		errors.Is(err, admin.ErrInvalidPriority),
		errors.Is(err, tokens.ErrInvalidAmount),
		errors.Is(err, tokens.ErrUnknownPackage),
		errors.Is(err, wishlist.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
	case errors.As(err, &writeErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to save submission", Message: err.Error()})
	case errors.As(err, &readErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to read submissions", Message: err.Error()})
	case errors.As(err, &uploadErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to upload file", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error", Message: err.Error()})
	}
}

func badRequest(c *gin.Context, msg string, err error) {
	resp := models.ErrorResponse{Error: msg}
	if err != nil {
		resp.Message = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
