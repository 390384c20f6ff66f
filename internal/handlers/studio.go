package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"genai-space-backend/internal/middleware"
	"genai-space-backend/internal/models"
	"genai-space-backend/internal/studio"
)

type StudioHandler struct {
	studio *studio.Service
}

func NewStudioHandler(s *studio.Service) *StudioHandler {
	return &StudioHandler{studio: s}
}

func currentUser(c *gin.Context) studio.User {
	return studio.User{
		ID:    c.GetString(middleware.UserIDKey),
		Name:  c.GetString(middleware.UserNameKey),
		Email: c.GetString(middleware.UserEmailKey),
	}
}

func rowParam(c *gin.Context) (int, bool) {
	rowID, err := strconv.Atoi(c.Param("row_id"))
	if err != nil {
		badRequest(c, "invalid row id", err)
		return 0, false
	}
	return rowID, true
}

// Dashboard godoc
// @Summary     User dashboard
// @Description Returns every draft row with its projected status, cost and submit eligibility
// @Tags        studio
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.DashboardResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /studio [get]
func (h *StudioHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.studio.Dashboard(c.Request.Context(), currentUser(c).ID))
}

// UploadImages godoc
// @Summary     Upload images to a draft row
// @Description Uploads one or more images into the inspiration or area group of a draft row.
// @Description If any file fails to upload, no image is added to the row.
// @Tags        studio
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       row_id path int true "Draft row number"
// @Param       kind path string true "inspiration or area"
// @Param       images formData file true "Images (multiple files allowed)"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /studio/rows/{row_id}/images/{kind} [post]
func (h *StudioHandler) UploadImages(c *gin.Context) {
	rowID, ok := rowParam(c)
	if !ok {
		return
	}
	kind := models.ImageKind(c.Param("kind"))
	if !kind.Valid() {
		respondError(c, studio.ErrInvalidKind)
		return
	}

	files, err := readUploadedFiles(c)
	if err != nil {
		badRequest(c, "no files uploaded", err)
		return
	}

	images, err := h.studio.UploadImages(c.Request.Context(), currentUser(c).ID, rowID, kind, files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UploadResponse{RowID: rowID, Kind: kind, Images: images})
}

// RemoveImage godoc
// @Summary     Remove an image from a draft row
// @Tags        studio
// @Produce     json
// @Security    Bearer
// @Param       row_id path int true "Draft row number"
// @Param       kind path string true "inspiration or area"
// @Param       image_id path string true "Image ID"
// @Success     200 {object} models.DraftRow
// @Failure     404 {object} models.ErrorResponse
// @Router      /studio/rows/{row_id}/images/{kind}/{image_id} [delete]
func (h *StudioHandler) RemoveImage(c *gin.Context) {
	rowID, ok := rowParam(c)
	if !ok {
		return
	}
	row, err := h.studio.RemoveImage(c.Request.Context(), currentUser(c).ID, rowID, models.ImageKind(c.Param("kind")), c.Param("image_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// Submit godoc
// @Summary     Submit a draft row for generation
// @Description Spends len(inspiration)+len(area)+5 tokens and creates a pending submission.
// @Tags        studio
// @Produce     json
// @Security    Bearer
// @Param       row_id path int true "Draft row number"
// @Success     201 {object} models.SubmitResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     402 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /studio/rows/{row_id}/submit [post]
func (h *StudioHandler) Submit(c *gin.Context) {
	rowID, ok := rowParam(c)
	if !ok {
		return
	}
	sub, balance, err := h.studio.Submit(c.Request.Context(), currentUser(c), rowID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SubmitResponse{Submission: sub, Tokens: studio.TokenView(balance)})
}
