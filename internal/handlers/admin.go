package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"genai-space-backend/internal/admin"
	"genai-space-backend/internal/models"
)

type AdminHandler struct {
	admin *admin.Service
}

func NewAdminHandler(a *admin.Service) *AdminHandler {
	return &AdminHandler{admin: a}
}

// ListSubmissions godoc
// @Summary     List submissions
// @Description Lists all submissions, optionally filtered by status and priority. q matches
// @Description the user name or email (case-insensitive) or part of the submission id.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       status query string false "pending, in_progress, completed or failed"
// @Param       priority query string false "low, medium or high"
// @Param       q query string false "Search text"
// @Success     200 {object} models.SubmissionListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	f := admin.Filter{
		Status:   models.Status(c.Query("status")),
		Priority: models.Priority(c.Query("priority")),
		Query:    c.Query("q"),
	}
	if f.Status != "" && !f.Status.Valid() {
		respondError(c, admin.ErrInvalidStatus)
		return
	}
	if f.Priority != "" && !f.Priority.Valid() {
		respondError(c, admin.ErrInvalidPriority)
		return
	}
	subs := h.admin.List(f)
	c.JSON(http.StatusOK, models.SubmissionListResponse{Submissions: subs, Total: len(subs)})
}

// Stats godoc
// @Summary     Submission counts by status
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.SubmissionStats
// @Router      /admin/submissions/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.admin.Stats())
}

// UpdateStatus godoc
// @Summary     Change submission status
// @Description Allowed: pending→in_progress, in_progress→completed|failed, failed→pending.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Param       request body models.StatusUpdateRequest true "New status"
// @Success     200 {object} models.Submission
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/submissions/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	id := c.Param("id")
	if err := h.admin.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	h.respondSubmission(c, id)
}

// UpdatePriority godoc
// @Summary     Change submission priority
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Param       request body models.PriorityUpdateRequest true "New priority"
// @Success     200 {object} models.Submission
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/submissions/{id}/priority [patch]
func (h *AdminHandler) UpdatePriority(c *gin.Context) {
	var req models.PriorityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	id := c.Param("id")
	if err := h.admin.SetPriority(c.Request.Context(), id, req.Priority); err != nil {
		respondError(c, err)
		return
	}
	h.respondSubmission(c, id)
}

// UpdateNotes godoc
// @Summary     Set admin notes
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Param       request body models.NotesUpdateRequest true "Notes"
// @Success     200 {object} models.Submission
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/submissions/{id}/notes [patch]
func (h *AdminHandler) UpdateNotes(c *gin.Context) {
	var req models.NotesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	id := c.Param("id")
	if err := h.admin.SetNotes(c.Request.Context(), id, req.Notes); err != nil {
		respondError(c, err)
		return
	}
	h.respondSubmission(c, id)
}

// UploadResult godoc
// @Summary     Upload the generated image
// @Description Stores the result and completes the submission. Only allowed while in progress.
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Param       image formData file true "Generated image"
// @Success     200 {object} models.Submission
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/submissions/{id}/result [post]
func (h *AdminHandler) UploadResult(c *gin.Context) {
	files, err := readUploadedFiles(c)
	if err != nil {
		badRequest(c, "no files uploaded", err)
		return
	}
	if len(files) != 1 {
		badRequest(c, "exactly one result image is required", nil)
		return
	}
	id := c.Param("id")
	if _, err := h.admin.UploadResult(c.Request.Context(), id, files[0]); err != nil {
		respondError(c, err)
		return
	}
	h.respondSubmission(c, id)
}

// Assets godoc
// @Summary     Download manifest
// @Description Lists every image of the submission with the file name used by "download all".
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Success     200 {object} models.AssetsResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/submissions/{id}/assets [get]
func (h *AdminHandler) Assets(c *gin.Context) {
	assets, err := h.admin.Assets(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// DeleteSubmission godoc
// @Summary     Delete a submission permanently
// @Tags        admin
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Success     204
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/submissions/{id} [delete]
func (h *AdminHandler) DeleteSubmission(c *gin.Context) {
	if err := h.admin.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondSubmission returns the cached submission after a write. The cache
// may not reflect the write yet when the store delivers asynchronously.
func (h *AdminHandler) respondSubmission(c *gin.Context, id string) {
	sub, err := h.admin.Get(id)
	if err != nil {
		c.Status(http.StatusAccepted)
		return
	}
	c.JSON(http.StatusOK, sub)
}
