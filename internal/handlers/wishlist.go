package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"genai-space-backend/internal/models"
	"genai-space-backend/internal/wishlist"
)

type WishlistHandler struct {
	wishlist *wishlist.Service
}

func NewWishlistHandler(w *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlist: w}
}

// List godoc
// @Summary     Saved catalog items
// @Tags        wishlist
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.WishlistResponse
// @Router      /wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	items := h.wishlist.List(c.Request.Context(), currentUser(c).ID)
	c.JSON(http.StatusOK, models.WishlistResponse{Items: items})
}

// Add godoc
// @Summary     Save a catalog item
// @Tags        wishlist
// @Produce     json
// @Security    Bearer
// @Param       item_id path string true "Catalog item ID"
// @Success     200 {object} models.WishlistResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /wishlist/{item_id} [put]
func (h *WishlistHandler) Add(c *gin.Context) {
	items, err := h.wishlist.Add(c.Request.Context(), currentUser(c).ID, c.Param("item_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.WishlistResponse{Items: items})
}

// Remove godoc
// @Summary     Remove a saved catalog item
// @Tags        wishlist
// @Produce     json
// @Security    Bearer
// @Param       item_id path string true "Catalog item ID"
// @Success     200 {object} models.WishlistResponse
// @Router      /wishlist/{item_id} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	items := h.wishlist.Remove(c.Request.Context(), currentUser(c).ID, c.Param("item_id"))
	c.JSON(http.StatusOK, models.WishlistResponse{Items: items})
}
