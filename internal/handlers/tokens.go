package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"genai-space-backend/internal/models"
	"genai-space-backend/internal/studio"
	"genai-space-backend/internal/tokens"
)

type TokensHandler struct {
	ledger *tokens.Ledger
}

func NewTokensHandler(ledger *tokens.Ledger) *TokensHandler {
	return &TokensHandler{ledger: ledger}
}

// Balance godoc
// @Summary     Token balance
// @Tags        tokens
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.TokenBalanceResponse
// @Router      /tokens [get]
func (h *TokensHandler) Balance(c *gin.Context) {
	c.JSON(http.StatusOK, studio.TokenView(h.ledger.Balance(currentUser(c).ID)))
}

// Packages godoc
// @Summary     Purchasable token packages
// @Tags        tokens
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.TokenPackagesResponse
// @Router      /tokens/packages [get]
func (h *TokensHandler) Packages(c *gin.Context) {
	packages := make([]models.TokenPackage, len(tokens.Packages))
	for i, p := range tokens.Packages {
		packages[i] = models.TokenPackage{
			Tokens: p.Tokens,
			Price:  fmt.Sprintf("$%d.%02d", p.Price/100, p.Price%100),
		}
	}
	c.JSON(http.StatusOK, models.TokenPackagesResponse{Packages: packages})
}

// Purchase godoc
// @Summary     Buy a token package
// @Description Credits the tokens of the chosen package. No payment is taken.
// @Tags        tokens
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.PurchaseTokensRequest true "Package"
// @Success     200 {object} models.TokenBalanceResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /tokens/purchase [post]
func (h *TokensHandler) Purchase(c *gin.Context) {
	var req models.PurchaseTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	balance, err := h.ledger.Purchase(currentUser(c).ID, req.Tokens)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, studio.TokenView(balance))
}
