package lightningapi

import (
	"net/http"
	"strconv"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/lightning"

	"github.com/gin-gonic/gin"
)

const defaultTransactionLimit = 100

type Handler struct {
	client lightning.Client
}

func NewHandler(client lightning.Client) *Handler {
	return &Handler{client: client}
}

// PayInvoice handles POST /api/lightning/pay: pays an encoded invoice
// from the configured node.
func (h *Handler) PayInvoice(c *gin.Context) {
	var input struct {
		EncodedInvoice string `json:"encodedInvoice" binding:"required"`
		MaxFeesMsats   int64  `json:"maxFeesMsats"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "encodedInvoice is required"})
		return
	}
	if input.MaxFeesMsats < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maxFeesMsats cannot be negative"})
		return
	}

	payment, err := h.client.PayInvoice(c.Request.Context(), input.EncodedInvoice, input.MaxFeesMsats)
	if err != nil {
		apperr.WriteJSON(c, apperr.External("Failed to complete Lightning payment", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// Transactions handles GET /api/lightning/transactions, backing the
// client-side settlement poll.
func (h *Handler) Transactions(c *gin.Context) {
	limit := defaultTransactionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > defaultTransactionLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	txs, err := h.client.Transactions(c.Request.Context(), limit)
	if err != nil {
		apperr.WriteJSON(c, apperr.External("Failed to fetch transactions", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txs,
		"count":        len(txs),
	})
}
