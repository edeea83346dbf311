package handler

import (
	"errors"
	"net/http"

	"kokoro/internal/domain"
	"kokoro/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	ledger *service.LedgerService
}

func NewAdminHandler(ledger *service.LedgerService) *AdminHandler {
	return &AdminHandler{ledger: ledger}
}

type adjustHeartsReq struct {
	UserID uint   `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required,min=1"`
	Reason string `json:"reason" binding:"required,max=255"`
}

// AdjustHearts credits hearts to a user as an admin correction. Corrections
// are new ledger rows; history is never edited.
func (h *AdminHandler) AdjustHearts(c *gin.Context) {
	var req adjustHeartsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	balance, err := h.ledger.Credit(req.UserID, req.Amount, domain.TxKindAdminAdjust, req.Reason, "")
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "adjust failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
