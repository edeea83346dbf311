package handler

import (
	"errors"
	"net/http"
	"strconv"

	"kokoro/config"
	"kokoro/internal/domain"
	"kokoro/internal/middleware"
	"kokoro/internal/service"

	"github.com/gin-gonic/gin"
)

type HeartsHandler struct {
	cfg    *config.Config
	ledger *service.LedgerService
}

func NewHeartsHandler(cfg *config.Config, ledger *service.LedgerService) *HeartsHandler {
	return &HeartsHandler{cfg: cfg, ledger: ledger}
}

// GetBalance returns the current derived heart balance.
func (h *HeartsHandler) GetBalance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	balance, err := h.ledger.GetBalance(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "balance error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetTransactions returns the ledger history, most recent first.
func (h *HeartsHandler) GetTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.ledger.History(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": list})
}

type purchaseReq struct {
	Amount    int64  `json:"amount" binding:"required,min=1"`
	Reference string `json:"reference"`
}

// Purchase credits purchased hearts. The payment rail itself confirms
// upstream; this endpoint records the credit.
func (h *HeartsHandler) Purchase(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req purchaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	balance, err := h.ledger.Credit(userID, req.Amount, domain.TxKindPurchase, "heart purchase", req.Reference)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "purchase failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// DailyBonus grants the daily heart bonus, once per trailing 24 hours.
func (h *HeartsHandler) DailyBonus(c *gin.Context) {
	userID := middleware.GetUserID(c)
	balance, err := h.ledger.DailyBonus(userID, h.cfg.Hearts.DailyBonus)
	if err != nil {
		if errors.Is(err, service.ErrBonusAlreadyClaimed) {
			c.JSON(http.StatusConflict, gin.H{"error": "daily bonus already claimed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bonus failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance, "granted": h.cfg.Hearts.DailyBonus})
}
