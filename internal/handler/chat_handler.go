package handler

import (
	"errors"
	"net/http"
	"strconv"

	"kokoro/internal/middleware"
	"kokoro/internal/service"
	"kokoro/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ChatHandler struct {
	chatSvc     *service.ChatService
	affinitySvc *service.AffinityService
	hub         *ws.ChatHub
}

func NewChatHandler(chatSvc *service.ChatService, affinitySvc *service.AffinityService, hub *ws.ChatHub) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, affinitySvc: affinitySvc, hub: hub}
}

type sendMessageReq struct {
	PersonaID   uint   `json:"persona_id" binding:"required"`
	CharacterID uint   `json:"character_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

// SendMessage charges hearts, scores favor and returns the stored turn.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := h.chatSvc.SendMessage(c.Request.Context(), userID, req.PersonaID, req.CharacterID, req.Content)
	if err != nil {
		var insufficient *service.InsufficientHeartsError
		switch {
		case errors.As(err, &insufficient):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "insufficient hearts",
				"current":  insufficient.Current,
				"required": insufficient.Required,
			})
		case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message"})
		case errors.Is(err, service.ErrPersonaNotOwned):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		case errors.Is(err, service.ErrCharacterInactive), errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "send failed"})
		}
		return
	}
	h.hub.Publish(req.PersonaID, req.CharacterID, result.Reply)
	c.JSON(http.StatusOK, result)
}

// GetMessages returns the paginated (redacted) transcript, newest first.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)
	personaID := uintParam(c, "persona_id")
	characterID := uintParam(c, "character_id")
	if personaID == 0 || characterID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ids"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.chatSvc.History(userID, personaID, characterID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPersonaNotOwned):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": list})
}

// GetFavor returns the favor score and stage for a persona-character pair.
func (h *ChatHandler) GetFavor(c *gin.Context) {
	personaID := uintParam(c, "persona_id")
	characterID := uintParam(c, "character_id")
	favor, stage, err := h.affinitySvc.GetFavor(personaID, characterID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ids"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "favor error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favor": favor, "stage": stage})
}

func uintParam(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(v)
}
