package handler

import (
	"net/http"
	"strconv"

	"kokoro/internal/models"
	"kokoro/internal/repository"

	"github.com/gin-gonic/gin"
)

type CharacterHandler struct {
	characterRepo *repository.CharacterRepository
}

func NewCharacterHandler(characterRepo *repository.CharacterRepository) *CharacterHandler {
	return &CharacterHandler{characterRepo: characterRepo}
}

func (h *CharacterHandler) List(c *gin.Context) {
	list, err := h.characterRepo.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"characters": list})
}

func (h *CharacterHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	ch, err := h.characterRepo.GetByID(uint(id))
	if err != nil || !ch.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, ch)
}

type characterReq struct {
	Name        string `json:"name" binding:"required,min=1,max=64"`
	Tagline     string `json:"tagline" binding:"max=255"`
	Personality string `json:"personality" binding:"required"`
	Greeting    string `json:"greeting" binding:"max=512"`
	AvatarURL   string `json:"avatar_url" binding:"max=512"`
	IsActive    *bool  `json:"is_active"`
}

// Create adds a character (admin only, enforced by middleware).
func (h *CharacterHandler) Create(c *gin.Context) {
	var req characterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	ch := &models.Character{
		Name:        req.Name,
		Tagline:     req.Tagline,
		Personality: req.Personality,
		Greeting:    req.Greeting,
		AvatarURL:   req.AvatarURL,
		IsActive:    active,
	}
	if err := h.characterRepo.Create(ch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, ch)
}

// Update edits a character (admin only).
func (h *CharacterHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	ch, err := h.characterRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req characterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ch.Name = req.Name
	ch.Tagline = req.Tagline
	ch.Personality = req.Personality
	ch.Greeting = req.Greeting
	if req.AvatarURL != "" {
		ch.AvatarURL = req.AvatarURL
	}
	if req.IsActive != nil {
		ch.IsActive = *req.IsActive
	}
	if err := h.characterRepo.Update(ch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, ch)
}
