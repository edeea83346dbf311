package handler

import (
	"net/http"
	"strconv"

	"kokoro/internal/middleware"
	"kokoro/internal/models"
	"kokoro/internal/repository"

	"github.com/gin-gonic/gin"
)

type PersonaHandler struct {
	personaRepo *repository.PersonaRepository
}

func NewPersonaHandler(personaRepo *repository.PersonaRepository) *PersonaHandler {
	return &PersonaHandler{personaRepo: personaRepo}
}

type personaReq struct {
	Name      string `json:"name" binding:"required,min=1,max=64"`
	Bio       string `json:"bio" binding:"max=512"`
	AvatarURL string `json:"avatar_url" binding:"max=512"`
}

func (h *PersonaHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req personaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p := &models.Persona{
		UserID:    userID,
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	}
	if err := h.personaRepo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PersonaHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.personaRepo.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"personas": list})
}

func (h *PersonaHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.personaRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if p.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	var req personaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p.Name = req.Name
	p.Bio = req.Bio
	if req.AvatarURL != "" {
		p.AvatarURL = req.AvatarURL
	}
	if err := h.personaRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PersonaHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.personaRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if p.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if err := h.personaRepo.Delete(p.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
