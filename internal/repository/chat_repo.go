package repository

import (
	"time"

	"kokoro/internal/domain"
	"kokoro/internal/models"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(m *models.ChatMessage) error {
	return r.db.Create(m).Error
}

// ListByPair returns messages for a persona-character pair, newest first.
func (r *ChatRepository) ListByPair(personaID, characterID uint, limit, offset int) ([]models.ChatMessage, error) {
	var list []models.ChatMessage
	err := r.db.Where("persona_id = ? AND character_id = ?", personaID, characterID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// RecentUserMessageTimes returns creation times of the newest user-authored
// messages for the pair, newest first, for the cadence check.
func (r *ChatRepository) RecentUserMessageTimes(personaID, characterID uint, limit int) ([]time.Time, error) {
	var times []time.Time
	err := r.db.Model(&models.ChatMessage{}).
		Where("persona_id = ? AND character_id = ? AND role = ?", personaID, characterID, domain.RoleUser).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}
