package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage is one persisted line of a persona-character transcript.
// Content is stored redacted; the raw text only exists in-flight.
type ChatMessage struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PersonaID   uint           `gorm:"not null;index:idx_chat_pair" json:"persona_id"`
	CharacterID uint           `gorm:"not null;index:idx_chat_pair" json:"character_id"`
	Role        string         `gorm:"size:20;not null" json:"role"` // USER | CHARACTER
	Content     string         `gorm:"type:text" json:"content"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Persona   Persona   `gorm:"foreignKey:PersonaID" json:"-"`
	Character Character `gorm:"foreignKey:CharacterID" json:"-"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
