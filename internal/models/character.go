package models

import (
	"time"

	"gorm.io/gorm"
)

// Character is an AI-driven conversational counterpart with a fixed
// personality profile.
type Character struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:64;not null" json:"name"`
	Tagline     string         `gorm:"size:255" json:"tagline"`
	Personality string         `gorm:"type:text" json:"-"` // system prompt, never exposed
	Greeting    string         `gorm:"size:512" json:"greeting"`
	AvatarURL   string         `gorm:"size:512" json:"avatar_url"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Character) TableName() string {
	return "characters"
}
