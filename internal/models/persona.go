package models

import (
	"time"

	"gorm.io/gorm"
)

// Persona is a user-owned chat profile; each persona keeps its own favor
// score per character.
type Persona struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Name      string         `gorm:"size:64;not null" json:"name"`
	Bio       string         `gorm:"size:512" json:"bio"`
	AvatarURL string         `gorm:"size:512" json:"avatar_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Persona) TableName() string {
	return "personas"
}
