package models

import (
	"time"
)

// Affinity holds the favor score between a persona and a character. The
// stage label is derived from Favor on read, never persisted.
type Affinity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PersonaID   uint      `gorm:"not null;uniqueIndex:uk_persona_character" json:"persona_id"`
	CharacterID uint      `gorm:"not null;uniqueIndex:uk_persona_character" json:"character_id"`
	Favor       int       `gorm:"not null;default:0" json:"favor"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Persona   Persona   `gorm:"foreignKey:PersonaID" json:"-"`
	Character Character `gorm:"foreignKey:CharacterID" json:"-"`
}

func (Affinity) TableName() string {
	return "affinities"
}
