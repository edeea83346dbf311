package repository

import (
	"errors"

	"kokoro/internal/models"

	"gorm.io/gorm"
)

type AffinityRepository struct {
	db *gorm.DB
}

func NewAffinityRepository(db *gorm.DB) *AffinityRepository {
	return &AffinityRepository{db: db}
}

// GetByPair returns the affinity row for (persona, character), or nil when
// none exists yet.
func (r *AffinityRepository) GetByPair(personaID, characterID uint) (*models.Affinity, error) {
	var a models.Affinity
	err := r.db.Where("persona_id = ? AND character_id = ?", personaID, characterID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetOrCreate lazily creates the row with favor 0 on first lookup.
func (r *AffinityRepository) GetOrCreate(personaID, characterID uint) (*models.Affinity, error) {
	a, err := r.GetByPair(personaID, characterID)
	if err != nil {
		return nil, err
	}
	if a != nil {
		return a, nil
	}
	a = &models.Affinity{PersonaID: personaID, CharacterID: characterID, Favor: 0}
	if err := r.db.Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateFavor persists a new favor value for the pair (insert-if-absent).
func (r *AffinityRepository) UpdateFavor(personaID, characterID uint, favor int) error {
	a, err := r.GetOrCreate(personaID, characterID)
	if err != nil {
		return err
	}
	return r.db.Model(a).Update("favor", favor).Error
}
