package repository

import (
	"kokoro/internal/models"

	"gorm.io/gorm"
)

type CharacterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

func (r *CharacterRepository) Create(c *models.Character) error {
	return r.db.Create(c).Error
}

func (r *CharacterRepository) GetByID(id uint) (*models.Character, error) {
	var c models.Character
	err := r.db.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CharacterRepository) ListActive() ([]models.Character, error) {
	var list []models.Character
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CharacterRepository) Update(c *models.Character) error {
	return r.db.Save(c).Error
}

func (r *CharacterRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Character{}).Count(&n).Error
	return n, err
}
