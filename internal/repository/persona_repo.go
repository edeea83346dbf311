package repository

import (
	"kokoro/internal/models"

	"gorm.io/gorm"
)

type PersonaRepository struct {
	db *gorm.DB
}

func NewPersonaRepository(db *gorm.DB) *PersonaRepository {
	return &PersonaRepository{db: db}
}

func (r *PersonaRepository) Create(p *models.Persona) error {
	return r.db.Create(p).Error
}

func (r *PersonaRepository) GetByID(id uint) (*models.Persona, error) {
	var p models.Persona
	err := r.db.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PersonaRepository) ListByUser(userID uint) ([]models.Persona, error) {
	var list []models.Persona
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PersonaRepository) Update(p *models.Persona) error {
	return r.db.Save(p).Error
}

func (r *PersonaRepository) Delete(id uint) error {
	return r.db.Delete(&models.Persona{}, id).Error
}
