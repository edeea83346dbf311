package repository

import (
	"errors"
	"time"

	"kokoro/internal/models"

	"gorm.io/gorm"
)

// HeartRepository is the append-only record store behind the heart ledger.
// It only ever inserts and reads; correction is a new row, never an update.
type HeartRepository struct {
	db *gorm.DB
}

func NewHeartRepository(db *gorm.DB) *HeartRepository {
	return &HeartRepository{db: db}
}

// Append inserts a transaction row; the store assigns the id.
func (r *HeartRepository) Append(tx *models.HeartTransaction) error {
	return r.db.Create(tx).Error
}

// Latest returns the newest transaction for the user, or nil when the user
// has no history. Ties on created_at are broken by the auto-increment id.
func (r *HeartRepository) Latest(userID uint) (*models.HeartTransaction, error) {
	var tx models.HeartTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// History returns transactions most-recent-first, bounded by limit/offset.
func (r *HeartRepository) History(userID uint, limit, offset int) ([]models.HeartTransaction, error) {
	var list []models.HeartTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// LastOfKindSince returns the newest transaction of the given kind created
// after the cutoff, or nil. Used for the daily bonus cooldown.
func (r *HeartRepository) LastOfKindSince(userID uint, kind string, cutoff time.Time) (*models.HeartTransaction, error) {
	var tx models.HeartTransaction
	err := r.db.Where("user_id = ? AND kind = ? AND created_at > ?", userID, kind, cutoff).
		Order("created_at DESC, id DESC").
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
