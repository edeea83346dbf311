package models

import (
	"time"
)

// HeartTransaction is one row of the append-only heart ledger. Rows are never
// updated or deleted; the current balance is always the AfterBalance of the
// newest row (created_at DESC, id DESC).
type HeartTransaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:idx_heart_user_time" json:"user_id"`
	Amount        int64     `gorm:"not null" json:"amount"` // positive = credit, negative = debit
	Kind          string    `gorm:"size:30;not null;index" json:"kind"`
	Description   string    `gorm:"size:255" json:"description"`
	BeforeBalance int64     `gorm:"not null" json:"before_balance"`
	AfterBalance  int64     `gorm:"not null" json:"after_balance"`
	RelatedID     string    `gorm:"size:128" json:"related_id"` // e.g. persona_character composite
	CreatedAt     time.Time `gorm:"index:idx_heart_user_time" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (HeartTransaction) TableName() string {
	return "heart_transactions"
}
