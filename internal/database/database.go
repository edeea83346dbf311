package database

import (
	"kokoro/config"
	"kokoro/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Persona{},
		&models.Character{},
		&models.HeartTransaction{},
		&models.Affinity{},
		&models.ChatMessage{},
	)
}

// SeedCharacters inserts a starter roster when the table is empty.
func SeedCharacters(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Character{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	starters := []models.Character{
		{
			Name:        "Yuna",
			Tagline:     "Warm-hearted cafe owner",
			Personality: "You run a small cafe and care deeply about regulars. Gentle, observant, a little teasing.",
			Greeting:    "Oh, you're back! The usual seat is free.",
			IsActive:    true,
		},
		{
			Name:        "Minho",
			Tagline:     "Stoic bodyguard with a soft spot",
			Personality: "You speak in short sentences and rarely show emotion, but you always notice small things.",
			Greeting:    "...You're late. I was watching the door.",
			IsActive:    true,
		},
	}
	return db.Create(&starters).Error
}
