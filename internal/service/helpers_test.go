package service

import (
	"testing"

	"kokoro/internal/database"
	"kokoro/internal/models"
	"kokoro/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	u := &models.User{Email: "mina@example.com", Username: "mina"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedPair(t *testing.T, db *gorm.DB, userID uint) (*models.Persona, *models.Character) {
	t.Helper()
	p := &models.Persona{UserID: userID, Name: "Mina"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed persona: %v", err)
	}
	ch := &models.Character{Name: "Yuna", Personality: "warm", IsActive: true}
	if err := db.Create(ch).Error; err != nil {
		t.Fatalf("seed character: %v", err)
	}
	return p, ch
}

func newLedger(db *gorm.DB) *LedgerService {
	return NewLedgerService(repository.NewHeartRepository(db))
}

func newAffinity(db *gorm.DB) *AffinityService {
	return NewAffinityService(repository.NewAffinityRepository(db), repository.NewChatRepository(db))
}
