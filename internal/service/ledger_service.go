package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"kokoro/internal/domain"
	"kokoro/internal/models"
	"kokoro/internal/repository"
)

var (
	ErrInsufficientHearts  = errors.New("insufficient hearts")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBonusAlreadyClaimed = errors.New("daily bonus already claimed")
)

// InsufficientHeartsError carries the amounts the caller needs to surface.
type InsufficientHeartsError struct {
	Current  int64
	Required int64
}

func (e *InsufficientHeartsError) Error() string {
	return fmt.Sprintf("insufficient hearts: have %d, need %d", e.Current, e.Required)
}

func (e *InsufficientHeartsError) Is(target error) bool {
	return target == ErrInsufficientHearts
}

// LedgerService derives heart balances from the append-only transaction log.
// Balance is never a stored scalar; it is the AfterBalance of the newest row.
// Read-modify-write is serialized per user so two concurrent charges cannot
// both compute from the same stale balance.
type LedgerService struct {
	hearts *repository.HeartRepository

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewLedgerService(hearts *repository.HeartRepository) *LedgerService {
	return &LedgerService{hearts: hearts, locks: make(map[uint]*sync.Mutex)}
}

func (s *LedgerService) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// GetBalance returns the user's current balance: the AfterBalance of the
// newest transaction, or the default balance when no history exists.
func (s *LedgerService) GetBalance(userID uint) (int64, error) {
	if userID == 0 {
		return 0, ErrInvalidInput
	}
	latest, err := s.hearts.Latest(userID)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return domain.DefaultHeartBalance, nil
	}
	return latest.AfterBalance, nil
}

// Charge spends (debit kinds) or grants (credit kinds) hearts and appends the
// transaction. Debit kinds fail with InsufficientHeartsError when the balance
// does not cover the amount; nothing is written on failure.
func (s *LedgerService) Charge(userID uint, amount int64, kind, description, relatedID string) (int64, error) {
	if userID == 0 || amount <= 0 || kind == "" {
		return 0, ErrInvalidInput
	}
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	before, err := s.GetBalance(userID)
	if err != nil {
		return 0, err
	}
	var after, delta int64
	if domain.IsDebitKind(kind) {
		if before < amount {
			return before, &InsufficientHeartsError{Current: before, Required: amount}
		}
		after = before - amount
		if after < 0 {
			after = 0
		}
		delta = -amount
	} else {
		after = before + amount
		delta = amount
	}
	tx := &models.HeartTransaction{
		UserID:        userID,
		Amount:        delta,
		Kind:          kind,
		Description:   description,
		BeforeBalance: before,
		AfterBalance:  after,
		RelatedID:     relatedID,
	}
	if err := s.hearts.Append(tx); err != nil {
		return 0, err
	}
	return after, nil
}

// Credit grants hearts unconditionally.
func (s *LedgerService) Credit(userID uint, amount int64, kind, description, relatedID string) (int64, error) {
	if userID == 0 || amount <= 0 || kind == "" {
		return 0, ErrInvalidInput
	}
	if domain.IsDebitKind(kind) {
		return 0, ErrInvalidInput
	}
	return s.Charge(userID, amount, kind, description, relatedID)
}

// DailyBonus credits the daily bonus unless one was already claimed in the
// trailing 24 hours.
func (s *LedgerService) DailyBonus(userID uint, amount int64) (int64, error) {
	if userID == 0 || amount <= 0 {
		return 0, ErrInvalidInput
	}
	last, err := s.hearts.LastOfKindSince(userID, domain.TxKindDailyBonus, time.Now().Add(-24*time.Hour))
	if err != nil {
		return 0, err
	}
	if last != nil {
		return 0, ErrBonusAlreadyClaimed
	}
	return s.Credit(userID, amount, domain.TxKindDailyBonus, "daily bonus", "")
}

// History returns the user's transactions, most recent first.
func (s *LedgerService) History(userID uint, limit, offset int) ([]models.HeartTransaction, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.hearts.History(userID, limit, offset)
}
