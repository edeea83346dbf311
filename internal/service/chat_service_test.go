package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"kokoro/internal/domain"
	"kokoro/internal/models"
	"kokoro/internal/repository"
	"kokoro/pkg/llm"
	"kokoro/pkg/redact"

	"gorm.io/gorm"
)

// leakyProvider echoes scoring vocabulary so tests can prove replies are
// redacted before persistence.
type leakyProvider struct{}

func (leakyProvider) Reply(ctx context.Context, req llm.ReplyRequest) (string, error) {
	return "Your favor score went up!", nil
}

type failingProvider struct{}

func (failingProvider) Reply(ctx context.Context, req llm.ReplyRequest) (string, error) {
	return "", errors.New("completion unavailable")
}

func newChatService(db *gorm.DB, provider llm.Provider) (*ChatService, *LedgerService) {
	ledger := newLedger(db)
	svc := NewChatService(
		repository.NewChatRepository(db),
		repository.NewPersonaRepository(db),
		repository.NewCharacterRepository(db),
		ledger,
		newAffinity(db),
		provider,
		redact.Default,
		1,
	)
	return svc, ledger
}

func TestSendMessageChargesAndStoresRedacted(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	p, ch := seedPair(t, db, u.ID)
	svc, _ := newChatService(db, leakyProvider{})

	raw := "I really like you! 😊 what's my favor score 10 about?"
	res, err := svc.SendMessage(context.Background(), u.ID, p.ID, ch.ID, raw)
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if res.NewBalance != 99 {
		t.Fatalf("balance = %d, want 99", res.NewBalance)
	}
	if res.Favor == nil || res.Favor.Delta == 0 {
		t.Fatalf("favor not applied: %+v", res.Favor)
	}

	msgs, err := svc.History(u.ID, p.ID, ch.ID, 10, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("stored messages = %d, want 2 (user + reply)", len(msgs))
	}
	for _, m := range msgs {
		lower := strings.ToLower(m.Content)
		if strings.Contains(lower, "favor") || strings.Contains(lower, "score") {
			t.Fatalf("scoring vocabulary leaked into transcript: %q", m.Content)
		}
	}
}

func TestSendMessageInsufficientHeartsStoresNothing(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	p, ch := seedPair(t, db, u.ID)
	svc, ledger := newChatService(db, leakyProvider{})

	if _, err := ledger.Charge(u.ID, 100, domain.TxKindChatSpend, "drain", ""); err != nil {
		t.Fatalf("drain: %v", err)
	}
	_, err := svc.SendMessage(context.Background(), u.ID, p.ID, ch.ID, "hello")
	if !errors.Is(err, ErrInsufficientHearts) {
		t.Fatalf("err = %v, want ErrInsufficientHearts", err)
	}
	msgs, err := svc.History(u.ID, p.ID, ch.ID, 10, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("messages stored despite failed charge: %d", len(msgs))
	}
	var favorRows int64
	if err := db.Model(&models.Affinity{}).Count(&favorRows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if favorRows != 0 {
		t.Fatalf("favor row created despite failed charge")
	}
}

func TestSendMessageRefundsWhenReplyFails(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	p, ch := seedPair(t, db, u.ID)
	svc, ledger := newChatService(db, failingProvider{})

	if _, err := svc.SendMessage(context.Background(), u.ID, p.ID, ch.ID, "hello"); err == nil {
		t.Fatal("expected provider error")
	}
	balance, err := ledger.GetBalance(u.ID)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance != domain.DefaultHeartBalance {
		t.Fatalf("balance = %d, want %d after refund", balance, domain.DefaultHeartBalance)
	}
	history, err := ledger.History(u.ID, 10, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	// Both the charge and the refund stay visible; history is never edited.
	if len(history) != 2 {
		t.Fatalf("ledger rows = %d, want 2", len(history))
	}
}

func TestSendMessageRejectsForeignPersona(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	p, ch := seedPair(t, db, u.ID)
	other := &models.User{Email: "other@example.com", Username: "other"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("seed other: %v", err)
	}
	svc, _ := newChatService(db, leakyProvider{})

	_, err := svc.SendMessage(context.Background(), other.ID, p.ID, ch.ID, "hello")
	if !errors.Is(err, ErrPersonaNotOwned) {
		t.Fatalf("err = %v, want ErrPersonaNotOwned", err)
	}
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	p, ch := seedPair(t, db, u.ID)
	svc, _ := newChatService(db, leakyProvider{})

	if _, err := svc.SendMessage(context.Background(), u.ID, p.ID, ch.ID, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestSendMessageInactiveCharacter(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	p, ch := seedPair(t, db, u.ID)
	ch.IsActive = false
	if err := db.Save(ch).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	svc, _ := newChatService(db, leakyProvider{})

	if _, err := svc.SendMessage(context.Background(), u.ID, p.ID, ch.ID, "hello"); !errors.Is(err, ErrCharacterInactive) {
		t.Fatalf("err = %v, want ErrCharacterInactive", err)
	}
}
