package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kokoro/internal/domain"
	"kokoro/internal/models"
	"kokoro/internal/repository"
	"kokoro/pkg/llm"
	"kokoro/pkg/redact"
)

var (
	ErrEmptyMessage      = errors.New("message is empty")
	ErrPersonaNotOwned   = errors.New("persona does not belong to user")
	ErrCharacterInactive = errors.New("character is not available")
)

const historyContextSize = 20

// SendResult is the outcome of one charged chat turn.
type SendResult struct {
	UserMessage *models.ChatMessage `json:"user_message"`
	Reply       *models.ChatMessage `json:"reply"`
	Favor       *FavorResult        `json:"favor"`
	NewBalance  int64               `json:"new_balance"`
}

// ChatService runs the charged chat turn: charge hearts, score the raw text,
// persist the redacted copy, produce and persist the redacted AI reply.
type ChatService struct {
	chats      *repository.ChatRepository
	personas   *repository.PersonaRepository
	characters *repository.CharacterRepository
	ledger     *LedgerService
	affinity   *AffinityService
	provider   llm.Provider
	filter     *redact.Filter
	price      int64
}

func NewChatService(
	chats *repository.ChatRepository,
	personas *repository.PersonaRepository,
	characters *repository.CharacterRepository,
	ledger *LedgerService,
	affinity *AffinityService,
	provider llm.Provider,
	filter *redact.Filter,
	priceHearts int64,
) *ChatService {
	return &ChatService{
		chats:      chats,
		personas:   personas,
		characters: characters,
		ledger:     ledger,
		affinity:   affinity,
		provider:   provider,
		filter:     filter,
		price:      priceHearts,
	}
}

// SendMessage handles one user message end to end. Scoring consumes the raw
// text; only redacted copies ever reach the transcript. A failed charge
// aborts before anything is stored.
func (s *ChatService) SendMessage(ctx context.Context, userID, personaID, characterID uint, rawText string) (*SendResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyMessage
	}
	persona, err := s.personas.GetByID(personaID)
	if err != nil {
		return nil, err
	}
	if persona.UserID != userID {
		return nil, ErrPersonaNotOwned
	}
	character, err := s.characters.GetByID(characterID)
	if err != nil {
		return nil, err
	}
	if !character.IsActive {
		return nil, ErrCharacterInactive
	}

	relatedID := pairKey(personaID, characterID)
	balance, err := s.ledger.Charge(userID, s.price, domain.TxKindChatSpend, "chat message", relatedID)
	if err != nil {
		return nil, err
	}

	favor, err := s.affinity.ApplyMessage(personaID, characterID, rawText, time.Now())
	if err != nil {
		return nil, err
	}

	userMsg := &models.ChatMessage{
		PersonaID:   personaID,
		CharacterID: characterID,
		Role:        domain.RoleUser,
		Content:     s.filter.Apply(rawText),
	}
	if err := s.chats.Create(userMsg); err != nil {
		return nil, err
	}

	history, err := s.providerHistory(personaID, characterID)
	if err != nil {
		return nil, err
	}
	replyText, err := s.provider.Reply(ctx, llm.ReplyRequest{
		CharacterName: character.Name,
		Personality:   character.Personality,
		PersonaName:   persona.Name,
		History:       history,
		UserMessage:   rawText,
	})
	if err != nil {
		// The turn was charged but no reply happened; give the hearts back.
		_, _ = s.ledger.Credit(userID, s.price, domain.TxKindRefund, "reply failed", relatedID)
		return nil, err
	}

	replyMsg := &models.ChatMessage{
		PersonaID:   personaID,
		CharacterID: characterID,
		Role:        domain.RoleCharacter,
		Content:     s.filter.Apply(replyText),
	}
	if err := s.chats.Create(replyMsg); err != nil {
		return nil, err
	}

	return &SendResult{
		UserMessage: userMsg,
		Reply:       replyMsg,
		Favor:       favor,
		NewBalance:  balance,
	}, nil
}

// History returns the stored (redacted) transcript for the pair, newest
// first, after checking persona ownership.
func (s *ChatService) History(userID, personaID, characterID uint, limit, offset int) ([]models.ChatMessage, error) {
	persona, err := s.personas.GetByID(personaID)
	if err != nil {
		return nil, err
	}
	if persona.UserID != userID {
		return nil, ErrPersonaNotOwned
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.chats.ListByPair(personaID, characterID, limit, offset)
}

// providerHistory converts the recent transcript to provider messages,
// oldest first. The user message being processed is not yet included here.
func (s *ChatService) providerHistory(personaID, characterID uint) ([]llm.Message, error) {
	recent, err := s.chats.ListByPair(personaID, characterID, historyContextSize, 0)
	if err != nil {
		return nil, err
	}
	msgs := make([]llm.Message, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		role := "user"
		if recent[i].Role == domain.RoleCharacter {
			role = "assistant"
		}
		msgs = append(msgs, llm.Message{Role: role, Content: recent[i].Content})
	}
	return msgs, nil
}

func pairKey(personaID, characterID uint) string {
	return fmt.Sprintf("persona_%d_character_%d", personaID, characterID)
}
