package llm

import "context"

// Message is one turn of conversation context sent to the provider.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ReplyRequest carries everything a provider needs to produce a character
// reply. History is oldest-first.
type ReplyRequest struct {
	CharacterName string
	Personality   string // character system prompt
	PersonaName   string
	History       []Message
	UserMessage   string
}

// Provider produces AI character replies. The completion call is an external
// collaborator; swap implementations without touching call sites.
type Provider interface {
	Reply(ctx context.Context, req ReplyRequest) (string, error)
}
