package llm

import (
	"context"
	"fmt"
)

// StubProvider is a canned-reply provider for development and tests; replace
// with the OpenAI provider in production.
type StubProvider struct{}

func (s *StubProvider) Reply(ctx context.Context, req ReplyRequest) (string, error) {
	name := req.PersonaName
	if name == "" {
		name = "you"
	}
	return fmt.Sprintf("%s smiles. \"Tell me more, %s.\"", req.CharacterName, name), nil
}
