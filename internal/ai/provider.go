// Package ai generates assistant replies through an ordered chain of
// providers: OpenAI first, a local Ollama instance second, and a
// deterministic offline template as the terminal fallback.
package ai

import "context"

// Message roles used across providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one element of a chat prompt.
type Message struct {
	Role    string
	Content string
}

// Provider produces a reply for the given prompt.
type Provider interface {
	Name() string
	Generate(ctx context.Context, messages []Message) (string, error)
}
