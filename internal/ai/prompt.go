package ai

import (
	"fmt"

	"github.com/m3rciful/leadbot/internal/memory"
)

// BuildPrompt assembles the full chat prompt: system guidance, then the
// stored transcript, then the new user message.
func BuildPrompt(companyName string, transcript []memory.Entry, userText string) []Message {
	messages := make([]Message, 0, len(transcript)+2)
	messages = append(messages, Message{
		Role:    RoleSystem,
		Content: systemPrompt(companyName),
	})
	for _, e := range transcript {
		messages = append(messages, Message{Role: e.Role, Content: e.Content})
	}
	messages = append(messages, Message{Role: RoleUser, Content: userText})
	return messages
}

func systemPrompt(companyName string) string {
	return fmt.Sprintf(
		"You are a friendly assistant of %s, a software development agency. "+
			"Answer briefly and to the point. Help the client figure out what "+
			"kind of product they need, suggest a suitable technology stack and "+
			"a rough scope. When the conversation shows buying intent, suggest "+
			"sending /contact to leave details. Do not invent prices beyond "+
			"rough starting estimates.",
		companyName,
	)
}
