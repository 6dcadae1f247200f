package ai

import (
	"strings"

	"github.com/doeshing/texturepro/internal/domain"
)

// buildMessages pairs the model's optional system prompt with the instruction.
func buildMessages(model domain.ModelDefinition, instruction string) []domain.PromptMessage {
	var messages []domain.PromptMessage
	if system := strings.TrimSpace(model.System); system != "" {
		messages = append(messages, domain.PromptMessage{Role: "system", Content: system})
	}
	return append(messages, domain.PromptMessage{Role: "user", Content: instruction})
}
