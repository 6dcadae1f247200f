package ai

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

const defaultOpenAIModel = "gpt-4o-mini"

// openAIProvider talks to OpenAI-compatible chat completion APIs via go-openai.
type openAIProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newOpenAIProvider(model domain.ModelDefinition, client *http.Client) ports.Provider {
	return &openAIProvider{
		model:      model,
		httpClient: client,
	}
}

func (p *openAIProvider) Name() string {
	return string(domain.ProviderOpenAI)
}

func (p *openAIProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *openAIProvider) client() (*openai.Client, error) {
	apiKey := getAPIKey(p.model)
	if apiKey == "" && p.model.AuthEnvVar != "" {
		return nil, transportError("missing API key: set %s environment variable", p.model.AuthEnvVar)
	}
	cfg := openai.DefaultConfig(apiKey)
	if p.model.Endpoint != "" {
		cfg.BaseURL = strings.TrimSuffix(p.model.Endpoint, "/")
	}
	if p.model.OrgEnvVar != "" {
		cfg.OrgID = os.Getenv(p.model.OrgEnvVar)
	}
	if p.httpClient != nil {
		cfg.HTTPClient = p.httpClient
	}
	return openai.NewClientWithConfig(cfg), nil
}

func (p *openAIProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	client, err := p.client()
	if err != nil {
		return ports.ProviderResponse{}, err
	}

	messages := buildMessages(p.model, req.Instruction)
	chat := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		if strings.EqualFold(msg.Role, "system") {
			role = openai.ChatMessageRoleSystem
		}
		chat = append(chat, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}

	modelID := p.model.ModelID
	if modelID == "" {
		modelID = defaultOpenAIModel
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     modelID,
		Messages:  chat,
		MaxTokens: p.model.MaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return ports.ProviderResponse{}, transportError("openai API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return ports.ProviderResponse{}, transportError("openai request failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return ports.ProviderResponse{}, malformedError("openai response has no choices")
	}

	return ports.ProviderResponse{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Model: resp.Model,
	}, nil
}
