package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// httpProvider is a configuration-driven HTTP-based provider.
// All provider-specific behavior is controlled through the model's APIFormat configuration.
type httpProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newHTTPProvider(model domain.ModelDefinition, client *http.Client) ports.Provider {
	return &httpProvider{
		model:      model,
		httpClient: client,
	}
}

func (p *httpProvider) Name() string {
	return string(domain.ProviderHTTP)
}

func (p *httpProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *httpProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	requestBody, err := p.buildRequestBody(buildMessages(p.model, req.Instruction))
	if err != nil {
		return ports.ProviderResponse{}, transportError("build request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.model.Endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return ports.ProviderResponse{}, transportError("create HTTP request: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if err := p.setAuthHeaders(httpReq); err != nil {
		return ports.ProviderResponse{}, transportError("%v", err)
	}
	p.setExtraHeaders(httpReq)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.ProviderResponse{}, transportError("HTTP request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ports.ProviderResponse{}, transportError("read response body: %v", err)
	}
	if resp.StatusCode >= 400 {
		return ports.ProviderResponse{}, transportError("HTTP %d: %s", resp.StatusCode, snippet(body))
	}

	content, err := p.parseResponse(body)
	if err != nil {
		return ports.ProviderResponse{}, err
	}

	return ports.ProviderResponse{
		Text:  content,
		Model: p.model.ModelID,
	}, nil
}

// buildRequestBody constructs the JSON request body based on the model's APIFormat configuration.
func (p *httpProvider) buildRequestBody(messages []domain.PromptMessage) ([]byte, error) {
	format := p.model.APIFormat
	if format.IsGemini() {
		return sonic.Marshal(buildGeminiRequest(p.model, messages))
	}

	request := map[string]interface{}{
		"model": p.model.ModelID,
	}
	if p.model.MaxTokens > 0 {
		request["max_tokens"] = p.model.MaxTokens
	}

	if format.IsSystemMessageSeparate() {
		systemPrompt, chatMessages := splitSystemMessages(messages, format)
		if systemPrompt != "" {
			request["system"] = systemPrompt
		}
		request["messages"] = chatMessages
	} else {
		request["messages"] = formatMessagesInline(messages, format)
	}

	return sonic.Marshal(request)
}

// buildGeminiRequest produces a generateContent body. The model is part of
// the endpoint URL, so it is not repeated here.
func buildGeminiRequest(model domain.ModelDefinition, messages []domain.PromptMessage) map[string]interface{} {
	var systemLines []string
	contents := make([]map[string]interface{}, 0, len(messages))
	for _, msg := range messages {
		if strings.EqualFold(msg.Role, "system") {
			systemLines = append(systemLines, msg.Content)
			continue
		}
		contents = append(contents, map[string]interface{}{
			"role":  "user",
			"parts": []map[string]string{{"text": msg.Content}},
		})
	}

	request := map[string]interface{}{
		"contents": contents,
	}
	if len(systemLines) > 0 {
		request["systemInstruction"] = map[string]interface{}{
			"parts": []map[string]string{{"text": strings.Join(systemLines, "\n")}},
		}
	}
	if model.MaxTokens > 0 {
		request["generationConfig"] = map[string]interface{}{
			"maxOutputTokens": model.MaxTokens,
		}
	}
	return request
}

// splitSystemMessages separates system messages from chat messages for providers
// that require system messages in a separate field (e.g., Anthropic).
func splitSystemMessages(messages []domain.PromptMessage, format domain.APIFormat) (string, []map[string]interface{}) {
	var systemLines []string
	var chatMessages []map[string]interface{}

	for _, msg := range messages {
		if strings.EqualFold(msg.Role, "system") {
			systemLines = append(systemLines, msg.Content)
			continue
		}
		chatMessages = append(chatMessages, formatMessage(msg, format))
	}

	return strings.TrimSpace(strings.Join(systemLines, "\n")), chatMessages
}

func formatMessagesInline(messages []domain.PromptMessage, format domain.APIFormat) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(messages))
	for _, msg := range messages {
		result = append(result, formatMessage(msg, format))
	}
	return result
}

func formatMessage(msg domain.PromptMessage, format domain.APIFormat) map[string]interface{} {
	message := map[string]interface{}{
		"role": strings.ToLower(msg.Role),
	}
	if format.IsContentWrapped() {
		message["content"] = []map[string]string{
			{"type": "text", "text": msg.Content},
		}
	} else {
		message["content"] = msg.Content
	}
	return message
}

// setAuthHeaders configures authentication headers. Models without an
// auth_env_var (local Ollama) send none.
func (p *httpProvider) setAuthHeaders(req *http.Request) error {
	if p.model.AuthEnvVar == "" {
		return nil
	}
	apiKey := getAPIKey(p.model)
	if apiKey == "" {
		return fmt.Errorf("missing API key: set %s environment variable", p.model.AuthEnvVar)
	}

	format := p.model.APIFormat
	req.Header.Set(format.GetAuthHeaderName(), format.GetAuthHeaderPrefix()+apiKey)

	if p.model.OrgEnvVar != "" {
		if orgID := os.Getenv(p.model.OrgEnvVar); orgID != "" {
			req.Header.Set("OpenAI-Organization", orgID)
		}
	}
	return nil
}

func (p *httpProvider) setExtraHeaders(req *http.Request) {
	for key, value := range p.model.APIFormat.ExtraHeaders {
		req.Header.Set(key, value)
	}
}

// parseResponse extracts the generated text using the configured JSON path.
func (p *httpProvider) parseResponse(body []byte) (string, error) {
	var response map[string]interface{}
	if err := sonic.Unmarshal(body, &response); err != nil {
		return "", malformedError("unmarshal response: %v", err)
	}

	path := p.model.APIFormat.GetResponseJSONPath()
	content, err := extractJSONPath(response, path)
	if err != nil {
		return "", malformedError("extract from path '%s': %v", path, err)
	}
	return strings.TrimSpace(content), nil
}

func snippet(body []byte) string {
	const limit = 200
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
