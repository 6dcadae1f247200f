// Package domain defines core business entities and value objects for TexturePro.
//
// This file contains text-generation model and provider definitions. A model
// is declared in the config file and selects one of the provider adapters.
package domain

// ProviderKind selects the adapter used for a model.
type ProviderKind string

const (
	// ProviderHTTP is the configuration-driven JSON-over-HTTP adapter (Gemini, Anthropic, Ollama).
	ProviderHTTP ProviderKind = "http"
	// ProviderOpenAI uses the OpenAI-compatible SDK client.
	ProviderOpenAI ProviderKind = "openai"
	// ProviderOffline never reaches the network; every call fails and callers fall back.
	ProviderOffline ProviderKind = "offline"
)

// ModelDefinition describes a text-generation endpoint declared in the config file.
// Each model represents a specific AI service endpoint with its authentication and
// generation parameters.
type ModelDefinition struct {
	Name       string       `yaml:"name"`
	Provider   ProviderKind `yaml:"provider,omitempty"`
	Endpoint   string       `yaml:"endpoint"`
	AuthEnvVar string       `yaml:"auth_env_var"`
	OrgEnvVar  string       `yaml:"org_env_var,omitempty"`
	ModelID    string       `yaml:"model_id"`
	MaxTokens  int          `yaml:"max_tokens"`
	System     string       `yaml:"system,omitempty"`
	APIFormat  APIFormat    `yaml:"api_format,omitempty"`
}

// Kind returns the provider kind, defaulting to the HTTP adapter.
func (m ModelDefinition) Kind() ProviderKind {
	if m.Provider == "" {
		return ProviderHTTP
	}
	return m.Provider
}

// APIFormat defines how to construct requests and parse responses for different AI APIs.
// All fields are optional with sensible defaults (OpenAI-compatible format).
type APIFormat struct {
	// AuthHeaderName specifies the HTTP header name for authentication.
	// Default: "Authorization"
	AuthHeaderName string `yaml:"auth_header_name,omitempty"`

	// AuthHeaderPrefix is prepended to the API key value.
	// Default: "Bearer " (with trailing space)
	// Set to empty string for providers that don't use a prefix (e.g., Gemini's "x-goog-api-key")
	AuthHeaderPrefix string `yaml:"auth_header_prefix,omitempty"`

	// SystemMessageMode controls how system messages are sent to the API.
	// Values: "inline" (default) - system messages in the messages array
	//         "separate" - system messages in a separate "system" field (Anthropic)
	SystemMessageMode string `yaml:"system_message_mode,omitempty"`

	// ContentWrapper controls how message content is formatted.
	// Values: "standard" (default) - direct string content
	//         "anthropic" - wrap in [{"type": "text", "text": "..."}] array
	//         "gemini" - generateContent body with contents[].parts[]
	ContentWrapper string `yaml:"content_wrapper,omitempty"`

	// ResponseJSONPath specifies where to extract the generated text from the response.
	// Default: "choices[0].message.content" (OpenAI format)
	ResponseJSONPath string `yaml:"response_json_path,omitempty"`

	// ExtraHeaders contains additional HTTP headers to send with each request.
	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty"`
}

// PromptMessage follows the role/content pair required by most chat APIs.
type PromptMessage struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

// API Format Constants define standard values for APIFormat fields.
const (
	DefaultAuthHeaderName   = "Authorization"
	DefaultAuthHeaderPrefix = "Bearer "

	SystemMessageModeInline   = "inline"
	SystemMessageModeSeparate = "separate"

	ContentWrapperStandard  = "standard"
	ContentWrapperAnthropic = "anthropic"
	ContentWrapperGemini    = "gemini"

	DefaultResponsePath   = "choices[0].message.content"
	AnthropicResponsePath = "content[0].text"
	GeminiResponsePath    = "candidates[0].content.parts[0].text"
)

// GetAuthHeaderName returns the authentication header name with default fallback.
func (f APIFormat) GetAuthHeaderName() string {
	if f.AuthHeaderName == "" {
		return DefaultAuthHeaderName
	}
	return f.AuthHeaderName
}

// GetAuthHeaderPrefix returns the authentication header prefix with default fallback.
// An empty prefix alongside a custom header name is intentional.
func (f APIFormat) GetAuthHeaderPrefix() string {
	if f.AuthHeaderName != "" && f.AuthHeaderPrefix == "" {
		return ""
	}
	if f.AuthHeaderPrefix == "" {
		return DefaultAuthHeaderPrefix
	}
	return f.AuthHeaderPrefix
}

// GetSystemMessageMode returns the system message handling mode with default fallback.
func (f APIFormat) GetSystemMessageMode() string {
	if f.SystemMessageMode == "" {
		return SystemMessageModeInline
	}
	return f.SystemMessageMode
}

// GetContentWrapper returns the content wrapper format with default fallback.
func (f APIFormat) GetContentWrapper() string {
	if f.ContentWrapper == "" {
		return ContentWrapperStandard
	}
	return f.ContentWrapper
}

// GetResponseJSONPath returns the JSON path for extracting response content.
// Gemini bodies default to the candidates path.
func (f APIFormat) GetResponseJSONPath() string {
	if f.ResponseJSONPath != "" {
		return f.ResponseJSONPath
	}
	if f.GetContentWrapper() == ContentWrapperGemini {
		return GeminiResponsePath
	}
	return DefaultResponsePath
}

// IsSystemMessageSeparate returns true if system messages should be in a separate field.
func (f APIFormat) IsSystemMessageSeparate() bool {
	return f.GetSystemMessageMode() == SystemMessageModeSeparate
}

// IsContentWrapped returns true if content should be wrapped in Anthropic's array format.
func (f APIFormat) IsContentWrapped() bool {
	return f.GetContentWrapper() == ContentWrapperAnthropic
}

// IsGemini returns true for the generateContent request shape.
func (f APIFormat) IsGemini() bool {
	return f.GetContentWrapper() == ContentWrapperGemini
}
