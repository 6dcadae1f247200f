// Package ai provides the text-generation providers behind the suggestion
// client.
//
// This package implements a configuration-driven approach to providers:
//   - Factory: Creates provider instances based on model definitions
//   - HTTP Provider: Generic JSON-over-HTTP client (Gemini, Anthropic, Ollama, any
//     OpenAI-compatible endpoint) whose wire shape is set by the model's APIFormat
//   - OpenAI Provider: go-openai SDK client for OpenAI and compatible services
//   - Offline Provider: never reaches the network, so callers always fall back
//
// Every failure is reported wrapped in domain.ErrTransportFailure, or in
// domain.ErrMalformedResponse when the service answered with a body that does
// not carry generated text.
package ai

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// Factory creates provider instances based on model definitions.
// It maintains a single HTTP client shared across all providers.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a new provider factory. A zero timeout uses
// domain.DefaultHTTPClientTimeout.
func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPClientTimeout
	}
	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewFactoryWithClient uses client for every provider.
func NewFactoryWithClient(client *http.Client) *Factory {
	return &Factory{httpClient: client}
}

// ForModel builds the provider selected by the model's provider kind.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	switch model.Kind() {
	case domain.ProviderHTTP:
		if model.Endpoint == "" {
			return nil, fmt.Errorf("model %s: endpoint is required", model.Name)
		}
		return newHTTPProvider(model, f.httpClient), nil
	case domain.ProviderOpenAI:
		return newOpenAIProvider(model, f.httpClient), nil
	case domain.ProviderOffline:
		return newOfflineProvider(model), nil
	default:
		return nil, fmt.Errorf("model %s: unsupported provider %q", model.Name, model.Provider)
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)

// getAPIKey retrieves the API key from the model's environment variable.
func getAPIKey(model domain.ModelDefinition) string {
	if model.AuthEnvVar == "" {
		return ""
	}
	return os.Getenv(model.AuthEnvVar)
}

func transportError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrTransportFailure, fmt.Sprintf(format, args...))
}

func malformedError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedResponse, fmt.Sprintf(format, args...))
}
