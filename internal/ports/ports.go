// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces keep the selection and suggestion engine independent of the
// storage backend, the text-generation service and the CLI framework.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Provider, KeyValueStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/doeshing/texturepro/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.texturepro/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// KeyValueStore is the persistence collaborator. Get reports absence with
// ok=false and a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Updater is implemented by stores that can read and rewrite one key as a
// single atomic step. fn receives the current value (ok=false when absent)
// and returns the value to store; an error from fn aborts the update.
type Updater interface {
	Update(ctx context.Context, key string, fn func(current string, ok bool) (string, error)) error
}

// HistoryRepository reads and mutates the generated-prompt history.
// Append is atomic with respect to concurrent appends.
type HistoryRepository interface {
	Load(ctx context.Context) (domain.HistoryLog, error)
	Append(ctx context.Context, rec domain.SelectionRecord) (domain.HistoryLog, error)
	Clear(ctx context.Context) error
}

// CustomHistoryRepository reads and mutates the custom-prompt history.
type CustomHistoryRepository interface {
	Load(ctx context.Context) (domain.CustomLog, error)
	Append(ctx context.Context, rec domain.CustomRecord) (domain.CustomLog, error)
	Clear(ctx context.Context) error
}

// ProviderFactory builds text-generation provider instances based on model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider is the text-generation collaborator. Each implementation wraps a
// specific AI service API and performs exactly one call per Generate.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderRequest carries the rendered instruction.
type ProviderRequest struct {
	Instruction string
	Model       domain.ModelDefinition
}

// ProviderResponse holds the raw text returned by the model.
type ProviderResponse struct {
	Text  string
	Model string
}

// MetadataCache stores validated metadata keyed by prompt text and a
// normalization variant. Entries written under one variant are never
// returned for another.
type MetadataCache interface {
	Get(promptText, variant string) (domain.Metadata, bool, error)
	Set(promptText, variant string, meta domain.Metadata) error
}

// Clock returns the current time; injected so records get deterministic timestamps in tests.
type Clock func() time.Time

// Clipboard provides cross-platform clipboard integration for copying prompts.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
