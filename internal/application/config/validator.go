// Package config validates user configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/pkg/logger"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if cfg.Preferences.TimeoutSeconds < 0 {
		return fmt.Errorf("preferences.timeout must be >= 0")
	}
	for _, model := range cfg.Models {
		if err := validateModel(model); err != nil {
			return err
		}
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := validateCache(cfg.Cache); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return validatePrompts(cfg.Prompts)
}

func validateModel(model domain.ModelDefinition) error {
	if strings.TrimSpace(model.Name) == "" {
		return errors.New("every model needs a name")
	}
	switch model.Kind() {
	case domain.ProviderHTTP:
		if model.Endpoint == "" {
			return fmt.Errorf("model %s: endpoint is required", model.Name)
		}
	case domain.ProviderOpenAI, domain.ProviderOffline:
	default:
		return fmt.Errorf("model %s: provider must be http|openai|offline, got %s", model.Name, model.Provider)
	}
	if model.MaxTokens < 0 {
		return fmt.Errorf("model %s: max_tokens must be >= 0", model.Name)
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	switch strings.ToLower(storage.Backend) {
	case "", domain.StorageMemory, domain.StorageFile, domain.StorageSQLite:
		return nil
	default:
		return fmt.Errorf("storage.backend must be memory|file|sqlite, got %s", storage.Backend)
	}
}

func validateCache(cache domain.CacheSettings) error {
	if cache.TTL != "" {
		if _, err := time.ParseDuration(cache.TTL); err != nil {
			return fmt.Errorf("cache.ttl invalid: %w", err)
		}
	}
	if cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be >= 0")
	}
	return nil
}

func validatePrompts(prompts domain.PromptSettings) error {
	for name, src := range map[string]string{
		"prompts.randomization": prompts.Randomization,
		"prompts.metadata":      prompts.Metadata,
	} {
		if strings.TrimSpace(src) == "" {
			continue
		}
		if _, err := template.New(name).Funcs(template.FuncMap{"join": strings.Join}).Parse(src); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
