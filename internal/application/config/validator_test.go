package config

import (
	"strings"
	"testing"

	"github.com/doeshing/texturepro/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences:         domain.Preferences{DefaultModel: "gemini", FallbackModels: []string{"offline"}, TimeoutSeconds: 30},
		Models: []domain.ModelDefinition{
			{Name: "gemini", Endpoint: "https://example.test/generate", AuthEnvVar: "GEMINI_API_KEY"},
			{Name: "offline", Provider: domain.ProviderOffline},
		},
		Storage: domain.StorageSettings{Backend: domain.StorageSQLite},
		Cache:   domain.CacheSettings{Enabled: true, TTL: "24h", MaxEntries: 100},
		Logging: domain.LoggingSettings{Level: "info"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "no models", mutate: func(c *domain.Config) { c.Models = nil }, wantErr: "at least one model"},
		{name: "unknown default", mutate: func(c *domain.Config) { c.Preferences.DefaultModel = "nope" }, wantErr: "default model nope"},
		{name: "unknown fallback", mutate: func(c *domain.Config) { c.Preferences.FallbackModels = []string{"ghost"} }, wantErr: "fallback model ghost"},
		{name: "http without endpoint", mutate: func(c *domain.Config) { c.Models[0].Endpoint = "" }, wantErr: "endpoint is required"},
		{name: "bad provider", mutate: func(c *domain.Config) { c.Models[0].Provider = "smtp" }, wantErr: "provider must be"},
		{name: "bad backend", mutate: func(c *domain.Config) { c.Storage.Backend = "redis" }, wantErr: "storage.backend"},
		{name: "bad ttl", mutate: func(c *domain.Config) { c.Cache.TTL = "tomorrow" }, wantErr: "cache.ttl"},
		{name: "negative entries", mutate: func(c *domain.Config) { c.Cache.MaxEntries = -1 }, wantErr: "cache.max_entries"},
		{name: "bad log level", mutate: func(c *domain.Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad template", mutate: func(c *domain.Config) { c.Prompts.Metadata = "{{.Prompt" }, wantErr: "prompts.metadata"},
		{name: "template ok", mutate: func(c *domain.Config) { c.Prompts.Randomization = `{{join .Catalogs.Materials ", "}}` }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
