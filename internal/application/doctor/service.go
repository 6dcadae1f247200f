// Package doctor runs environment diagnostics for the CLI.
package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	configvalidator "github.com/doeshing/texturepro/internal/application/config"
	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// StoreProbe opens the configured store, performs a read and closes it.
type StoreProbe func(ctx context.Context, settings domain.StorageSettings) error

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	ProviderFactory ports.ProviderFactory
	ProbeStore      StoreProbe
	// CacheDir is checked for writability when the cache is enabled.
	CacheDir string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded version %s", cfg.ConfigFormatVersion)))

	if err := configvalidator.Validate(cfg); err != nil {
		checks = append(checks, fail("Config validation", err.Error()))
	} else {
		checks = append(checks, ok("Config validation", fmt.Sprintf("%d models", cfg.GetModelCount())))
	}

	checks = append(checks, s.storageCheck(ctx, cfg.Storage))
	checks = append(checks, s.cacheCheck(cfg))
	checks = append(checks, apiCheck(cfg.Models))
	checks = append(checks, s.providerCheck(cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) storageCheck(ctx context.Context, settings domain.StorageSettings) domain.HealthCheck {
	backend := settings.Backend
	if backend == "" {
		backend = domain.StorageSQLite
	}
	if s.ProbeStore == nil {
		return warn("Storage", "probe not configured")
	}
	if err := s.ProbeStore(ctx, settings); err != nil {
		return fail("Storage", fmt.Sprintf("%s: %v", backend, err))
	}
	return ok("Storage", backend+" ready")
}

func (s *Service) cacheCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.IsCacheEnabled() {
		return ok("Metadata cache", "disabled")
	}
	if s.CacheDir == "" {
		return warn("Metadata cache", "cache directory unknown")
	}
	if err := os.MkdirAll(s.CacheDir, domain.DirectoryPermissions); err != nil {
		return fail("Metadata cache", err.Error())
	}
	probe, err := os.CreateTemp(s.CacheDir, ".doctor-*")
	if err != nil {
		return fail("Metadata cache", fmt.Sprintf("%s not writable: %v", s.CacheDir, err))
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return ok("Metadata cache", filepath.Clean(s.CacheDir))
}

func (s *Service) providerCheck(cfg domain.Config) domain.HealthCheck {
	model, err := cfg.GetDefaultModel()
	if err != nil {
		return fail("Provider", err.Error())
	}
	if s.ProviderFactory == nil {
		return warn("Provider", "factory not configured")
	}
	provider, err := s.ProviderFactory.ForModel(model)
	if err != nil {
		return fail("Provider", err.Error())
	}
	if model.Kind() == domain.ProviderOffline {
		return warn("Provider", "offline mode, suggestions use local selection only")
	}
	return ok("Provider", fmt.Sprintf("%s (%s)", provider.Name(), model.Kind()))
}

// apiCheck reports models whose key variable is declared but unset.
func apiCheck(models []domain.ModelDefinition) domain.HealthCheck {
	var missing []string
	for _, model := range models {
		if model.AuthEnvVar == "" {
			continue
		}
		if os.Getenv(model.AuthEnvVar) == "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", model.AuthEnvVar, model.Name))
		}
	}
	if len(missing) > 0 {
		return warn("API keys", "missing "+strings.Join(missing, ", "))
	}
	return ok("API keys", "detected for configured models")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
