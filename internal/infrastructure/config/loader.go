// Package config loads ~/.texturepro/config.yaml.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/texturepro/assets"
	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/pkg/filesystem"
	"github.com/doeshing/texturepro/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "TEXTUREPRO_CONFIG"

// FileLoader loads YAML configuration from ~/.texturepro/config.yaml (overridable via TEXTUREPRO_CONFIG).
// A missing file is created from the embedded defaults.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the environment or the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := writeDefault(path); err != nil {
			return domain.Config{}, err
		}
		data = assets.DefaultConfigYAML
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

// Save writes cfg back to disk with owner-only permissions.
func (l *FileLoader) Save(cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Reset overwrites the config file with the embedded defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	if err := writeDefault(l.Path()); err != nil {
		return domain.Config{}, err
	}
	return Default()
}

// Backup copies the current config file to a timestamped backup and returns
// its path. A missing config file is not an error and yields "".
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

// Default parses the embedded default configuration.
func Default() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = domain.DefaultTimeoutSeconds
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = domain.StorageSQLite
	}
	cfg.Storage.Path = filesystem.ExpandPath(cfg.Storage.Path)
	cfg.Logging.File = filesystem.ExpandPath(cfg.Logging.File)
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
