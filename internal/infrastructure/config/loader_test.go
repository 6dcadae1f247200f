package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/texturepro/internal/domain"
)

func TestLoadWritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Preferences.DefaultModel != "gemini" || !cfg.HasModel("offline") {
		t.Fatalf("unexpected default config: %+v", cfg.Preferences)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if info.Mode().Perm() != domain.SecureFilePermissions {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadHydratesDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
models:
  - name: local
    endpoint: http://localhost:11434/v1/chat/completions
storage:
  path: ~/data/kv.db
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Preferences.DefaultModel != "local" {
		t.Fatalf("default model = %q", cfg.Preferences.DefaultModel)
	}
	if cfg.Preferences.TimeoutSeconds != domain.DefaultTimeoutSeconds {
		t.Fatalf("timeout = %d", cfg.Preferences.TimeoutSeconds)
	}
	if cfg.Storage.Backend != domain.StorageSQLite || cfg.Storage.Path != "/home/tester/data/kv.db" {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("models: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPathResolution(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv(EnvConfigPath, "")
	if got := NewFileLoader("").Path(); got != "/home/tester/.texturepro/config.yaml" {
		t.Fatalf("default path = %q", got)
	}
	t.Setenv(EnvConfigPath, "~/alt.yaml")
	if got := NewFileLoader("").Path(); got != "/home/tester/alt.yaml" {
		t.Fatalf("env path = %q", got)
	}
	if got := NewFileLoader("/etc/tp.yaml").Path(); got != "/etc/tp.yaml" {
		t.Fatalf("override path = %q", got)
	}
}

func TestDefaultIsValidYAML(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if err := cfg.ValidateConsistency(); err != nil {
		t.Fatalf("embedded default is inconsistent: %v", err)
	}
}

func TestSaveBackupAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	if backup, err := loader.Backup(); err != nil || backup != "" {
		t.Fatalf("Backup() on missing file = %q, %v", backup, err)
	}

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetDefaultModel("offline"); err != nil {
		t.Fatal(err)
	}
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	backup, err := loader.Backup()
	if err != nil || backup == "" {
		t.Fatalf("Backup() = %q, %v", backup, err)
	}
	if _, err := os.Stat(backup); err != nil {
		t.Fatalf("backup missing: %v", err)
	}

	reloaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Preferences.DefaultModel != "offline" {
		t.Fatalf("default model = %q after save", reloaded.Preferences.DefaultModel)
	}

	reset, err := loader.Reset()
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if reset.Preferences.DefaultModel != "gemini" {
		t.Fatalf("default model = %q after reset", reset.Preferences.DefaultModel)
	}
}
