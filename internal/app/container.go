// Package app wires application services to infrastructure adapters.
package app

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	configvalidator "github.com/doeshing/texturepro/internal/application/config"
	"github.com/doeshing/texturepro/internal/application/doctor"
	"github.com/doeshing/texturepro/internal/application/generate"
	"github.com/doeshing/texturepro/internal/application/selection"
	"github.com/doeshing/texturepro/internal/application/suggestion"
	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/infrastructure/ai"
	"github.com/doeshing/texturepro/internal/infrastructure/cache"
	"github.com/doeshing/texturepro/internal/infrastructure/config"
	"github.com/doeshing/texturepro/internal/infrastructure/history"
	"github.com/doeshing/texturepro/internal/infrastructure/storage"
	"github.com/doeshing/texturepro/internal/pkg/filesystem"
	"github.com/doeshing/texturepro/internal/pkg/logger"
	"github.com/doeshing/texturepro/internal/ports"
)

// Options controls how the container is built.
type Options struct {
	ConfigPath string
	// Model overrides preferences.default_model.
	Model   string
	Verbose bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigLoader   *config.FileLoader
	ConfigProvider ports.ConfigProvider
	Logger         *logger.ZapLogger
	Store          storage.Store
	Catalogs       domain.Catalogs

	GenerateService *generate.Service
	CustomService   *generate.CustomService
	DoctorService   *doctor.Service

	// CacheStore is nil when the metadata cache is disabled.
	CacheStore *cache.FileCache
	Clipboard  ports.Clipboard
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Model != "" {
		if err := cfg.SetDefaultModel(opts.Model); err != nil {
			return nil, err
		}
	}

	log, err := logger.New(logger.Options{
		Verbose:     opts.Verbose,
		Level:       cfg.GetLogLevel(),
		File:        cfg.Logging.File,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, err
	}
	if err := configvalidator.Validate(cfg); err != nil {
		log.Warn("configuration has problems, run 'texturepro config validate'", map[string]interface{}{"error": err.Error()})
	}

	appDir := filesystem.AppDir()
	store, err := storage.Open(cfg.Storage, appDir, log)
	if err != nil {
		return nil, err
	}

	factory := ai.NewFactory(cfg.GetTimeout())
	client := &suggestion.Client{
		Provider:  defaultProvider(cfg, factory, log),
		Validator: &suggestion.Validator{TitleEllipsis: cfg.Preferences.TitleEllipsis, Logger: log},
		Selector:  selection.New(nil),
		Logger:    log,
		Timeout:   cfg.GetTimeout(),
	}
	if tmpl, err := suggestion.NewTemplates(cfg.Prompts.Randomization, cfg.Prompts.Metadata); err != nil {
		log.Warn("custom prompt templates ignored", map[string]interface{}{"error": err.Error()})
	} else {
		client.Templates = tmpl
	}

	cacheDir := filepath.Join(appDir, "cache")
	var metadataCache *cache.FileCache
	if cfg.IsCacheEnabled() {
		metadataCache = cache.NewFileCache(cacheDir, cfg.GetCacheTTL(), cfg.GetCacheMaxEntries())
		client.Cache = metadataCache
	}

	catalogs := domain.DefaultCatalogs()
	generateService := &generate.Service{
		Catalogs:    catalogs,
		Repository:  history.NewGenerated(store, log),
		Suggestions: client,
		Selector:    client.Selector,
		Clock:       time.Now,
		Logger:      log,
	}
	customService := &generate.CustomService{
		Repository:  history.NewCustom(store, log),
		Suggestions: client,
		Clock:       time.Now,
		Logger:      log,
	}
	doctorService := &doctor.Service{
		ConfigProvider:  cfgLoader,
		ProviderFactory: factory,
		ProbeStore:      probeStore(appDir, log),
		CacheDir:        cacheDir,
	}

	return &Container{
		Config:          cfg,
		ConfigLoader:    cfgLoader,
		ConfigProvider:  cfgLoader,
		Logger:          log,
		Store:           store,
		Catalogs:        catalogs,
		GenerateService: generateService,
		CustomService:   customService,
		DoctorService:   doctorService,
		CacheStore:      metadataCache,
	}, nil
}

// Close releases the store and flushes the logger.
func (c *Container) Close() error {
	var errs []error
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	if c.Logger != nil {
		// stderr sync fails on some terminals; nothing to act on.
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}

// defaultProvider builds the provider for the default model, then for each
// fallback model in order. When none can be built the provider stays nil and
// every suggestion uses local selection.
func defaultProvider(cfg domain.Config, factory ports.ProviderFactory, log ports.Logger) ports.Provider {
	var candidates []domain.ModelDefinition
	if model, err := cfg.GetDefaultModel(); err == nil {
		candidates = append(candidates, model)
	} else {
		log.Warn("default model unusable", map[string]interface{}{"error": err.Error()})
	}
	candidates = append(candidates, cfg.GetFallbackModels()...)

	for _, model := range candidates {
		provider, err := factory.ForModel(model)
		if err == nil {
			return provider
		}
		log.Warn("provider unavailable", map[string]interface{}{
			"model": model.Name,
			"error": err.Error(),
		})
	}
	log.Warn("no provider configured, suggestions use local selection", nil)
	return nil
}

func probeStore(baseDir string, log ports.Logger) doctor.StoreProbe {
	return func(ctx context.Context, settings domain.StorageSettings) error {
		store, err := storage.Open(settings, baseDir, log)
		if err != nil {
			return err
		}
		defer store.Close()
		_, _, err = store.Get(ctx, domain.StorageKeyGeneratedHistory)
		return err
	}
}
