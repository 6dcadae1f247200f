package domain

// Config mirrors ~/.texturepro/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Storage             StorageSettings   `yaml:"storage"`
	Cache               CacheSettings     `yaml:"cache"`
	Logging             LoggingSettings   `yaml:"logging"`
	Prompts             PromptSettings    `yaml:"prompts"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel   string   `yaml:"default_model"`
	FallbackModels []string `yaml:"fallback_models,omitempty"`
	TimeoutSeconds int      `yaml:"timeout"`
	// Enrich requests a title and keywords for every generated prompt.
	Enrich bool `yaml:"enrich"`
	// TitleEllipsis truncates long titles to 67 characters plus "...".
	TitleEllipsis bool `yaml:"title_ellipsis"`
}

// StorageSettings selects the key-value backend.
type StorageSettings struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// CacheSettings configures the metadata cache.
type CacheSettings struct {
	Enabled    bool   `yaml:"enabled"`
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}

// LoggingSettings configures the structured logger.
type LoggingSettings struct {
	Level       string `yaml:"level"`
	File        string `yaml:"file"`
	Development bool   `yaml:"development"`
}

// PromptSettings overrides the instruction templates sent to the model.
// Empty values use the embedded defaults.
type PromptSettings struct {
	Randomization string `yaml:"randomization,omitempty"`
	Metadata      string `yaml:"metadata,omitempty"`
}

// Storage backends.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)
