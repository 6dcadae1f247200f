package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// DataFilePermissions is the permission for store and export files (rw-r--r--)
	DataFilePermissions = 0o644
)

// Timeout and duration constants
const (
	// DefaultTimeoutSeconds bounds a single suggestion request
	DefaultTimeoutSeconds = 30
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultCacheTTL is how long a cached metadata suggestion stays valid
	DefaultCacheTTL = 24 * time.Hour
)

// Limit constants
const (
	// DefaultMaxCacheEntries is the maximum number of cache entries
	DefaultMaxCacheEntries = 100
	// MaxPromptLength caps free-text custom prompts
	MaxPromptLength = 500
	// MaxTitleLength caps suggested titles
	MaxTitleLength = 70
	// MaxKeywords caps suggested keyword lists
	MaxKeywords = 49
)

// Storage keys used with the key-value store.
const (
	StorageKeyGeneratedHistory = "texturepro-generated-prompt-history"
	StorageKeyCustomHistory    = "texturepro-custom-prompt-history"
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default maximum number of tokens
	DefaultMaxTokens = 1024
	// DefaultLogLevel is used when logging.level is unset
	DefaultLogLevel = "info"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// ClockFormat renders history entry times (e.g. "14:30")
	ClockFormat = "15:04"
)
