package commands

// Defaults
const (
	// DefaultHistoryStatsLimit is the number of values shown per parameter
	DefaultHistoryStatsLimit = 3
	// ModelTestPrompt is sent by 'models test'
	ModelTestPrompt = `Reply with exactly this JSON object and nothing else: {"ok": true}`
)

// Error messages
const (
	ErrConfigLoaderUnavailable    = "config loader unavailable"
	ErrDoctorServiceUnavailable   = "doctor service unavailable"
	ErrGenerateServiceUnavailable = "generate service unavailable"
	ErrCustomServiceUnavailable   = "custom prompt service unavailable"
	ErrCacheStoreUnavailable      = "metadata cache is disabled"
	ErrClipboardUnavailable       = "clipboard not available on this system"
	ErrKeyRequired                = "--key is required"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded  = "No history recorded yet."
	MsgNoCachedMetadata   = "No cached metadata."
	MsgHistoryCleared     = "History cleared."
	MsgCacheCleared       = "Cache cleared."
	MsgCopied             = "Copied to clipboard."
	MsgClearCancelled     = "Clear cancelled."
)
