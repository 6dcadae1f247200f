package domain

import "time"

// CacheEntry is one cached metadata result.
type CacheEntry struct {
	Key        string    `json:"key"`
	PromptText string    `json:"promptText"`
	Variant    string    `json:"variant,omitempty"`
	Metadata   Metadata  `json:"metadata"`
	CreatedAt  time.Time `json:"createdAt"`
}
