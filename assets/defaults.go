// Package assets holds files embedded into the binary.
package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// RandomizationPrompt is the default instruction for enhanced randomization.
//
//go:embed defaults/prompts/randomization.tmpl
var RandomizationPrompt string

// MetadataPrompt is the default instruction for title and keyword generation.
//
//go:embed defaults/prompts/metadata.tmpl
var MetadataPrompt string
