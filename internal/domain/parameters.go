// Package domain defines core business entities and value objects for TexturePro.
//
// This file contains the texture parameter model: the four parameter keys, the
// complete and partial parameter sets, and the metadata suggested by a model.
// The domain layer is independent of infrastructure concerns.
package domain

import "fmt"

// ParameterKey names one of the four texture parameters.
type ParameterKey string

const (
	KeyMaterial  ParameterKey = "materialType"
	KeyPrimary   ParameterKey = "primaryColorTone"
	KeySecondary ParameterKey = "secondaryColorTone"
	KeyLighting  ParameterKey = "lightingStyle"
)

// ParameterKeys lists the keys in display order.
var ParameterKeys = []ParameterKey{KeyMaterial, KeyPrimary, KeySecondary, KeyLighting}

// ParseParameterKey accepts the canonical key or a short alias
// (material, primary, secondary, lighting).
func ParseParameterKey(raw string) (ParameterKey, error) {
	switch raw {
	case string(KeyMaterial), "material":
		return KeyMaterial, nil
	case string(KeyPrimary), "primary":
		return KeyPrimary, nil
	case string(KeySecondary), "secondary":
		return KeySecondary, nil
	case string(KeyLighting), "lighting":
		return KeyLighting, nil
	default:
		return "", fmt.Errorf("unknown parameter %q", raw)
	}
}

// Label returns the human-readable field name.
func (k ParameterKey) Label() string {
	switch k {
	case KeyMaterial:
		return "Material Type"
	case KeyPrimary:
		return "Primary Color"
	case KeySecondary:
		return "Secondary Color"
	case KeyLighting:
		return "Lighting"
	default:
		return string(k)
	}
}

// Parameters is a complete selection of the four texture parameters.
type Parameters struct {
	MaterialType       string `json:"materialType"`
	PrimaryColorTone   string `json:"primaryColorTone"`
	SecondaryColorTone string `json:"secondaryColorTone"`
	LightingStyle      string `json:"lightingStyle"`
}

// PartialParameters has the same shape as Parameters but any field may be empty.
type PartialParameters = Parameters

// Get returns the value stored for key.
func (p Parameters) Get(key ParameterKey) string {
	switch key {
	case KeyMaterial:
		return p.MaterialType
	case KeyPrimary:
		return p.PrimaryColorTone
	case KeySecondary:
		return p.SecondaryColorTone
	case KeyLighting:
		return p.LightingStyle
	default:
		return ""
	}
}

// With returns a copy of p with key set to value.
func (p Parameters) With(key ParameterKey, value string) Parameters {
	switch key {
	case KeyMaterial:
		p.MaterialType = value
	case KeyPrimary:
		p.PrimaryColorTone = value
	case KeySecondary:
		p.SecondaryColorTone = value
	case KeyLighting:
		p.LightingStyle = value
	}
	return p
}

// Complete reports whether every field is set.
func (p Parameters) Complete() bool {
	for _, key := range ParameterKeys {
		if p.Get(key) == "" {
			return false
		}
	}
	return true
}

// MissingKeys lists the keys without a value.
func (p Parameters) MissingKeys() []ParameterKey {
	var missing []ParameterKey
	for _, key := range ParameterKeys {
		if p.Get(key) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// Metadata is the validated title and keyword set suggested for a prompt.
type Metadata struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
}

// SuggestionSource records where randomized parameters came from.
type SuggestionSource string

const (
	SourceModel    SuggestionSource = "model"
	SourceFallback SuggestionSource = "fallback"
)

// Randomization is the outcome of an enhanced randomization request. Parameters
// is always a valid selection; Reason explains why the fallback was used.
type Randomization struct {
	Parameters Parameters
	Source     SuggestionSource
	Reason     string
}
