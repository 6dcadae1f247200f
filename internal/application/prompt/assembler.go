// Package prompt renders texture parameters into the final prompt text.
package prompt

import (
	"strings"

	"github.com/doeshing/texturepro/internal/domain"
)

// Assemble renders params into the fixed texture prompt sentence. Equal
// inputs always produce byte-identical output.
func Assemble(params domain.Parameters) string {
	var b strings.Builder
	b.WriteString(params.MaterialType)
	b.WriteString(" texture, seamless and high resolution, top view, ")
	b.WriteString(params.PrimaryColorTone)
	b.WriteString(" and ")
	b.WriteString(params.SecondaryColorTone)
	b.WriteString(", realistic surface detail, natural patterns, intricate texture, ")
	b.WriteString(params.LightingStyle)
	b.WriteString(", ultra detailed, texture background")
	return b.String()
}
