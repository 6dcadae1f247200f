package prompt

import (
	"testing"

	"github.com/doeshing/texturepro/internal/domain"
)

func TestAssemble(t *testing.T) {
	params := domain.Parameters{
		MaterialType:       "Oak Wood",
		PrimaryColorTone:   "Warm Brown",
		SecondaryColorTone: "Gold Accents",
		LightingStyle:      "Soft Diffused Light",
	}
	want := "Oak Wood texture, seamless and high resolution, top view, Warm Brown and Gold Accents, " +
		"realistic surface detail, natural patterns, intricate texture, Soft Diffused Light, " +
		"ultra detailed, texture background"

	if got := Assemble(params); got != want {
		t.Fatalf("Assemble() =\n%q\nwant\n%q", got, want)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	catalogs := domain.DefaultCatalogs()
	for i, material := range catalogs.Materials {
		params := domain.Parameters{
			MaterialType:       material,
			PrimaryColorTone:   catalogs.PrimaryColors[i%len(catalogs.PrimaryColors)],
			SecondaryColorTone: catalogs.SecondaryColors[i%len(catalogs.SecondaryColors)],
			LightingStyle:      catalogs.LightingStyles[i%len(catalogs.LightingStyles)],
		}
		copied := params
		if Assemble(params) != Assemble(copied) {
			t.Fatalf("output differs for equal inputs: %+v", params)
		}
	}
}
