package domain

// Catalogs holds the legal values for each parameter.
type Catalogs struct {
	Materials       []string
	PrimaryColors   []string
	SecondaryColors []string
	LightingStyles  []string
}

// For returns the catalog backing key.
func (c Catalogs) For(key ParameterKey) []string {
	switch key {
	case KeyMaterial:
		return c.Materials
	case KeyPrimary:
		return c.PrimaryColors
	case KeySecondary:
		return c.SecondaryColors
	case KeyLighting:
		return c.LightingStyles
	default:
		return nil
	}
}

// Contains reports whether value is an exact member of the catalog for key.
func (c Catalogs) Contains(key ParameterKey, value string) bool {
	for _, option := range c.For(key) {
		if option == value {
			return true
		}
	}
	return false
}

var (
	materials = []string{
		"Oak Wood",
		"Walnut Wood",
		"Reclaimed Barn Wood",
		"Bamboo",
		"Cork",
		"Marble",
		"Granite",
		"Slate",
		"Sandstone",
		"Limestone",
		"Travertine",
		"Terrazzo",
		"Concrete",
		"Brick",
		"Cobblestone",
		"Rusted Metal",
		"Brushed Steel",
		"Hammered Copper",
		"Oxidized Bronze",
		"Leather",
		"Linen Fabric",
		"Wool Knit",
		"Velvet",
		"Burlap",
		"Handmade Paper",
		"Cracked Clay",
		"Ceramic Tile",
		"Frosted Glass",
		"Tree Bark",
		"Moss",
		"Sand",
		"Ice",
	}

	primaryColorTones = []string{
		"Warm Brown",
		"Deep Charcoal",
		"Ivory White",
		"Slate Gray",
		"Terracotta",
		"Burnt Orange",
		"Ochre Yellow",
		"Olive Green",
		"Forest Green",
		"Sage Green",
		"Teal",
		"Navy Blue",
		"Cobalt Blue",
		"Dusty Rose",
		"Burgundy",
		"Crimson Red",
		"Plum Purple",
		"Sand Beige",
		"Copper",
		"Jet Black",
	}

	secondaryColorTones = []string{
		"Gold Accents",
		"Silver Highlights",
		"Bronze Undertones",
		"Cream Veining",
		"Charcoal Streaks",
		"Rust Speckles",
		"Moss Green Tints",
		"Pale Blue Hues",
		"Soft Pink Blush",
		"Amber Flecks",
		"White Marbling",
		"Black Grain",
		"Verdigris Patina",
		"Honey Tones",
		"Ash Gray Wash",
		"Lavender Shimmer",
	}

	lightingStyles = []string{
		"Soft Diffused Light",
		"Natural Daylight",
		"Golden Hour Glow",
		"Overcast Light",
		"Harsh Midday Sun",
		"Studio Softbox Lighting",
		"Raking Side Light",
		"Backlit Rim Light",
		"Cool Moonlight",
		"Warm Tungsten Light",
		"Dramatic Chiaroscuro",
		"Even Flat Lighting",
	}
)

// DefaultCatalogs returns copies of the built-in catalogs. Callers may keep
// or reorder the returned slices without affecting other callers.
func DefaultCatalogs() Catalogs {
	return Catalogs{
		Materials:       cloneOptions(materials),
		PrimaryColors:   cloneOptions(primaryColorTones),
		SecondaryColors: cloneOptions(secondaryColorTones),
		LightingStyles:  cloneOptions(lightingStyles),
	}
}

func cloneOptions(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}
