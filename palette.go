package flowfield

// magnitudeScale is the reference flow magnitude that maps to the top of
// the palette. Magnitudes are normalized against it and clamped to [0, 1].
const magnitudeScale = 2.0

// DefaultScheme is the palette used when a configured scheme name is not
// recognized.
const DefaultScheme = "viridis"

// Palette is a discrete color ramp addressed by a normalized value in
// [0, 1].
type Palette struct {
	name   string
	colors []Color
}

// Discrete stops for each named scheme, low magnitude first. Matplotlib
// ramps are sampled at nine evenly spaced points; ocean and rainbow follow
// the conventional stops.
var palettes = map[string][]Color{
	"viridis": {
		hexColor(0x440154), hexColor(0x472d7b), hexColor(0x3b528b),
		hexColor(0x2c728e), hexColor(0x21918c), hexColor(0x28ae80),
		hexColor(0x5ec962), hexColor(0xaddc30), hexColor(0xfde725),
	},
	"turbo": {
		hexColor(0x30123b), hexColor(0x4662d7), hexColor(0x36a2f9),
		hexColor(0x1ae4b6), hexColor(0x72fe5e), hexColor(0xc7ef34),
		hexColor(0xfabd23), hexColor(0xf66b19), hexColor(0xca2a04),
	},
	"plasma": {
		hexColor(0x0d0887), hexColor(0x4c02a1), hexColor(0x7e03a8),
		hexColor(0xaa2395), hexColor(0xcc4778), hexColor(0xe66c5c),
		hexColor(0xf89441), hexColor(0xfdc527), hexColor(0xf0f921),
	},
	"inferno": {
		hexColor(0x000004), hexColor(0x1f0c48), hexColor(0x550f6d),
		hexColor(0x88226a), hexColor(0xba3655), hexColor(0xe35933),
		hexColor(0xf98c0a), hexColor(0xf8c932), hexColor(0xfcffa4),
	},
	"cividis": {
		hexColor(0x00224e), hexColor(0x123570), hexColor(0x3b496c),
		hexColor(0x575d6d), hexColor(0x707173), hexColor(0x8a8678),
		hexColor(0xa59c74), hexColor(0xc3b369), hexColor(0xe8cb5b),
	},
	"ocean": {
		hexColor(0x000033), hexColor(0x002a4d), hexColor(0x005566),
		hexColor(0x008066), hexColor(0x00aa5c), hexColor(0x33cc70),
		hexColor(0x80e0a0), hexColor(0xc0f0d0), hexColor(0xffffff),
	},
	"rainbow": {
		hexColor(0x8000ff), hexColor(0x3a39fb), hexColor(0x0a78ee),
		hexColor(0x2fb6f2), hexColor(0x80ffb4), hexColor(0xc5eb75),
		hexColor(0xffc235), hexColor(0xff6e1b), hexColor(0xff0000),
	},
}

// hexColor converts a 0xRRGGBB literal to a Color with full alpha.
func hexColor(rgb uint32) Color {
	return Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// PaletteByName returns the named palette, or the default scheme when the
// name is not recognized. The fallback is silent; an unknown scheme is a
// cosmetic issue, not an error.
func PaletteByName(name string) Palette {
	colors, ok := palettes[name]
	if !ok {
		name = DefaultScheme
		colors = palettes[name]
	}
	return Palette{name: name, colors: colors}
}

// SchemeNames returns the recognized palette names.
func SchemeNames() []string {
	return []string{"viridis", "turbo", "plasma", "inferno", "cividis", "ocean", "rainbow"}
}

// Name returns the palette's scheme name.
func (p Palette) Name() string {
	return p.name
}

// At returns the discrete palette color for a normalized value. Values
// outside [0, 1] are clamped.
func (p Palette) At(t float64) Color {
	if len(p.colors) == 0 {
		return ColorWhite
	}
	t = clamp01(t)
	i := int(t * float64(len(p.colors)))
	if i >= len(p.colors) {
		i = len(p.colors) - 1
	}
	return p.colors[i]
}

// MagnitudeColor maps a flow magnitude to a palette color, normalizing
// against magnitudeScale.
func (p Palette) MagnitudeColor(magnitude float64) Color {
	return p.At(magnitude / magnitudeScale)
}
