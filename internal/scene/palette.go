package scene

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// LoadingText is shown over the placeholder colour until the scene is ready.
const LoadingText = "Loading cosmic view..."

// Palette holds every theme-dependent colour and tuning value.
type Palette struct {
	Theme Theme

	// Background ramp at offsets 0, 0.5 and 1.
	Background [3]color.NRGBA

	// Nebula hues are drawn from [HueMin, HueMin+HueSpan).
	HueMin, HueSpan float64
	// Saturation and lightness of the cloud core and mid stops (0-1).
	NebulaSat, CoreLight, MidLight float64

	Star      color.NRGBA
	Meteor    color.NRGBA
	RingAlpha float64

	// Halo colours behind stars and shooting star trails.
	StarGlow   color.NRGBA
	MeteorGlow color.NRGBA

	// FallbackEdge is the outer colour of synthesized planet discs.
	FallbackEdge color.NRGBA

	Placeholder     color.NRGBA
	PlaceholderText color.NRGBA
}

var (
	darkPalette = Palette{
		Theme:           Dark,
		Background:      [3]color.NRGBA{Hex("#0a0a0a"), Hex("#1a1a2e"), Hex("#16213e")},
		HueMin:          240,
		HueSpan:         60,
		NebulaSat:       0.50,
		CoreLight:       0.25,
		MidLight:        0.10,
		Star:            Hex("#ffffff"),
		Meteor:          Hex("#ffffff"),
		RingAlpha:       0.10,
		StarGlow:        Hex("#ffffff"),
		MeteorGlow:      Hex("#00ffff"),
		FallbackEdge:    Hex("#000000"),
		Placeholder:     Hex("#111827"),
		PlaceholderText: Hex("#ffffff"),
	}
	lightPalette = Palette{
		Theme:           Light,
		Background:      [3]color.NRGBA{Hex("#f8fafc"), Hex("#e0e7ff"), Hex("#c7d2fe")},
		HueMin:          190,
		HueSpan:         60,
		NebulaSat:       0.70,
		CoreLight:       0.82,
		MidLight:        0.90,
		Star:            Hex("#334155"),
		Meteor:          Hex("#0ea5e9"),
		RingAlpha:       0.18,
		StarGlow:        Hex("#ffffff"),
		MeteorGlow:      Hex("#00ffff"),
		FallbackEdge:    Hex("#ffffff"),
		Placeholder:     Hex("#e5e7eb"),
		PlaceholderText: Hex("#111827"),
	}
)

// PaletteFor returns the palette of a theme.
func PaletteFor(t Theme) Palette {
	if t == Light {
		return lightPalette
	}
	return darkPalette
}

// NebulaCore is the centre stop colour of a cloud with the given hue.
func (p Palette) NebulaCore(hue float64) color.NRGBA {
	return HSL(hue, p.NebulaSat, p.CoreLight)
}

// NebulaMid is the half-radius stop colour of a cloud with the given hue.
func (p Palette) NebulaMid(hue float64) color.NRGBA {
	return HSL(hue, p.NebulaSat, p.MidLight)
}

// Hex parses a #rrggbb literal. It panics on malformed input and is meant
// for package-level colour tables.
func Hex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("scene: bad colour %q: %v", s, err))
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// HSL converts hue (degrees), saturation and lightness (0-1) to an opaque colour.
func HSL(h, s, l float64) color.NRGBA {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// WithAlpha returns c with its alpha multiplied by a (0-1).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	a = clamp01(a)
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
