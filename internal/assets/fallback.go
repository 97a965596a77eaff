package assets

import (
	"image"
	"image/color"
	"math"

	"github.com/izu-portfolio/cosmos/internal/scene"
)

// Fallback disc geometry. The gradient runs from a zero-radius circle at
// (50, 35) to the disc outline, centred at (50, 50) with radius 50.
const (
	FallbackSize = 100
	focusX       = 50.0
	focusY       = 35.0
	discCenter   = 50.0
	discRadius   = 50.0
)

// Fallback synthesizes the disc drawn in place of a planet image that
// failed to load: tint at the upper focus fading to edge at the rim,
// transparent outside the disc.
func Fallback(tint, edge color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, FallbackSize, FallbackSize))
	ramp := scene.RadialGradient{Stops: []scene.ColorStop{
		{Offset: 0, Color: tint},
		{Offset: 1, Color: edge},
	}}

	dx, dy := discCenter-focusX, discCenter-focusY
	a := dx*dx + dy*dy - discRadius*discRadius

	for y := range FallbackSize {
		for x := range FallbackSize {
			px, py := float64(x)+0.5, float64(y)+0.5

			cover := discRadius - math.Hypot(px-discCenter, py-discCenter) + 0.5
			if cover <= 0 {
				continue
			}
			cover = min(cover, 1)

			// Largest t with |p - c(t)| = r(t) on the cone between the two circles.
			qx, qy := px-focusX, py-focusY
			qd := qx*dx + qy*dy
			qq := qx*qx + qy*qy
			t := (qd - math.Sqrt(qd*qd-a*qq)) / a

			c := ramp.At(max(0, min(1, t)))
			c.A = uint8(float64(c.A)*cover + 0.5)
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
