package scene

import (
	"image"
	"image/color"
	"math"
)

// Canvas is a 2D drawing surface addressed in logical pixels.
// Implementations map logical coordinates to physical pixels using the
// viewport DPR passed to SetSize.
type Canvas interface {
	SetSize(v Viewport)
	Clear()
	// FillRect paints the rectangle with g, extending the last stop past g.Radius.
	FillRect(x, y, w, h float64, g RadialGradient)
	// FillDisc paints the disc of radius g.Radius centred on (g.X, g.Y).
	FillDisc(g RadialGradient)
	// Glow paints a soft halo of c centred on (x, y) that fades out at r.
	Glow(x, y, r float64, c color.NRGBA)
	FillCircle(x, y, r float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	StrokeCircle(x, y, r, width float64, c color.NRGBA)
	// DrawImage scales img into the rectangle (x, y, w, h).
	DrawImage(img image.Image, x, y, w, h float64)
}

// ColorStop is one stop of a gradient ramp. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  color.NRGBA
}

// Transparent is fully transparent black, the canvas "transparent" keyword.
var Transparent = color.NRGBA{}

// RadialGradient is a gradient whose inner circle is the centre point and
// whose outer circle has the given radius.
type RadialGradient struct {
	X, Y   float64
	Radius float64
	Stops  []ColorStop
}

// Halo is the gradient of a glow: c at the centre fading to transparent at r.
func Halo(x, y, r float64, c color.NRGBA) RadialGradient {
	return RadialGradient{
		X:      x,
		Y:      y,
		Radius: r,
		Stops: []ColorStop{
			{Offset: 0, Color: c},
			{Offset: 1, Color: Transparent},
		},
	}
}

// At returns the colour at normalized distance t from the centre.
// Interpolation happens on premultiplied components so a fade into
// transparent keeps its hue.
func (g RadialGradient) At(t float64) color.NRGBA {
	n := len(g.Stops)
	if n == 0 {
		return Transparent
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	if t >= g.Stops[n-1].Offset {
		return g.Stops[n-1].Color
	}
	for i := 1; i < n; i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpPremul(a.Color, b.Color, (t-a.Offset)/span)
	}
	return g.Stops[n-1].Color
}

// AtPoint returns the colour at logical point (x, y).
func (g RadialGradient) AtPoint(x, y float64) color.NRGBA {
	if g.Radius <= 0 {
		return g.At(1)
	}
	dx, dy := x-g.X, y-g.Y
	return g.At(math.Hypot(dx, dy) / g.Radius)
}

// Last returns the colour of the final stop.
func (g RadialGradient) Last() color.NRGBA {
	if len(g.Stops) == 0 {
		return Transparent
	}
	return g.Stops[len(g.Stops)-1].Color
}

func lerpPremul(a, b color.NRGBA, t float64) color.NRGBA {
	aa, ba := float64(a.A)/255, float64(b.A)/255
	alpha := aa + (ba-aa)*t
	if alpha <= 0 {
		return Transparent
	}
	ch := func(ca, cb uint8) uint8 {
		pa := float64(ca) * aa
		pb := float64(cb) * ba
		v := (pa + (pb-pa)*t) / alpha
		if v > 255 {
			v = 255
		}
		return uint8(v + 0.5)
	}
	return color.NRGBA{
		R: ch(a.R, b.R),
		G: ch(a.G, b.G),
		B: ch(a.B, b.B),
		A: uint8(alpha*255 + 0.5),
	}
}
