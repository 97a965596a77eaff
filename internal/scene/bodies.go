package scene

import (
	"image/color"
	"math"
)

// Orbiting body tuning.
const (
	bodySizeDesktop = 0.04 // base display radius as a fraction of min(w, h)
	bodySizeMobile  = 0.05
	glowAlpha       = 0x40
	imageGlow       = 15 // halo reach past a drawn image
	imageGlowAlpha  = 0.5
	ringWidth       = 1
)

// BodySpec is the fixed description of one orbiting body.
type BodySpec struct {
	Key       string
	Color     color.NRGBA
	OrbitFrac float64 // orbit radius as a fraction of min(w, h)
	SizeScale float64 // display radius as a multiple of the base size
	Speed     float64 // multiplier on the global angle
	Offset    float64 // phase added to the scaled angle, radians
}

// Catalog lists the orbiting bodies, innermost first.
var Catalog = []BodySpec{
	{Key: "earth", Color: Hex("#4A90E2"), OrbitFrac: 0.15, SizeScale: 1.0, Speed: 0.012, Offset: 0},
	{Key: "venus", Color: Hex("#FFA500"), OrbitFrac: 0.25, SizeScale: 0.8, Speed: 0.008, Offset: math.Pi / 3},
	{Key: "jupiter", Color: Hex("#FF6B6B"), OrbitFrac: 0.35, SizeScale: 1.5, Speed: 0.005, Offset: math.Pi},
}

// SpecFor returns the catalogue entry for key.
func SpecFor(key string) (BodySpec, bool) {
	for _, b := range Catalog {
		if b.Key == key {
			return b, true
		}
	}
	return BodySpec{}, false
}

// Body is a catalogue entry laid out for a viewport.
type Body struct {
	BodySpec
	OrbitRadius float64
	Radius      float64
}

// LayoutBodies computes orbit and display radii for every catalogue entry.
func LayoutBodies(v Viewport) []Body {
	m := min(v.Width, v.Height)
	base := m * bodySizeDesktop
	if v.Class() == Mobile {
		base = m * bodySizeMobile
	}
	bodies := make([]Body, len(Catalog))
	for i, spec := range Catalog {
		bodies[i] = Body{
			BodySpec:    spec,
			OrbitRadius: m * spec.OrbitFrac,
			Radius:      base * spec.SizeScale,
		}
	}
	return bodies
}

// Position returns the body centre for a global angle:
// centre + (cos, sin)(angle·speed + offset)·orbit.
func (b Body) Position(v Viewport, angle float64) (float64, float64) {
	cx, cy := v.Center()
	theta := angle*b.Speed + b.Offset
	return cx + math.Cos(theta)*b.OrbitRadius, cy + math.Sin(theta)*b.OrbitRadius
}

// GlowGradient returns the halo painted behind a body centred at (x, y).
func (b Body) GlowGradient(x, y float64) RadialGradient {
	glow := b.Color
	glow.A = glowAlpha
	return Halo(x, y, b.Radius*2, glow)
}

func (s *Scene) drawBodies(c Canvas) {
	cx, cy := s.view.Center()
	for _, b := range s.bodies {
		x, y := b.Position(s.view, s.Angle)

		c.StrokeCircle(cx, cy, b.OrbitRadius, ringWidth, WithAlpha(b.Color, s.palette.RingAlpha))
		c.FillDisc(b.GlowGradient(x, y))

		if img := s.images[b.Key]; img != nil {
			c.Glow(x, y, b.Radius+imageGlow, WithAlpha(b.Color, imageGlowAlpha))
			c.DrawImage(img, x-b.Radius, y-b.Radius, b.Radius*2, b.Radius*2)
		}
	}
}

// Bodies returns the laid-out bodies.
func (s *Scene) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}
