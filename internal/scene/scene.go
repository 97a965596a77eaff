package scene

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"
)

// Global animation increments per frame.
const (
	angleStepDesktop = 0.3
	angleStepMobile  = 0.2
)

// Scene is the complete animation state of the backdrop. It is owned by one
// renderer and advanced only through Frame; nothing in it is global.
type Scene struct {
	Ticks uint64  // frames rendered since the scene was created
	Angle float64 // global orbit angle

	view    Viewport
	class   DeviceClass
	palette Palette
	rng     *rand.Rand

	// world holds stars, shooting stars and nebula clouds. It is replaced
	// wholesale on every Regenerate.
	world  *ecs.World
	bodies []Body
	images map[string]image.Image

	pointerX, pointerY float64
	pointerSet         bool
}

// New creates an empty scene drawing randomness from rng. A nil rng is
// replaced by a randomly seeded PCG source.
func New(rng *rand.Rand) *Scene {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Scene{
		rng:     rng,
		palette: PaletteFor(Dark),
		images:  map[string]image.Image{},
	}
}

// Regenerate discards every particle and body and rebuilds them for the
// viewport and theme. Ticks and Angle are preserved.
func (s *Scene) Regenerate(v Viewport, t Theme) {
	s.view = v
	s.class = v.Class()
	s.palette = PaletteFor(t)

	s.world = ecs.NewWorld(1024)
	s.spawnClouds()
	s.spawnStars()
	s.spawnMeteors()
	s.bodies = LayoutBodies(v)
}

// Ready reports whether Regenerate has run at least once.
func (s *Scene) Ready() bool { return s.world != nil }

// SetPointer records the pointer position in logical pixels. Until the first
// call the pointer is treated as resting at the viewport centre.
func (s *Scene) SetPointer(x, y float64) {
	s.pointerX, s.pointerY = x, y
	s.pointerSet = true
}

// Pointer returns the position parallax is computed from.
func (s *Scene) Pointer() (float64, float64) {
	if !s.pointerSet {
		return s.view.Center()
	}
	return s.pointerX, s.pointerY
}

// SetImages replaces the keyed body images. Missing keys draw no image.
func (s *Scene) SetImages(images map[string]image.Image) {
	s.images = make(map[string]image.Image, len(images))
	for k, img := range images {
		s.images[k] = img
	}
}

// Viewport returns the viewport of the last regeneration.
func (s *Scene) Viewport() Viewport { return s.view }

// Class returns the device class of the last regeneration.
func (s *Scene) Class() DeviceClass { return s.class }

// Palette returns the active palette.
func (s *Scene) Palette() Palette { return s.palette }

// Background returns the full-bleed background gradient for the viewport.
func (s *Scene) Background() RadialGradient {
	cx, cy := s.view.Center()
	bg := s.palette.Background
	return RadialGradient{
		X:      cx,
		Y:      cy,
		Radius: max(s.view.Width, s.view.Height),
		Stops: []ColorStop{
			{Offset: 0, Color: bg[0]},
			{Offset: 0.5, Color: bg[1]},
			{Offset: 1, Color: bg[2]},
		},
	}
}

// Frame paints one complete frame onto c and advances the animation by one
// step. It does nothing before the first Regenerate.
func (s *Scene) Frame(c Canvas) {
	if s.world == nil {
		return
	}
	c.Clear()
	c.FillRect(0, 0, s.view.Width, s.view.Height, s.Background())

	s.drawNebula(c)
	s.drawStars(c)
	s.drawMeteors(c)
	s.drawBodies(c)

	s.Angle += AngleStep(s.class)
	s.Ticks++
}

// AngleStep returns the per-frame increment of the global orbit angle.
func AngleStep(class DeviceClass) float64 {
	if class == Mobile {
		return angleStepMobile
	}
	return angleStepDesktop
}

// wrap folds v into [-margin, size+margin).
func wrap(v, size, margin float64) float64 {
	span := size + 2*margin
	if span <= 0 {
		return -margin
	}
	m := v + margin
	if m >= 0 && m < span {
		return v
	}
	m = mod(m, span)
	return m - margin
}

func mod(v, span float64) float64 {
	m := math.Mod(v, span)
	if m < 0 {
		m += span
	}
	if m >= span {
		m = 0
	}
	return m
}
