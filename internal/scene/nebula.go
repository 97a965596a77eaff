package scene

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// Nebula tuning.
const (
	cloudSpacing = 600 // one cloud per this many px of width
	minClouds    = 2
	cloudDriftX  = 0.001  // sin frequency of horizontal drift
	cloudDriftY  = 0.0008 // cos frequency of vertical drift
	cloudMidStop = 0.5
)

// NebulaCloud is a read-only snapshot of one nebula entity.
type NebulaCloud struct {
	Position
	Cloud
}

// CloudCount returns max(2, floor(w/600)).
func CloudCount(v Viewport) int {
	return max(minClouds, int(math.Floor(v.Width/cloudSpacing)))
}

func (s *Scene) spawnClouds() {
	n := CloudCount(s.view)
	m := ecs.NewMap2[Position, Cloud](s.world)
	for range n {
		pos := Position{
			X: s.rng.Float64() * s.view.Width,
			Y: s.rng.Float64() * s.view.Height,
		}
		cl := Cloud{
			Radius: s.rng.Float64()*200 + 100,
			Hue:    s.palette.HueMin + s.rng.Float64()*s.palette.HueSpan,
			Drift:  s.rng.Float64()*0.2 + 0.1,
		}
		m.NewEntity(&pos, &cl)
	}
}

// CloudGradient returns the disc gradient of a cloud under palette p.
func CloudGradient(p Palette, pos Position, cl Cloud) RadialGradient {
	return RadialGradient{
		X:      pos.X,
		Y:      pos.Y,
		Radius: cl.Radius,
		Stops: []ColorStop{
			{Offset: 0, Color: p.NebulaCore(cl.Hue)},
			{Offset: cloudMidStop, Color: p.NebulaMid(cl.Hue)},
			{Offset: 1, Color: Transparent},
		},
	}
}

// drawNebula paints every cloud, then drifts it and wraps it horizontally.
func (s *Scene) drawNebula(c Canvas) {
	t := float64(s.Ticks)
	dx := math.Sin(t * cloudDriftX)
	dy := math.Cos(t * cloudDriftY)

	query := ecs.NewFilter2[Position, Cloud](s.world).Query()
	for query.Next() {
		pos, cl := query.Get()
		c.FillDisc(CloudGradient(s.palette, *pos, *cl))

		pos.X += dx * cl.Drift
		pos.Y += dy * cl.Drift * 0.5

		if pos.X > s.view.Width+cl.Radius {
			pos.X = -cl.Radius
		} else if pos.X < -cl.Radius {
			pos.X = s.view.Width + cl.Radius
		}
	}
}

// Clouds returns a snapshot of the nebula clouds.
func (s *Scene) Clouds() []NebulaCloud {
	if s.world == nil {
		return nil
	}
	var out []NebulaCloud
	query := ecs.NewFilter2[Position, Cloud](s.world).Query()
	for query.Next() {
		pos, cl := query.Get()
		out = append(out, NebulaCloud{Position: *pos, Cloud: *cl})
	}
	return out
}
