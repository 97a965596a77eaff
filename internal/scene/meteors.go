package scene

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// Shooting star tuning.
const (
	meteorSpacing   = 800 // one shooting star per this many px of width
	trailCapDesktop = 8
	trailCapMobile  = 5
	meteorExit      = 100 // distance past the bottom/right edge before recycling
	meteorMaxWidth  = 3   // trail width at the newest segment
	meteorGlow      = 15  // halo radius around each trail point
	meteorGlowAlpha = 0.25
)

// ShootingStar is a read-only snapshot of one shooting star entity.
type ShootingStar struct {
	Position
	Meteor
}

// ShootingStarCount returns max(1, floor(w/800)).
func ShootingStarCount(v Viewport) int {
	return max(1, int(math.Floor(v.Width/meteorSpacing)))
}

// TrailCap returns the maximum trail length for a device class.
func TrailCap(class DeviceClass) int {
	if class == Mobile {
		return trailCapMobile
	}
	return trailCapDesktop
}

func (s *Scene) spawnMeteors() {
	n := ShootingStarCount(s.view)
	m := ecs.NewMap2[Position, Meteor](s.world)
	for range n {
		pos := Position{
			X: s.rng.Float64()*s.view.Width - 200,
			Y: s.rng.Float64() * s.view.Height * 0.6,
		}
		met := Meteor{
			VX:      s.rng.Float64()*3 + 4,
			VY:      s.rng.Float64()*1.5 + 0.5,
			Opacity: s.rng.Float64()*0.5 + 0.5,
			Trail:   NewTrail(TrailCap(s.class)),
		}
		m.NewEntity(&pos, &met)
	}
}

// recycleMeteor moves a spent shooting star off-screen to the upper left
// with a fresh trail and opacity.
func (s *Scene) recycleMeteor(pos *Position, m *Meteor) {
	pos.X = s.rng.Float64()*-200 - 100
	pos.Y = s.rng.Float64() * s.view.Height * 0.4
	m.Trail.Reset()
	m.Opacity = s.rng.Float64()*0.5 + 0.5
}

func (s *Scene) drawMeteors(c Canvas) {
	query := ecs.NewFilter2[Position, Meteor](s.world).Query()
	for query.Next() {
		pos, m := query.Get()

		m.Trail.Push(Point{X: pos.X, Y: pos.Y})
		pts := m.Trail.Points
		n := len(pts)
		for i := 1; i < n; i++ {
			t := float64(i) / float64(n)
			a, b := pts[i-1], pts[i]
			c.Glow(b.X, b.Y, meteorGlow, WithAlpha(s.palette.MeteorGlow, m.Opacity*t*meteorGlowAlpha))
			c.StrokeLine(a.X, a.Y, b.X, b.Y, meteorMaxWidth*t, WithAlpha(s.palette.Meteor, m.Opacity*t))
		}

		pos.X += m.VX
		pos.Y += m.VY
		if pos.X > s.view.Width+meteorExit || pos.Y > s.view.Height+meteorExit {
			s.recycleMeteor(pos, m)
		}
	}
}

// ShootingStars returns a snapshot of the shooting stars. Trails are copied.
func (s *Scene) ShootingStars() []ShootingStar {
	if s.world == nil {
		return nil
	}
	var out []ShootingStar
	query := ecs.NewFilter2[Position, Meteor](s.world).Query()
	for query.Next() {
		pos, m := query.Get()
		cp := *m
		cp.Trail = m.Trail.Clone()
		out = append(out, ShootingStar{Position: *pos, Meteor: cp})
	}
	return out
}
