package scene

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// Starfield tuning.
const (
	starDensityDesktop = 8000  // logical px² per star
	starDensityMobile  = 12000 // sparser field on small screens
	starMargin         = 10    // wrap margin beyond each edge
	twinkleStep        = 0.05  // phase advance per frame
	brightThreshold    = 0.95  // roll above this makes a bright star
	starGlowNormal     = 3     // halo reach past the disc
	starGlowBright     = 8
	starGlowAlpha      = 0.5 // halo alpha relative to the star

	parallaxBrightDesktop = 0.001
	parallaxNormalDesktop = 0.0003
	parallaxBrightMobile  = 0.0005
	parallaxNormalMobile  = 0.00015
)

// Star is a read-only snapshot of one starfield entity.
type Star struct {
	Position
	Twinkler
}

// StarCount returns floor(w·h / density) for the viewport's device class.
func StarCount(v Viewport) int {
	if v.Width <= 0 || v.Height <= 0 {
		return 0
	}
	density := float64(starDensityDesktop)
	if v.Class() == Mobile {
		density = starDensityMobile
	}
	return int(math.Floor(v.Width * v.Height / density))
}

// ParallaxCoefficients returns the (bright, normal) parallax factors.
func ParallaxCoefficients(class DeviceClass) (bright, normal float64) {
	if class == Mobile {
		return parallaxBrightMobile, parallaxNormalMobile
	}
	return parallaxBrightDesktop, parallaxNormalDesktop
}

// TwinkleAlpha is brightness·(0.6 + 0.4·(sin(phase)+1)/2).
func TwinkleAlpha(brightness, phase float64) float64 {
	intensity := (math.Sin(phase) + 1) * 0.5
	return brightness * (0.6 + intensity*0.4)
}

// StarGlowReach returns how far a star's halo extends past its disc.
func StarGlowReach(kind StarKind) float64 {
	if kind == StarBright {
		return starGlowBright
	}
	return starGlowNormal
}

func (s *Scene) spawnStars() {
	n := StarCount(s.view)
	m := ecs.NewMap2[Position, Twinkler](s.world)
	for range n {
		pos := Position{
			X: s.rng.Float64() * s.view.Width,
			Y: s.rng.Float64() * s.view.Height,
		}
		tw := Twinkler{
			Radius:     s.rng.Float64()*2 + 0.5,
			Speed:      s.rng.Float64()*0.3 + 0.1,
			Phase:      s.rng.Float64() * math.Pi * 2,
			Brightness: s.rng.Float64()*0.5 + 0.5,
		}
		if s.rng.Float64() > brightThreshold {
			tw.Kind = StarBright
		}
		m.NewEntity(&pos, &tw)
	}
}

// drawStars moves every star (parallax, drift, wrap), advances its twinkle
// and paints it.
func (s *Scene) drawStars(c Canvas) {
	kBright, kNormal := ParallaxCoefficients(s.class)
	cx, cy := s.view.Center()
	px, py := s.Pointer()
	offX, offY := px-cx, py-cy

	query := ecs.NewFilter2[Position, Twinkler](s.world).Query()
	for query.Next() {
		pos, st := query.Get()

		k := kNormal
		if st.Kind == StarBright {
			k = kBright
		}
		pos.X += offX * k
		pos.Y += offY*k + st.Speed
		pos.X = wrap(pos.X, s.view.Width, starMargin)
		pos.Y = wrap(pos.Y, s.view.Height, starMargin)

		st.Phase += twinkleStep
		alpha := TwinkleAlpha(st.Brightness, st.Phase)
		clr := WithAlpha(s.palette.Star, alpha)

		c.Glow(pos.X, pos.Y, st.Radius+StarGlowReach(st.Kind), WithAlpha(s.palette.StarGlow, alpha*starGlowAlpha))
		if st.Kind == StarBright {
			arm := st.Radius * 2
			c.StrokeLine(pos.X-arm, pos.Y, pos.X+arm, pos.Y, 1, clr)
			c.StrokeLine(pos.X, pos.Y-arm, pos.X, pos.Y+arm, 1, clr)
		}
		c.FillCircle(pos.X, pos.Y, st.Radius, clr)
	}
}

// Stars returns a snapshot of the starfield in storage order.
func (s *Scene) Stars() []Star {
	if s.world == nil {
		return nil
	}
	var out []Star
	query := ecs.NewFilter2[Position, Twinkler](s.world).Query()
	for query.Next() {
		pos, st := query.Get()
		out = append(out, Star{Position: *pos, Twinkler: *st})
	}
	return out
}
