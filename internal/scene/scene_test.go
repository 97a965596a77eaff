package scene_test

import (
	"image"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/izu-portfolio/cosmos/internal/scene"
	"github.com/izu-portfolio/cosmos/internal/scene/scenetest"
)

func seeded(a, b uint64) *rand.Rand {
	return rand.New(rand.NewPCG(a, b))
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestStarCount verifies floor(w·h/D) with the device-class density
func TestStarCount(t *testing.T) {
	tests := []struct {
		name     string
		w, h     float64
		expected int
	}{
		{name: "Desktop 1024x768", w: 1024, h: 768, expected: 98},
		{name: "Desktop 1920x1080", w: 1920, h: 1080, expected: 259},
		{name: "Breakpoint is mobile", w: 768, h: 1024, expected: 65},
		{name: "Phone", w: 375, h: 667, expected: 20},
		{name: "Just above breakpoint", w: 769, h: 1000, expected: 96},
		{name: "Empty", w: 0, h: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scene.StarCount(scene.Viewport{Width: tt.w, Height: tt.h, DPR: 1})
			if got != tt.expected {
				t.Errorf("Expected %d stars, got %d", tt.expected, got)
			}
		})
	}
}

// TestRegenerateDesktopScenario checks the 1024x768 dark desktop set sizes
func TestRegenerateDesktopScenario(t *testing.T) {
	s := scene.New(seeded(1, 2))
	s.Regenerate(scene.Viewport{Width: 1024, Height: 768, DPR: 1}, scene.Dark)

	if s.Class() != scene.Desktop {
		t.Fatalf("Expected desktop class, got %v", s.Class())
	}
	if n := len(s.Stars()); n != 98 {
		t.Errorf("Expected 98 stars, got %d", n)
	}
	if n := len(s.Clouds()); n != 2 {
		t.Errorf("Expected 2 nebula clouds, got %d", n)
	}
	if n := len(s.ShootingStars()); n != 1 {
		t.Errorf("Expected 1 shooting star, got %d", n)
	}
	if n := len(s.Bodies()); n != 3 {
		t.Errorf("Expected 3 bodies, got %d", n)
	}
}

// TestCountsPerViewport covers the cloud and shooting star formulas
func TestCountsPerViewport(t *testing.T) {
	tests := []struct {
		w        float64
		clouds   int
		meteors  int
		trailCap int
	}{
		{w: 320, clouds: 2, meteors: 1, trailCap: 5},
		{w: 1024, clouds: 2, meteors: 1, trailCap: 8},
		{w: 1800, clouds: 3, meteors: 2, trailCap: 8},
		{w: 2560, clouds: 4, meteors: 3, trailCap: 8},
	}
	for _, tt := range tests {
		v := scene.Viewport{Width: tt.w, Height: 600, DPR: 1}
		if got := scene.CloudCount(v); got != tt.clouds {
			t.Errorf("w=%v: expected %d clouds, got %d", tt.w, tt.clouds, got)
		}
		if got := scene.ShootingStarCount(v); got != tt.meteors {
			t.Errorf("w=%v: expected %d shooting stars, got %d", tt.w, tt.meteors, got)
		}
		if got := scene.TrailCap(v.Class()); got != tt.trailCap {
			t.Errorf("w=%v: expected trail cap %d, got %d", tt.w, tt.trailCap, got)
		}
	}
}

// TestStarsStayInsideWrapBounds runs many frames with the pointer pinned to
// the corners so parallax pushes stars in every direction
func TestStarsStayInsideWrapBounds(t *testing.T) {
	viewports := []scene.Viewport{
		{Width: 1024, Height: 768, DPR: 1},
		{Width: 360, Height: 640, DPR: 3},
	}
	for _, v := range viewports {
		s := scene.New(seeded(7, 7))
		s.Regenerate(v, scene.Dark)
		rec := &scenetest.Recorder{}

		corners := [][2]float64{{0, 0}, {v.Width, v.Height}, {0, v.Height}, {v.Width, 0}}
		for frame := 0; frame < 800; frame++ {
			c := corners[(frame/200)%len(corners)]
			s.SetPointer(c[0], c[1])
			s.Frame(rec)
			rec.Reset()

			for _, st := range s.Stars() {
				if st.X < -10 || st.X >= v.Width+10 {
					t.Fatalf("frame %d: star x=%v outside [-10, %v)", frame, st.X, v.Width+10)
				}
				if st.Y < -10 || st.Y >= v.Height+10 {
					t.Fatalf("frame %d: star y=%v outside [-10, %v)", frame, st.Y, v.Height+10)
				}
			}
		}
	}
}

// TestTrailNeverExceedsCap checks the bounded trail on both device classes
func TestTrailNeverExceedsCap(t *testing.T) {
	tests := []struct {
		name string
		v    scene.Viewport
		cap  int
	}{
		{name: "Desktop", v: scene.Viewport{Width: 1600, Height: 900, DPR: 1}, cap: 8},
		{name: "Mobile", v: scene.Viewport{Width: 400, Height: 800, DPR: 2}, cap: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.New(seeded(3, 4))
			s.Regenerate(tt.v, scene.Dark)
			rec := &scenetest.Recorder{}
			reached := false
			for frame := 0; frame < 600; frame++ {
				s.Frame(rec)
				rec.Reset()
				for _, m := range s.ShootingStars() {
					if m.Trail.Len() > tt.cap {
						t.Fatalf("frame %d: trail length %d exceeds %d", frame, m.Trail.Len(), tt.cap)
					}
					if m.Trail.Len() == tt.cap {
						reached = true
					}
				}
			}
			if !reached {
				t.Errorf("Expected some trail to reach cap %d", tt.cap)
			}
		})
	}
}

// TestShootingStarRecycle waits for a shooting star to leave the viewport and
// checks where it re-enters
func TestShootingStarRecycle(t *testing.T) {
	v := scene.Viewport{Width: 240, Height: 200, DPR: 1}
	s := scene.New(seeded(11, 12))
	s.Regenerate(v, scene.Dark)
	rec := &scenetest.Recorder{}

	prev := s.ShootingStars()[0]
	recycled := 0
	for frame := 0; frame < 1000; frame++ {
		s.Frame(rec)
		rec.Reset()
		cur := s.ShootingStars()[0]
		if cur.X < prev.X {
			recycled++
			if cur.X < -300 || cur.X >= -100 {
				t.Errorf("Recycled x=%v outside [-300, -100)", cur.X)
			}
			if cur.Y < 0 || cur.Y >= v.Height*0.4 {
				t.Errorf("Recycled y=%v outside [0, %v)", cur.Y, v.Height*0.4)
			}
			if cur.Trail.Len() != 0 {
				t.Errorf("Expected cleared trail after recycle, got %d points", cur.Trail.Len())
			}
			if cur.Opacity < 0.5 || cur.Opacity >= 1 {
				t.Errorf("Recycled opacity %v outside [0.5, 1)", cur.Opacity)
			}
			if !(prev.X+prev.VX > v.Width+100 || prev.Y+prev.VY > v.Height+100) {
				t.Errorf("Recycled while still in bounds: prev=(%v,%v)", prev.X, prev.Y)
			}
		}
		prev = cur
	}
	if recycled == 0 {
		t.Fatal("Expected at least one recycle in 1000 frames")
	}
}

// TestSameSeedSameSets verifies regeneration is deterministic for a seed
func TestSameSeedSameSets(t *testing.T) {
	v := scene.Viewport{Width: 1280, Height: 720, DPR: 1}
	a := scene.New(seeded(42, 42))
	b := scene.New(seeded(42, 42))
	a.Regenerate(v, scene.Dark)
	b.Regenerate(v, scene.Dark)

	if !reflect.DeepEqual(a.Stars(), b.Stars()) {
		t.Error("Expected identical stars for identical seeds")
	}
	if !reflect.DeepEqual(a.Clouds(), b.Clouds()) {
		t.Error("Expected identical clouds for identical seeds")
	}
	if len(a.ShootingStars()) != len(b.ShootingStars()) {
		t.Error("Expected identical shooting star counts for identical seeds")
	}

	c := scene.New(seeded(1, 99))
	c.Regenerate(v, scene.Dark)
	if len(c.Stars()) != len(a.Stars()) {
		t.Errorf("Expected cardinality independent of seed, got %d vs %d", len(c.Stars()), len(a.Stars()))
	}
}

// TestRegenerateReplacesEverything resizes and checks nothing stale survives
func TestRegenerateReplacesEverything(t *testing.T) {
	s := scene.New(seeded(5, 6))
	s.Regenerate(scene.Viewport{Width: 1920, Height: 1080, DPR: 1}, scene.Dark)
	rec := &scenetest.Recorder{}
	for range 10 {
		s.Frame(rec)
	}
	angle, ticks := s.Angle, s.Ticks

	small := scene.Viewport{Width: 400, Height: 300, DPR: 2}
	s.Regenerate(small, scene.Dark)

	if n := len(s.Stars()); n != scene.StarCount(small) {
		t.Errorf("Expected %d stars after resize, got %d", scene.StarCount(small), n)
	}
	for _, st := range s.Stars() {
		if st.X < 0 || st.X >= small.Width || st.Y < 0 || st.Y >= small.Height {
			t.Fatalf("Star (%v,%v) not generated inside the new viewport", st.X, st.Y)
		}
	}
	for _, m := range s.ShootingStars() {
		if m.Trail.Cap() != 5 || m.Trail.Len() != 0 {
			t.Errorf("Expected fresh mobile trail, got len=%d cap=%d", m.Trail.Len(), m.Trail.Cap())
		}
	}
	if s.Angle != angle || s.Ticks != ticks {
		t.Error("Expected animation clock to survive regeneration")
	}
}

// TestThemeChangeToLight checks background stops and cloud regeneration
func TestThemeChangeToLight(t *testing.T) {
	v := scene.Viewport{Width: 1024, Height: 768, DPR: 1}
	s := scene.New(seeded(9, 9))
	s.Regenerate(v, scene.Dark)
	rec := &scenetest.Recorder{}
	s.Frame(rec)
	before := s.Clouds()

	s.Regenerate(v, scene.Light)
	rec.Reset()
	s.Frame(rec)

	light := scene.PaletteFor(scene.Light)
	rects := rec.Filter(scenetest.OpFillRect)
	if len(rects) != 1 {
		t.Fatalf("Expected 1 background fill, got %d", len(rects))
	}
	stops := rects[0].Gradient.Stops
	if len(stops) != 3 {
		t.Fatalf("Expected 3 background stops, got %d", len(stops))
	}
	for i, st := range stops {
		if st.Color != light.Background[i] {
			t.Errorf("Stop %d: expected %v, got %v", i, light.Background[i], st.Color)
		}
	}

	after := s.Clouds()
	if reflect.DeepEqual(before, after) {
		t.Error("Expected clouds to be regenerated on theme change")
	}
	for _, c := range after {
		if c.Hue < light.HueMin || c.Hue >= light.HueMin+light.HueSpan {
			t.Errorf("Cloud hue %v outside light band", c.Hue)
		}
	}

	discs := rec.Filter(scenetest.OpFillDisc)
	for i, c := range after {
		want := light.NebulaCore(c.Hue)
		if got := discs[i].Gradient.Stops[0].Color; got != want {
			t.Errorf("Cloud %d core: expected %v, got %v", i, want, got)
		}
	}
}

// TestFrameDrawsBodiesOnOrbit checks the orbit equation for every body
func TestFrameDrawsBodiesOnOrbit(t *testing.T) {
	v := scene.Viewport{Width: 1024, Height: 768, DPR: 1}
	s := scene.New(seeded(1, 2))
	s.Regenerate(v, scene.Dark)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	s.SetImages(map[string]image.Image{"earth": img, "venus": img, "jupiter": img})

	rec := &scenetest.Recorder{}
	for frame := 0; frame < 5; frame++ {
		angle := s.Angle
		rec.Reset()
		s.Frame(rec)

		draws := rec.Filter(scenetest.OpDrawImage)
		if len(draws) != 3 {
			t.Fatalf("frame %d: expected 3 body images, got %d", frame, len(draws))
		}
		for i, b := range s.Bodies() {
			theta := angle*b.Speed + b.Offset
			wantX := 512 + math.Cos(theta)*b.OrbitRadius
			wantY := 384 + math.Sin(theta)*b.OrbitRadius
			d := draws[i]
			if !almostEqual(d.X+b.Radius, wantX) || !almostEqual(d.Y+b.Radius, wantY) {
				t.Errorf("frame %d %s: centre (%v,%v), want (%v,%v)", frame, b.Key, d.X+b.Radius, d.Y+b.Radius, wantX, wantY)
			}
			if !almostEqual(d.W, 2*b.Radius) || !almostEqual(d.H, 2*b.Radius) {
				t.Errorf("frame %d %s: size %vx%v, want %v", frame, b.Key, d.W, d.H, 2*b.Radius)
			}
		}
	}
	if s.Ticks != 5 {
		t.Errorf("Expected 5 ticks, got %d", s.Ticks)
	}
	if !almostEqual(s.Angle, 1.5) {
		t.Errorf("Expected angle 1.5, got %v", s.Angle)
	}
}

// TestFrameLayerOrder checks the paint order and per-layer call counts
func TestFrameLayerOrder(t *testing.T) {
	v := scene.Viewport{Width: 1024, Height: 768, DPR: 1}
	s := scene.New(seeded(1, 2))
	s.Regenerate(v, scene.Dark)
	rec := &scenetest.Recorder{}
	s.Frame(rec)

	if rec.Ops[0].Kind != scenetest.OpClear {
		t.Fatalf("Expected clear first, got %s", rec.Ops[0].Kind)
	}
	bg := rec.Ops[1]
	if bg.Kind != scenetest.OpFillRect {
		t.Fatalf("Expected background second, got %s", bg.Kind)
	}
	if bg.Gradient.Radius != 1024 || bg.Gradient.X != 512 || bg.Gradient.Y != 384 {
		t.Errorf("Unexpected background geometry %+v", bg.Gradient)
	}

	// 2 clouds then 3 glows
	if n := rec.Count(scenetest.OpFillDisc); n != 5 {
		t.Errorf("Expected 5 gradient discs, got %d", n)
	}
	if n := rec.Count(scenetest.OpStrokeCircle); n != 3 {
		t.Errorf("Expected 3 orbit rings, got %d", n)
	}
	if n := rec.Count(scenetest.OpFillCircle); n != 98 {
		t.Errorf("Expected 98 star bodies, got %d", n)
	}
	// one halo per star; no trail segments or images yet
	if n := rec.Count(scenetest.OpGlow); n != 98 {
		t.Errorf("Expected 98 star halos, got %d", n)
	}
	bright := 0
	for _, st := range s.Stars() {
		if st.Kind == scene.StarBright {
			bright++
		}
	}
	// each bright star draws two flare arms; the first frame has no trail segments
	if n := rec.Count(scenetest.OpStrokeLine); n != 2*bright {
		t.Errorf("Expected %d flare lines, got %d", 2*bright, n)
	}
	if n := rec.Count(scenetest.OpDrawImage); n != 0 {
		t.Errorf("Expected no images without loaded bodies, got %d", n)
	}
}

// TestTrailSegmentsRamp checks alpha and width increase toward the head
func TestTrailSegmentsRamp(t *testing.T) {
	v := scene.Viewport{Width: 2000, Height: 1000, DPR: 1}
	s := scene.New(seeded(2, 3))
	s.Regenerate(v, scene.Dark)
	rec := &scenetest.Recorder{}
	for range 3 {
		rec.Reset()
		s.Frame(rec)
	}

	// trail segments are the stroked lines painted after the last star body
	last := 0
	for i, op := range rec.Ops {
		if op.Kind == scenetest.OpFillCircle {
			last = i
		}
	}
	var segs []scenetest.Op
	for _, op := range rec.Ops[last+1:] {
		if op.Kind == scenetest.OpStrokeLine {
			segs = append(segs, op)
		}
	}
	// 2 shooting stars with 3 trail points each: 2 segments apiece
	if len(segs) != 4 {
		t.Fatalf("Expected 4 trail segments, got %d", len(segs))
	}
	for i := 0; i < len(segs); i += 2 {
		a, b := segs[i], segs[i+1]
		if !almostEqual(a.Width, 1) {
			t.Errorf("Expected oldest segment width 1, got %v", a.Width)
		}
		if !almostEqual(b.Width, 2) {
			t.Errorf("Expected newest segment width 2, got %v", b.Width)
		}
		if a.Color.A >= b.Color.A {
			t.Errorf("Expected alpha to grow toward head: %d then %d", a.Color.A, b.Color.A)
		}
	}
}

// TestGlowHalos checks that stars, trail points and body images each get a
// halo painted just before them
func TestGlowHalos(t *testing.T) {
	v := scene.Viewport{Width: 2000, Height: 1000, DPR: 1}
	s := scene.New(seeded(2, 3))
	s.Regenerate(v, scene.Dark)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	s.SetImages(map[string]image.Image{"earth": img, "venus": img, "jupiter": img})
	p := s.Palette()
	rec := &scenetest.Recorder{}
	for range 3 {
		rec.Reset()
		s.Frame(rec)
	}

	stars := len(s.Stars())
	if n := rec.Count(scenetest.OpGlow); n != stars+4+3 {
		t.Fatalf("Expected %d halos, got %d", stars+4+3, n)
	}

	ops := rec.Ops
	last := 0
	for i, op := range ops {
		if op.Kind != scenetest.OpFillCircle {
			continue
		}
		last = i
		j := i - 1
		if ops[j].Kind == scenetest.OpStrokeLine {
			j = i - 3
		}
		g := ops[j]
		if g.Kind != scenetest.OpGlow || g.X != op.X || g.Y != op.Y {
			t.Fatalf("Expected halo before star at (%v,%v), got %+v", op.X, op.Y, g)
		}
		reach := scene.StarGlowReach(scene.StarNormal)
		if j == i-3 {
			reach = scene.StarGlowReach(scene.StarBright)
		}
		if !almostEqual(g.R, op.R+reach) {
			t.Errorf("Expected halo radius %v, got %v", op.R+reach, g.R)
		}
		if g.Color.R != p.StarGlow.R || g.Color.G != p.StarGlow.G || g.Color.B != p.StarGlow.B {
			t.Errorf("Expected star halo colour %v, got %v", p.StarGlow, g.Color)
		}
		if d := int(op.Color.A)/2 - int(g.Color.A); d < -1 || d > 1 {
			t.Errorf("Expected halo at half the star alpha %d, got %d", op.Color.A, g.Color.A)
		}
	}

	segs := 0
	for i := last + 1; i < len(ops); i++ {
		if ops[i].Kind != scenetest.OpStrokeLine {
			continue
		}
		segs++
		g := ops[i-1]
		if g.Kind != scenetest.OpGlow || g.X != ops[i].X1 || g.Y != ops[i].Y1 {
			t.Fatalf("Expected halo at the segment head, got %+v", g)
		}
		if !almostEqual(g.R, 15) {
			t.Errorf("Expected trail halo radius 15, got %v", g.R)
		}
		if g.Color.R != p.MeteorGlow.R || g.Color.G != p.MeteorGlow.G || g.Color.B != p.MeteorGlow.B {
			t.Errorf("Expected trail halo colour %v, got %v", p.MeteorGlow, g.Color)
		}
	}
	if segs != 4 {
		t.Errorf("Expected 4 trail segments, got %d", segs)
	}

	bodies := s.Bodies()
	k := 0
	for i, op := range ops {
		if op.Kind != scenetest.OpDrawImage {
			continue
		}
		b := bodies[k]
		k++
		g := ops[i-1]
		if g.Kind != scenetest.OpGlow {
			t.Fatalf("Expected halo before %s, got %s", b.Key, g.Kind)
		}
		if !almostEqual(g.X, op.X+b.Radius) || !almostEqual(g.Y, op.Y+b.Radius) {
			t.Errorf("%s: halo centre (%v,%v) off the body", b.Key, g.X, g.Y)
		}
		if !almostEqual(g.R, b.Radius+15) {
			t.Errorf("%s: expected halo radius %v, got %v", b.Key, b.Radius+15, g.R)
		}
		if g.Color.R != b.Color.R || g.Color.G != b.Color.G || g.Color.B != b.Color.B {
			t.Errorf("%s: expected halo in body colour %v, got %v", b.Key, b.Color, g.Color)
		}
	}
	if k != 3 {
		t.Errorf("Expected 3 body images, got %d", k)
	}
}

// TestFrameBeforeRegenerate verifies an empty scene draws nothing
func TestFrameBeforeRegenerate(t *testing.T) {
	s := scene.New(nil)
	rec := &scenetest.Recorder{}
	s.Frame(rec)
	if len(rec.Ops) != 0 {
		t.Errorf("Expected no draw calls, got %d", len(rec.Ops))
	}
	if s.Ready() {
		t.Error("Expected scene not ready before regeneration")
	}
}

// TestMobileTuning checks the mobile angle step and parallax reduction
func TestMobileTuning(t *testing.T) {
	s := scene.New(seeded(1, 1))
	s.Regenerate(scene.Viewport{Width: 390, Height: 844, DPR: 3}, scene.Dark)
	s.Frame(&scenetest.Recorder{})
	if !almostEqual(s.Angle, 0.2) {
		t.Errorf("Expected mobile angle step 0.2, got %v", s.Angle)
	}

	mb, mn := scene.ParallaxCoefficients(scene.Mobile)
	db, dn := scene.ParallaxCoefficients(scene.Desktop)
	if mb >= db || mn >= dn {
		t.Error("Expected reduced parallax on mobile")
	}
	if db <= dn || mb <= mn {
		t.Error("Expected bright stars to parallax more than normal stars")
	}
}

// TestTwinkleAlpha checks the twinkle curve extremes
func TestTwinkleAlpha(t *testing.T) {
	tests := []struct {
		name       string
		brightness float64
		phase      float64
		expected   float64
	}{
		{name: "Trough", brightness: 1, phase: -math.Pi / 2, expected: 0.6},
		{name: "Peak", brightness: 1, phase: math.Pi / 2, expected: 1.0},
		{name: "Midpoint", brightness: 0.5, phase: 0, expected: 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scene.TwinkleAlpha(tt.brightness, tt.phase)
			if !almostEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestLayoutBodies checks orbit and display radii from min(w, h)
func TestLayoutBodies(t *testing.T) {
	bodies := scene.LayoutBodies(scene.Viewport{Width: 1024, Height: 768, DPR: 1})
	want := []struct {
		key           string
		orbit, radius float64
	}{
		{"earth", 115.2, 30.72},
		{"venus", 192, 24.576},
		{"jupiter", 268.8, 46.08},
	}
	for i, w := range want {
		b := bodies[i]
		if b.Key != w.key || !almostEqual(b.OrbitRadius, w.orbit) || !almostEqual(b.Radius, w.radius) {
			t.Errorf("Body %d: got %s orbit=%v radius=%v, want %s orbit=%v radius=%v",
				i, b.Key, b.OrbitRadius, b.Radius, w.key, w.orbit, w.radius)
		}
	}
}
