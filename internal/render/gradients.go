package render

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/izu-portfolio/cosmos/internal/raster"
	"github.com/izu-portfolio/cosmos/internal/scene"
)

// textureSize is the side of a baked gradient texture in pixels.
const textureSize = 256

// gradientCache bakes radial gradients into textures with the software
// rasterizer. Textures are keyed by their stops, so one texture serves
// every position and radius of the same ramp.
type gradientCache struct {
	baker   *raster.Canvas
	entries map[string]*cachedImage
}

func newGradientCache() *gradientCache {
	baker := raster.New(raster.Options{})
	baker.SetSize(scene.Viewport{Width: textureSize, Height: textureSize, DPR: 1})
	return &gradientCache{baker: baker, entries: map[string]*cachedImage{}}
}

// get returns the texture for stops. Disc textures are transparent outside
// the circle; the others carry the last stop out to the corners.
func (g *gradientCache) get(stops []scene.ColorStop, disc bool, frame uint64) *ebiten.Image {
	key := gradientKey(stops, disc)
	if e, ok := g.entries[key]; ok {
		e.lastUsed = frame
		return e.img
	}

	const half = textureSize / 2
	ramp := scene.RadialGradient{X: half, Y: half, Radius: half, Stops: stops}
	g.baker.Clear()
	if disc {
		g.baker.FillDisc(ramp)
	} else {
		g.baker.FillRect(0, 0, textureSize, textureSize, ramp)
	}

	e := &cachedImage{img: ebiten.NewImageFromImage(g.baker.Image()), lastUsed: frame}
	g.entries[key] = e
	return e.img
}

func (g *gradientCache) sweep(frame uint64) {
	for k, e := range g.entries {
		if frame-e.lastUsed > cacheFrames {
			e.img.Deallocate()
			delete(g.entries, k)
		}
	}
}

func gradientKey(stops []scene.ColorStop, disc bool) string {
	var b strings.Builder
	if disc {
		b.WriteByte('d')
	}
	for _, s := range stops {
		fmt.Fprintf(&b, "%.3f:%02x%02x%02x%02x;", s.Offset, s.Color.R, s.Color.G, s.Color.B, s.Color.A)
	}
	return b.String()
}
