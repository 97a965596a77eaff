// Package render draws the scene with Ebitengine.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/izu-portfolio/cosmos/internal/scene"
)

// Cached textures unused for this many frames are disposed.
const cacheFrames = 120

var whiteHalo = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

type cachedImage struct {
	img      *ebiten.Image
	lastUsed uint64
}

// Canvas implements scene.Canvas on an offscreen Ebitengine image sized to
// the viewport's physical pixels. Present copies it to the screen.
type Canvas struct {
	surface *ebiten.Image
	pixel   *ebiten.Image // 1x1 white pixel for solid fills
	view    scene.Viewport
	scale   float64
	frame   uint64

	gradients *gradientCache
	images    map[image.Image]*cachedImage
}

var _ scene.Canvas = (*Canvas)(nil)

// NewCanvas creates a canvas; call SetSize before drawing.
func NewCanvas() *Canvas {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	c := &Canvas{
		pixel:     pixel,
		gradients: newGradientCache(),
		images:    map[image.Image]*cachedImage{},
	}
	c.SetSize(scene.Viewport{Width: 1, Height: 1, DPR: 1})
	return c
}

func (c *Canvas) SetSize(v scene.Viewport) {
	c.view = v
	c.scale = v.Scale()
	w, h := v.Physical()
	if c.surface != nil {
		if b := c.surface.Bounds(); b.Dx() == w && b.Dy() == h {
			c.surface.Clear()
			return
		}
		c.surface.Deallocate()
	}
	c.surface = ebiten.NewImage(w, h)
}

// Viewport returns the viewport of the last SetSize.
func (c *Canvas) Viewport() scene.Viewport { return c.view }

func (c *Canvas) Clear() {
	c.surface.Clear()
}

func (c *Canvas) FillRect(x, y, w, h float64, g scene.RadialGradient) {
	s := c.scale
	r := image.Rect(int(x*s), int(y*s), int((x+w)*s+0.5), int((y+h)*s+0.5)).Intersect(c.surface.Bounds())
	if r.Empty() {
		return
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(g.Last())
	c.surface.DrawImage(c.pixel, &op)

	if g.Radius <= 0 {
		return
	}
	dst := c.surface.SubImage(r).(*ebiten.Image)
	c.drawGradient(dst, c.gradients.get(g.Stops, false, c.frame), g, color.White)
}

func (c *Canvas) FillDisc(g scene.RadialGradient) {
	if g.Radius <= 0 {
		return
	}
	c.drawGradient(c.surface, c.gradients.get(g.Stops, true, c.frame), g, color.White)
}

// Glow draws the shared white halo texture tinted by clr.
func (c *Canvas) Glow(x, y, r float64, clr color.NRGBA) {
	if r <= 0 || clr.A == 0 {
		return
	}
	g := scene.Halo(x, y, r, whiteHalo)
	c.drawGradient(c.surface, c.gradients.get(g.Stops, true, c.frame), g, clr)
}

// drawGradient stretches a baked unit texture over the gradient's circle,
// scaled by tint.
func (c *Canvas) drawGradient(dst, tex *ebiten.Image, g scene.RadialGradient, tint color.Color) {
	s := c.scale
	d := g.Radius * 2 * s
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(d/textureSize, d/textureSize)
	op.GeoM.Translate((g.X-g.Radius)*s, (g.Y-g.Radius)*s)
	op.ColorScale.ScaleWithColor(tint)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(tex, &op)
}

func (c *Canvas) FillCircle(x, y, r float64, clr color.NRGBA) {
	s := float32(c.scale)
	vector.DrawFilledCircle(c.surface, float32(x)*s, float32(y)*s, float32(r)*s, clr, true)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	s := float32(c.scale)
	vector.StrokeLine(c.surface, float32(x0)*s, float32(y0)*s, float32(x1)*s, float32(y1)*s, float32(width)*s, clr, true)
}

func (c *Canvas) StrokeCircle(x, y, r, width float64, clr color.NRGBA) {
	s := float32(c.scale)
	vector.StrokeCircle(c.surface, float32(x)*s, float32(y)*s, float32(r)*s, float32(width)*s, clr, true)
}

func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}
	e, ok := c.images[img]
	if !ok {
		e = &cachedImage{img: ebiten.NewImageFromImage(img)}
		c.images[img] = e
	}
	e.lastUsed = c.frame

	s := c.scale
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w*s/float64(b.Dx()), h*s/float64(b.Dy()))
	op.GeoM.Translate(x*s, y*s)
	op.Filter = ebiten.FilterLinear
	c.surface.DrawImage(e.img, &op)
}

// Present copies the finished frame onto screen and retires textures that
// have gone unused.
func (c *Canvas) Present(screen *ebiten.Image) {
	screen.DrawImage(c.surface, nil)

	c.frame++
	if c.frame%cacheFrames != 0 {
		return
	}
	c.gradients.sweep(c.frame)
	for k, e := range c.images {
		if c.frame-e.lastUsed > cacheFrames {
			e.img.Deallocate()
			delete(c.images, k)
		}
	}
}
