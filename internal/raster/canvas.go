// Package raster is a software scene.Canvas on an image.RGBA. It backs the
// headless snapshot tool and the terminal presenter.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/izu-portfolio/cosmos/internal/scene"
)

// Options tunes rasterization for very low resolution surfaces.
type Options struct {
	// MinRadius is the smallest physical radius a filled circle is drawn at.
	MinRadius float64
	// MinWidth is the smallest physical stroke width.
	MinWidth float64
}

// Canvas rasterizes scene drawing calls into an RGBA image sized to the
// viewport's physical pixels.
type Canvas struct {
	opts  Options
	img   *image.RGBA
	view  scene.Viewport
	scale float64

	z     vector.Rasterizer
	mask  image.Alpha
	shade image.NRGBA
}

var _ scene.Canvas = (*Canvas)(nil)

// New returns a 1x1 canvas; call SetSize before drawing.
func New(opts Options) *Canvas {
	c := &Canvas{opts: opts}
	c.SetSize(scene.Viewport{Width: 1, Height: 1, DPR: 1})
	return c
}

// Image returns the backing surface. It is reallocated when SetSize changes
// the physical size.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Viewport returns the viewport of the last SetSize.
func (c *Canvas) Viewport() scene.Viewport { return c.view }

func (c *Canvas) SetSize(v scene.Viewport) {
	c.view = v
	c.scale = v.Scale()
	w, h := v.Physical()
	if c.img != nil && c.img.Rect.Dx() == w && c.img.Rect.Dy() == h {
		c.Clear()
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

func (c *Canvas) FillRect(x, y, w, h float64, g scene.RadialGradient) {
	r := c.rect(x, y, x+w, y+h).Intersect(c.img.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, c.gradient(r, g), r.Min, draw.Over)
}

func (c *Canvas) FillDisc(g scene.RadialGradient) {
	s := c.scale
	cx, cy, rad := g.X*s, g.Y*s, g.Radius*s
	if rad <= 0 {
		return
	}
	r := c.bounds(cx-rad, cy-rad, cx+rad, cy+rad)
	if !r.Overlaps(c.img.Rect) {
		return
	}
	c.rasterize(r, func(ox, oy float64) {
		c.circle(cx-ox, cy-oy, rad, false)
	})
	clip := r.Intersect(c.img.Rect)
	draw.DrawMask(c.img, clip, c.gradient(clip, g), clip.Min, &c.mask, clip.Min.Sub(r.Min), draw.Over)
}

func (c *Canvas) Glow(x, y, rad float64, clr color.NRGBA) {
	if clr.A == 0 {
		return
	}
	c.FillDisc(scene.Halo(x, y, rad, clr))
}

func (c *Canvas) FillCircle(x, y, rad float64, clr color.NRGBA) {
	s := c.scale
	cx, cy := x*s, y*s
	pr := max(rad*s, c.opts.MinRadius)
	if pr <= 0 || clr.A == 0 {
		return
	}
	c.fill(c.bounds(cx-pr, cy-pr, cx+pr, cy+pr), clr, func(ox, oy float64) {
		c.circle(cx-ox, cy-oy, pr, false)
	})
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	s := c.scale
	ax, ay, bx, by := x0*s, y0*s, x1*s, y1*s
	half := max(width*s, c.opts.MinWidth) / 2
	length := math.Hypot(bx-ax, by-ay)
	if length == 0 || half <= 0 || clr.A == 0 {
		return
	}
	nx, ny := -(by-ay)/length*half, (bx-ax)/length*half
	r := c.bounds(min(ax, bx)-half, min(ay, by)-half, max(ax, bx)+half, max(ay, by)+half)
	c.fill(r, clr, func(ox, oy float64) {
		c.moveTo(ax+nx-ox, ay+ny-oy)
		c.lineTo(bx+nx-ox, by+ny-oy)
		c.lineTo(bx-nx-ox, by-ny-oy)
		c.lineTo(ax-nx-ox, ay-ny-oy)
		c.z.ClosePath()
	})
}

func (c *Canvas) StrokeCircle(x, y, rad, width float64, clr color.NRGBA) {
	s := c.scale
	cx, cy, pr := x*s, y*s, rad*s
	half := max(width*s, c.opts.MinWidth) / 2
	outer := pr + half
	if outer <= 0 || clr.A == 0 {
		return
	}
	c.fill(c.bounds(cx-outer, cy-outer, cx+outer, cy+outer), clr, func(ox, oy float64) {
		c.circle(cx-ox, cy-oy, outer, false)
		if inner := pr - half; inner > 0 {
			c.circle(cx-ox, cy-oy, inner, true)
		}
	})
}

func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	r := c.rect(x, y, x+w, y+h)
	if r.Empty() || !r.Overlaps(c.img.Rect) {
		return
	}
	xdraw.ApproxBiLinear.Scale(c.img, r, img, img.Bounds(), xdraw.Over, nil)
}

// rect maps a logical rectangle to the nearest physical pixel rectangle.
func (c *Canvas) rect(x0, y0, x1, y1 float64) image.Rectangle {
	s := c.scale
	return image.Rect(
		int(math.Round(x0*s)), int(math.Round(y0*s)),
		int(math.Round(x1*s)), int(math.Round(y1*s)),
	)
}

// bounds returns the pixel rectangle covering a physical bounding box.
func (c *Canvas) bounds(x0, y0, x1, y1 float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	)
}

// rasterize builds the coverage mask of the path traced by build over r.
// build receives r.Min and must emit coordinates relative to it.
func (c *Canvas) rasterize(r image.Rectangle, build func(ox, oy float64)) {
	w, h := r.Dx(), r.Dy()
	c.z.Reset(w, h)
	build(float64(r.Min.X), float64(r.Min.Y))

	n := w * h
	if cap(c.mask.Pix) < n {
		c.mask.Pix = make([]uint8, n)
	}
	c.mask.Pix = c.mask.Pix[:n]
	clear(c.mask.Pix)
	c.mask.Stride = w
	c.mask.Rect = image.Rect(0, 0, w, h)
	c.z.Draw(&c.mask, c.mask.Rect, image.Opaque, image.Point{})
}

func (c *Canvas) fill(r image.Rectangle, clr color.NRGBA, build func(ox, oy float64)) {
	if r.Empty() || !r.Overlaps(c.img.Rect) {
		return
	}
	c.rasterize(r, build)
	draw.DrawMask(c.img, r, image.NewUniform(clr), image.Point{}, &c.mask, image.Point{}, draw.Over)
}

// gradient shades r with g sampled at pixel centres.
func (c *Canvas) gradient(r image.Rectangle, g scene.RadialGradient) *image.NRGBA {
	n := r.Dx() * r.Dy() * 4
	if cap(c.shade.Pix) < n {
		c.shade.Pix = make([]uint8, n)
	}
	c.shade.Pix = c.shade.Pix[:n]
	c.shade.Stride = r.Dx() * 4
	c.shade.Rect = r

	inv := 1 / c.scale
	for y := r.Min.Y; y < r.Max.Y; y++ {
		ly := (float64(y) + 0.5) * inv
		for x := r.Min.X; x < r.Max.X; x++ {
			c.shade.SetNRGBA(x, y, g.AtPoint((float64(x)+0.5)*inv, ly))
		}
	}
	return &c.shade
}

// bezierArc is the cubic control distance approximating a quarter circle.
const bezierArc = 0.5522847498

// circle appends a closed circle; reverse flips the winding to cut a hole.
func (c *Canvas) circle(cx, cy, r float64, reverse bool) {
	k := r * bezierArc
	c.moveTo(cx+r, cy)
	if !reverse {
		c.cubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		c.cubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		c.cubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		c.cubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	} else {
		c.cubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		c.cubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		c.cubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		c.cubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	}
	c.z.ClosePath()
}

func (c *Canvas) moveTo(x, y float64) { c.z.MoveTo(float32(x), float32(y)) }
func (c *Canvas) lineTo(x, y float64) { c.z.LineTo(float32(x), float32(y)) }

func (c *Canvas) cubeTo(x1, y1, x2, y2, x3, y3 float64) {
	c.z.CubeTo(float32(x1), float32(y1), float32(x2), float32(y2), float32(x3), float32(y3))
}
