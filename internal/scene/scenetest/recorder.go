// Package scenetest provides a recording scene.Canvas for tests.
package scenetest

import (
	"image"
	"image/color"

	"github.com/izu-portfolio/cosmos/internal/scene"
)

// OpKind names a canvas call.
type OpKind string

const (
	OpSetSize      OpKind = "set-size"
	OpClear        OpKind = "clear"
	OpFillRect     OpKind = "fill-rect"
	OpFillDisc     OpKind = "fill-disc"
	OpGlow         OpKind = "glow"
	OpFillCircle   OpKind = "fill-circle"
	OpStrokeLine   OpKind = "stroke-line"
	OpStrokeCircle OpKind = "stroke-circle"
	OpDrawImage    OpKind = "draw-image"
)

// Op is one recorded call. Only the fields relevant to Kind are set.
type Op struct {
	Kind     OpKind
	X, Y     float64
	X1, Y1   float64
	W, H     float64
	R        float64
	Width    float64
	Color    color.NRGBA
	Gradient scene.RadialGradient
	Image    image.Image
	Viewport scene.Viewport
}

// Recorder implements scene.Canvas by appending every call to Ops.
type Recorder struct {
	Ops  []Op
	Size scene.Viewport
}

var _ scene.Canvas = (*Recorder)(nil)

func (r *Recorder) SetSize(v scene.Viewport) {
	r.Size = v
	r.Ops = append(r.Ops, Op{Kind: OpSetSize, Viewport: v})
}

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) FillRect(x, y, w, h float64, g scene.RadialGradient) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Gradient: g})
}

func (r *Recorder) FillDisc(g scene.RadialGradient) {
	r.Ops = append(r.Ops, Op{Kind: OpFillDisc, X: g.X, Y: g.Y, R: g.Radius, Gradient: g})
}

func (r *Recorder) Glow(x, y, rad float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpGlow, X: x, Y: y, R: rad, Color: c})
}

func (r *Recorder) FillCircle(x, y, rad float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, X: x, Y: y, R: rad, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeLine, X: x0, Y: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

func (r *Recorder) StrokeCircle(x, y, rad, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeCircle, X: x, Y: y, R: rad, Width: width, Color: c})
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawImage, X: x, Y: y, W: w, H: h, Image: img})
}

// Count returns how many calls of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of kind in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Draws returns the number of recorded calls other than SetSize.
func (r *Recorder) Draws() int {
	return len(r.Ops) - r.Count(OpSetSize)
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
