package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/izu-portfolio/cosmos/internal/scene"
)

// Label pulse and size.
const (
	labelScale = 2    // logical px per font px
	pulseStep  = 0.08 // radians per frame
)

// LoadingLabel is the placeholder drawn while the planet images load.
type LoadingLabel struct {
	glyphs *ebiten.Image
	pixel  *ebiten.Image
	ticks  int
}

// NewLoadingLabel renders scene.LoadingText once with basicfont.Face7x13.
func NewLoadingLabel() *LoadingLabel {
	face := basicfont.Face7x13
	w := font.MeasureString(face, scene.LoadingText).Ceil()
	h := face.Metrics().Height.Ceil()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(scene.LoadingText)

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &LoadingLabel{glyphs: ebiten.NewImageFromImage(img), pixel: pixel}
}

// Draw fills screen with the palette's placeholder colour and centres the
// pulsing label on it.
func (l *LoadingLabel) Draw(screen *ebiten.Image, v scene.Viewport, p scene.Palette) {
	b := screen.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.ColorScale.ScaleWithColor(p.Placeholder)
	screen.DrawImage(l.pixel, &op)

	l.ticks++
	pulse := 0.6 + 0.4*(math.Sin(float64(l.ticks)*pulseStep)+1)/2

	s := labelScale * v.Scale()
	gb := l.glyphs.Bounds()
	op = ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(
		(float64(b.Dx())-float64(gb.Dx())*s)/2,
		(float64(b.Dy())-float64(gb.Dy())*s)/2,
	)
	op.ColorScale.ScaleWithColor(p.PlaceholderText)
	op.ColorScale.ScaleAlpha(float32(pulse))
	screen.DrawImage(l.glyphs, &op)
}
