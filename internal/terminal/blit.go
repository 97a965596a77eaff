// Package terminal presents the backdrop in a terminal with tcell. Each
// cell shows two vertically stacked pixels as an upper half block.
package terminal

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/izu-portfolio/cosmos/internal/scene"
)

// Logical pixels covered by one terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

const upperHalf = '▀'

// Surface is the part of tcell.Screen the presenter draws through.
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// ViewportFor maps a terminal size to a viewport with one raster pixel per
// cell column and two per cell row.
func ViewportFor(cols, rows int) scene.Viewport {
	return scene.Viewport{
		Width:  float64(cols * CellWidth),
		Height: float64(rows * CellHeight),
		DPR:    1.0 / CellWidth,
	}
}

// CellCenter returns the logical point under the middle of a cell.
func CellCenter(col, row int) (float64, float64) {
	return float64(col*CellWidth + CellWidth/2), float64(row*CellHeight + CellHeight/2)
}

// Blit writes img to dst as half blocks, flattening translucent pixels
// onto bg.
func Blit(dst Surface, img *image.RGBA, bg color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y+1 < b.Max.Y; y += 2 {
		row := (y - b.Min.Y) / 2
		for x := b.Min.X; x < b.Max.X; x++ {
			top := flatten(img.RGBAAt(x, y), bg)
			bottom := flatten(img.RGBAAt(x, y+1), bg)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			dst.SetContent(x-b.Min.X, row, upperHalf, nil, style)
		}
	}
}

// flatten composites a premultiplied pixel over an opaque background.
func flatten(c color.RGBA, bg color.NRGBA) tcell.Color {
	inv := 255 - int32(c.A)
	r := int32(c.R) + int32(bg.R)*inv/255
	g := int32(c.G) + int32(bg.G)*inv/255
	b := int32(c.B) + int32(bg.B)*inv/255
	return tcell.NewRGBColor(r, g, b)
}

// writeCentered prints text in the middle row of a cols×rows area.
func writeCentered(dst Surface, cols, rows int, text string, style tcell.Style) {
	runes := []rune(text)
	x := max(0, (cols-len(runes))/2)
	y := rows / 2
	for i, r := range runes {
		if x+i >= cols {
			break
		}
		dst.SetContent(x+i, y, r, nil, style)
	}
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
