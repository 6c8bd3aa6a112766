//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps one RGBA image in sync with a grid frame.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Buffer returns the pixel buffer to be filled by Frame before Blit.
func (gp *GridPainter) Buffer() []byte { return gp.buf }

// Blit uploads pixels into the painter image and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, pixels []byte, scale int) {
	if len(pixels) != 4*gp.w*gp.h {
		return
	}
	gp.buf = pixels
	gp.img.WritePixels(pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
