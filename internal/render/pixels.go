package render

import "image/color"

// Palette holds the colors used to draw a grid and its overlays.
type Palette struct {
	On    color.Color
	Off   color.Color
	Path  color.Color
	Start color.Color
	End   color.Color
}

// DefaultPalette draws black cells on white with a red route, matching the
// maze viewer.
func DefaultPalette() Palette {
	return Palette{
		On:    color.Black,
		Off:   color.White,
		Path:  color.RGBA{R: 255, A: 255},
		Start: color.RGBA{B: 255, A: 255},
		End:   color.RGBA{G: 255, A: 255},
	}
}

// fillBinaryRGBA converts binary cell data (0/nonzero) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// paintIndices overwrites the pixels at the given cell indices with c.
// Indices outside buf are skipped.
func paintIndices(buf []byte, indices []int, c color.Color) {
	r, g, b, a := c.RGBA()
	for _, i := range indices {
		base := i * 4
		if i < 0 || base+3 >= len(buf) {
			continue
		}
		buf[base+0] = uint8(r >> 8)
		buf[base+1] = uint8(g >> 8)
		buf[base+2] = uint8(b >> 8)
		buf[base+3] = uint8(a >> 8)
	}
}
