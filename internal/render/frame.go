package render

import (
	"mazes/internal/core"
	"mazes/internal/path"
)

// Markers are the optional endpoints highlighted on top of a route.
type Markers struct {
	Start, End       core.Point
	HasStart, HasEnd bool
}

// Frame renders g into an RGBA buffer of len 4*W*H, reusing buf when it is
// large enough. Route cells and markers are drawn over the cells.
func Frame(buf []byte, g *core.Grid, route path.Set, m Markers, pal Palette) []byte {
	n := 4 * g.W * g.H
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	fillBinaryRGBA(buf, g.Cells(), pal.On, pal.Off)

	if len(route) > 0 {
		indices := make([]int, 0, len(route))
		for p := range route {
			if g.InBounds(p) {
				indices = append(indices, g.Index(p.X, p.Y))
			}
		}
		paintIndices(buf, indices, pal.Path)
	}
	if m.HasStart && g.InBounds(m.Start) {
		paintIndices(buf, []int{g.Index(m.Start.X, m.Start.Y)}, pal.Start)
	}
	if m.HasEnd && g.InBounds(m.End) {
		paintIndices(buf, []int{g.Index(m.End.X, m.End.Y)}, pal.End)
	}
	return buf
}
