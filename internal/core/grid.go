package core

import (
	"fmt"
	"iter"
	"math"
	"strings"
)

// Point addresses a cell. The origin is the top-left corner.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Chebyshev returns max(|dx|, |dy|).
func (p Point) Chebyshev(q Point) int { return max(abs(p.X-q.X), abs(p.Y-q.Y)) }

// Cityblock returns |dx| + |dy|.
func (p Point) Cityblock(q Point) int { return abs(p.X-q.X) + abs(p.Y-q.Y) }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// mooreOffsets lists the eight surrounding cells row by row.
var mooreOffsets = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// vonNeumannOffsets lists up, left, right, down.
var vonNeumannOffsets = [4]Point{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

// Grid stores a dense 2D grid of byte-sized cell values in row-major order.
// Zero is dead/empty, anything else is alive/blocked.
type Grid struct {
	W, H int
	data []uint8
}

// MaxCells bounds w*h so that a four-byte-per-cell frame of the grid still
// has a representable length.
const MaxCells = math.MaxInt / 4

// CheckDims reports whether a w×h grid can be allocated: both dimensions
// positive and their product at most MaxCells.
func CheckDims(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxCells/h {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	return nil
}

// New allocates a zeroed grid.
func New(w, h int) (*Grid, error) {
	if err := CheckDims(w, h); err != nil {
		return nil, err
	}
	return &Grid{W: w, H: h, data: make([]uint8, w*h)}, nil
}

// MustNew is New for dimensions known to be valid.
func MustNew(w, h int) *Grid {
	g, err := New(w, h)
	if err != nil {
		panic(err)
	}
	return g
}

// Dim returns the grid dimensions.
func (g *Grid) Dim() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Point converts a linear index back to coordinates.
func (g *Grid) Point(idx int) Point { return Point{X: idx % g.W, Y: idx / g.W} }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// At returns the value stored at p. ok is false when p is off the grid.
func (g *Grid) At(p Point) (v uint8, ok bool) {
	if !g.InBounds(p) {
		return 0, false
	}
	return g.data[g.Index(p.X, p.Y)], true
}

// Alive reports whether p is on the grid and nonzero.
func (g *Grid) Alive(p Point) bool {
	v, ok := g.At(p)
	return ok && v != 0
}

// Set stores v at p and reports whether p was on the grid.
func (g *Grid) Set(p Point, v uint8) bool {
	if !g.InBounds(p) {
		return false
	}
	g.data[g.Index(p.X, p.Y)] = v
	return true
}

// Neighbors returns the Moore neighborhood of p without bounds filtering.
func Neighbors(p Point) [8]Point {
	var out [8]Point
	for i, d := range mooreOffsets {
		out[i] = p.Add(d)
	}
	return out
}

// LimitedNeighbors returns the 4-connected neighbors of p (up, left, right,
// down) without bounds filtering.
func LimitedNeighbors(p Point) [4]Point {
	var out [4]Point
	for i, d := range vonNeumannOffsets {
		out[i] = p.Add(d)
	}
	return out
}

// ValidNeighbors lazily yields the points of pts that lie on g, in order.
func (g *Grid) ValidNeighbors(pts []Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, p := range pts {
			if !g.InBounds(p) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// SumNeighborsWithOutsideDead counts live Moore neighbors of p. Cells off the
// grid count as dead.
func (g *Grid) SumNeighborsWithOutsideDead(p Point) int {
	n := 0
	for _, d := range mooreOffsets {
		x, y := p.X+d.X, p.Y+d.Y
		if x < 0 || x >= g.W || y < 0 || y >= g.H {
			continue
		}
		if g.data[y*g.W+x] != 0 {
			n++
		}
	}
	return n
}

// Population counts nonzero cells.
func (g *Grid) Population() int {
	n := 0
	for _, v := range g.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy with its own buffer.
func (g *Grid) Clone() *Grid {
	return &Grid{W: g.W, H: g.H, data: append([]uint8(nil), g.data...)}
}

// CopyFrom overwrites g with the contents of src, which must have the same shape.
func (g *Grid) CopyFrom(src *Grid) error {
	if src.W != g.W || src.H != g.H {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrGridShape, src.W, src.H, g.W, g.H)
	}
	copy(g.data, src.data)
	return nil
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

func (g *Grid) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "width: %d -- height: %d\n", g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			fmt.Fprintf(&b, "%d ", g.data[g.Index(x, y)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse builds a grid from a text picture, one row per line. '.', '0' and
// '_' are dead; '#', 'O', 'o', '*' and '1' are alive. Blank lines and
// surrounding whitespace are ignored.
func Parse(pic string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(pic, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty picture", ErrInvalidDimensions)
	}
	g, err := New(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.W {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrGridShape, y, len(row), g.W)
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case '.', '0', '_':
			case '#', 'O', 'o', '*', '1':
				g.data[g.Index(x, y)] = 1
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %d,%d", ErrGridShape, row[x], x, y)
			}
		}
	}
	return g, nil
}
