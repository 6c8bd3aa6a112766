package core

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadDimensions(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"ZeroWidth", 0, 3},
		{"ZeroHeight", 3, 0},
		{"Negative", -1, 4},
		{"ProductOverflows", math.MaxInt, 2},
		{"ProductWrapsToZero", math.MaxInt/2 + 1, 4},
		{"AboveCellLimit", MaxCells/3 + 1, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(tc.w, tc.h)
			require.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Nil(t, g)
		})
	}
}

func TestNewAllocatesZeroedCells(t *testing.T) {
	for _, dim := range []Size{{1, 1}, {3, 7}, {16, 9}} {
		g, err := New(dim.W, dim.H)
		require.NoError(t, err)
		require.Len(t, g.Cells(), dim.W*dim.H)
		assert.Zero(t, g.Population())
		assert.Equal(t, dim, g.Dim())
	}
}

func TestAtSetRoundTrip(t *testing.T) {
	g := MustNew(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(x + y*4 + 1)
			require.True(t, g.Set(Pt(x, y), v))
			got, ok := g.At(Pt(x, y))
			require.True(t, ok)
			assert.Equal(t, v, got)
			assert.Equal(t, v, g.Cells()[x+y*4], "row-major layout")
		}
	}

	for _, p := range []Point{{-1, 0}, {4, 0}, {0, 3}, {0, -1}} {
		_, ok := g.At(p)
		assert.False(t, ok, "At(%v)", p)
		assert.False(t, g.Set(p, 9), "Set(%v)", p)
	}
}

func TestNeighborOrder(t *testing.T) {
	p := Pt(5, 5)
	assert.Equal(t, [8]Point{
		{4, 4}, {5, 4}, {6, 4},
		{4, 5}, {6, 5},
		{4, 6}, {5, 6}, {6, 6},
	}, Neighbors(p))
	assert.Equal(t, [4]Point{{5, 4}, {4, 5}, {6, 5}, {5, 6}}, LimitedNeighbors(p))
}

func TestValidNeighborsFiltersLazily(t *testing.T) {
	g := MustNew(3, 3)
	nb := Neighbors(Pt(0, 0))
	got := slices.Collect(g.ValidNeighbors(nb[:]))
	assert.Equal(t, []Point{{1, 0}, {0, 1}, {1, 1}}, got)

	seen := 0
	for range g.ValidNeighbors(nb[:]) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestSumNeighborsWithOutsideDead(t *testing.T) {
	g, err := Parse(`
		###
		###
		###
	`)
	require.NoError(t, err)

	assert.Equal(t, 3, g.SumNeighborsWithOutsideDead(Pt(0, 0)), "corner")
	assert.Equal(t, 5, g.SumNeighborsWithOutsideDead(Pt(1, 0)), "edge")
	assert.Equal(t, 8, g.SumNeighborsWithOutsideDead(Pt(1, 1)), "center")
	assert.Equal(t, 1, g.SumNeighborsWithOutsideDead(Pt(-1, -1)), "off grid")

	for i := range g.Cells() {
		p := g.Point(i)
		assert.LessOrEqual(t, g.SumNeighborsWithOutsideDead(p), 8)
	}
}

func TestDistances(t *testing.T) {
	a, b := Pt(1, 2), Pt(4, -2)
	assert.Equal(t, 4, a.Chebyshev(b))
	assert.Equal(t, 7, a.Cityblock(b))
	assert.Equal(t, a.Cityblock(b), b.Cityblock(a))
	assert.Zero(t, a.Chebyshev(a))
}

func TestCloneIsIndependent(t *testing.T) {
	g := MustNew(2, 2)
	g.Set(Pt(1, 1), 1)
	c := g.Clone()
	require.True(t, g.Equal(c))

	c.Set(Pt(0, 0), 1)
	assert.False(t, g.Alive(Pt(0, 0)))
	assert.False(t, g.Equal(c))

	require.NoError(t, g.CopyFrom(c))
	assert.True(t, g.Equal(c))
	assert.ErrorIs(t, g.CopyFrom(MustNew(3, 2)), ErrGridShape)
}

func TestParseAndString(t *testing.T) {
	g, err := Parse(`
		.#.
		#..
	`)
	require.NoError(t, err)
	assert.Equal(t, "width: 3 -- height: 2\n0 1 0 \n1 0 0 \n", g.String())

	_, err = Parse("..\n...")
	assert.ErrorIs(t, err, ErrGridShape)
	_, err = Parse(".x")
	assert.ErrorIs(t, err, ErrGridShape)
	_, err = Parse("  \n")
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestFillDensityBounds(t *testing.T) {
	buf := make([]uint8, 64)
	FillDensity(NewRNG(1).Source(), buf, 0)
	assert.Equal(t, make([]uint8, 64), buf)

	FillDensity(NewRNG(1).Source(), buf, 2)
	for _, v := range buf {
		assert.Equal(t, uint8(1), v)
	}

	a, b := make([]uint8, 64), make([]uint8, 64)
	FillDensity(NewRNG(7).Source(), a, 0.5)
	FillDensity(NewRNG(7).Source(), b, 0.5)
	assert.Equal(t, a, b, "same seed, same cells")
}

func TestFixedStepPacing(t *testing.T) {
	clock := time.Unix(100, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	assert.True(t, fs.ShouldStep(), "first tick is due immediately")
	assert.False(t, fs.ShouldStep())

	clock = clock.Add(50 * time.Millisecond)
	assert.False(t, fs.ShouldStep())
	clock = clock.Add(50 * time.Millisecond)
	assert.True(t, fs.ShouldStep())

	fs.SetRate(0)
	assert.Equal(t, time.Second/60, fs.Interval())
}
