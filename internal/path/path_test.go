package path

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazes/internal/core"
)

var algorithms = []struct {
	name string
	find Finder
}{
	{"bfs", PathOfZeroes},
	{"astar", AStar},
}

func mustParse(t *testing.T, pic string) *core.Grid {
	t.Helper()
	g, err := core.Parse(pic)
	require.NoError(t, err)
	return g
}

// requireRoute checks that s is a connected chain of empty cells leading
// from a neighbor of start to end.
func requireRoute(t *testing.T, g *core.Grid, s Set, start, end core.Point) {
	t.Helper()
	require.False(t, s.Contains(start), "route must exclude start")
	require.True(t, s.Contains(end), "route must include end")
	for p := range s {
		require.False(t, g.Alive(p), "route crosses blocked cell %v", p)
	}

	seen := map[core.Point]bool{start: true}
	frontier := []core.Point{start}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, n := range core.LimitedNeighbors(cur) {
			if s.Contains(n) && !seen[n] {
				seen[n] = true
				frontier = append(frontier, n)
			}
		}
	}
	require.True(t, seen[end], "route is not connected from start to end")
}

func TestOpenGridShortestRoute(t *testing.T) {
	g := core.MustNew(5, 5)
	start, end := core.Pt(0, 0), core.Pt(4, 4)
	for _, alg := range algorithms {
		t.Run(alg.name, func(t *testing.T) {
			s, found, err := alg.find(g, start, end)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, 8, s.Len())
			requireRoute(t, g, s, start, end)
		})
	}
}

func TestWalledStartHasNoRoute(t *testing.T) {
	g := mustParse(t, `
		.....
		..#..
		.#.#.
		..#..
		.....
	`)
	start := core.Pt(2, 2)
	for _, alg := range algorithms {
		t.Run(alg.name, func(t *testing.T) {
			for _, end := range []core.Point{{X: 0, Y: 0}, {X: 4, Y: 4}, {X: 2, Y: 0}} {
				s, found, err := alg.find(g, start, end)
				require.NoError(t, err)
				assert.False(t, found, "end %v", end)
				assert.Nil(t, s)
			}
		})
	}
}

func TestStartEqualsEnd(t *testing.T) {
	g := core.MustNew(3, 3)
	for _, alg := range algorithms {
		s, found, err := alg.find(g, core.Pt(1, 1), core.Pt(1, 1))
		require.NoError(t, err, alg.name)
		assert.True(t, found, alg.name)
		assert.Zero(t, s.Len(), alg.name)
	}
}

func TestMazeRoute(t *testing.T) {
	g := mustParse(t, `
		..#......
		.##.####.
		....#....
		###.#.###
		....#....
		.####.##.
		.........
	`)
	start, end := core.Pt(0, 0), core.Pt(8, 0)
	for _, alg := range algorithms {
		t.Run(alg.name, func(t *testing.T) {
			s, found, err := alg.find(g, start, end)
			require.NoError(t, err)
			require.True(t, found)
			requireRoute(t, g, s, start, end)
		})
	}

	bfs, _, _ := PathOfZeroes(g, start, end)
	astar, _, _ := AStar(g, start, end)
	assert.Equal(t, bfs.Len(), astar.Len(), "both searches are optimal")
}

func TestPathOfZeroesGatesOnNeighbor(t *testing.T) {
	// The only way right crosses the blocked middle cell. Testing the
	// expanded cell instead of the neighbor would step onto it.
	g := mustParse(t, `
		.#.
	`)
	_, found, err := PathOfZeroes(g, core.Pt(0, 0), core.Pt(2, 0))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEndpointValidation(t *testing.T) {
	g := mustParse(t, `
		..#
		...
	`)
	cases := []struct {
		name       string
		start, end core.Point
		err        error
	}{
		{"StartOff", core.Pt(-1, 0), core.Pt(0, 1), ErrOutOfBounds},
		{"EndOff", core.Pt(0, 0), core.Pt(3, 1), ErrOutOfBounds},
		{"StartBlocked", core.Pt(2, 0), core.Pt(0, 0), ErrBlocked},
		{"EndBlocked", core.Pt(0, 0), core.Pt(2, 0), ErrBlocked},
	}
	for _, alg := range algorithms {
		for _, tc := range cases {
			t.Run(alg.name+"/"+tc.name, func(t *testing.T) {
				_, found, err := alg.find(g, tc.start, tc.end)
				assert.ErrorIs(t, err, tc.err)
				assert.False(t, found)
			})
		}
		_, _, err := alg.find(nil, core.Pt(0, 0), core.Pt(0, 0))
		assert.ErrorIs(t, err, ErrNilGrid)
	}
}

func TestSearchesAgreeOnExistence(t *testing.T) {
	for seed := int64(0); seed < 40; seed++ {
		g := core.MustNew(12, 9)
		core.FillDensity(core.NewRNG(seed).Source(), g.Cells(), 0.35)
		start, end := core.Pt(0, 0), core.Pt(11, 8)
		g.Set(start, 0)
		g.Set(end, 0)

		bs, bfound, err := PathOfZeroes(g, start, end)
		require.NoError(t, err)
		as, afound, err := AStar(g, start, end)
		require.NoError(t, err)

		require.Equal(t, bfound, afound, "seed %d", seed)
		if bfound {
			assert.Equal(t, bs.Len(), as.Len(), "seed %d", seed)
			requireRoute(t, g, as, start, end)
		}
	}
}

func TestSearchDoesNotMutateGrid(t *testing.T) {
	g := core.MustNew(6, 6)
	core.FillDensity(core.NewRNG(9).Source(), g.Cells(), 0.3)
	g.Set(core.Pt(0, 0), 0)
	g.Set(core.Pt(5, 5), 0)
	snapshot := g.Clone()
	for _, alg := range algorithms {
		_, _, err := alg.find(g, core.Pt(0, 0), core.Pt(5, 5))
		require.NoError(t, err)
		assert.True(t, g.Equal(snapshot), alg.name)
	}
}

func TestAStarIsDeterministic(t *testing.T) {
	g := core.MustNew(9, 9)
	first, _, err := AStar(g, core.Pt(0, 0), core.Pt(8, 8))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, _, err := AStar(g, core.Pt(0, 0), core.Pt(8, 8))
		require.NoError(t, err)
		assert.Equal(t, first.Points(), again.Points())
	}
}

func TestAStarExpandsFewerPoints(t *testing.T) {
	g := core.MustNew(20, 20)
	count := func(find Finder) int {
		n := 0
		_, found, err := find(g, core.Pt(0, 10), core.Pt(19, 10), WithVisit(func(core.Point) { n++ }))
		require.NoError(t, err)
		require.True(t, found)
		return n
	}
	assert.Less(t, count(AStar), count(PathOfZeroes))
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := core.MustNew(4, 4)
	for _, alg := range algorithms {
		_, found, err := alg.find(g, core.Pt(0, 0), core.Pt(3, 3), WithContext(ctx))
		assert.ErrorIs(t, err, context.Canceled, alg.name)
		assert.False(t, found)
	}
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"astar", "bfs"}, Finders())
	f, err := Lookup("BFS")
	require.NoError(t, err)
	_, found, err := f(core.MustNew(2, 2), core.Pt(0, 0), core.Pt(1, 1))
	require.NoError(t, err)
	assert.True(t, found)

	_, err = Lookup("dijkstra")
	assert.Error(t, err)
}

func TestSetPointsRowMajor(t *testing.T) {
	s := Set{core.Pt(2, 1): {}, core.Pt(0, 1): {}, core.Pt(5, 0): {}}
	assert.Equal(t, []core.Point{{X: 5, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}}, s.Points())
}
