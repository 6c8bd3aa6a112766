// Package path finds routes through the empty cells of a core.Grid.
//
// Both searches move between 4-connected neighbors at uniform cost and only
// through zero-valued cells. They read the grid and never modify it.
//
// A route is returned as a Set holding every point on it except the start,
// and including the end. found is false when no route exists; errors are
// reserved for malformed requests (nil grid, endpoints off the grid or on a
// blocked cell).
package path

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"mazes/internal/core"
)

// Set is an unordered collection of points.
type Set map[core.Point]struct{}

// Contains reports whether p is in the set.
func (s Set) Contains(p core.Point) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of points.
func (s Set) Len() int { return len(s) }

// Points lists the members in row-major order.
func (s Set) Points() []core.Point {
	out := make([]core.Point, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b core.Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

// Finder is the signature shared by the search algorithms.
type Finder func(g *core.Grid, start, end core.Point, opts ...Option) (Set, bool, error)

var finders = map[string]Finder{
	"bfs":   PathOfZeroes,
	"astar": AStar,
}

// Finders lists the registered finder names in sorted order.
func Finders() []string {
	names := make([]string, 0, len(finders))
	for name := range finders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the finder registered under name.
func Lookup(name string) (Finder, error) {
	f, ok := finders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("path: unknown finder %q (have %s)", name, strings.Join(Finders(), ", "))
	}
	return f, nil
}

// validate checks the request before any search starts.
func validate(g *core.Grid, start, end core.Point) error {
	if g == nil {
		return ErrNilGrid
	}
	for _, ep := range []struct {
		name string
		p    core.Point
	}{{"start", start}, {"end", end}} {
		v, ok := g.At(ep.p)
		if !ok {
			return fmt.Errorf("%w: %s %v on %dx%d grid", ErrOutOfBounds, ep.name, ep.p, g.W, g.H)
		}
		if v != 0 {
			return fmt.Errorf("%w: %s %v", ErrBlocked, ep.name, ep.p)
		}
	}
	return nil
}

// trace walks the predecessor chain from end back to start and collects
// every point except start.
func trace(g *core.Grid, cameFrom []int, start, end core.Point) Set {
	out := Set{}
	s := g.Index(start.X, start.Y)
	for i := g.Index(end.X, end.Y); i != s; i = cameFrom[i] {
		out[g.Point(i)] = struct{}{}
	}
	return out
}
