package path

import (
	"container/heap"

	"mazes/internal/core"
)

// node is a frontier entry.
type node struct {
	idx int
	f   int
	h   int
	seq int // insertion order, for stable tie-breaks
	pos int // heap index
}

// frontier orders nodes by f, then h, then insertion order.
type frontier []*node

func (q frontier) Len() int { return len(q) }
func (q frontier) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}
func (q frontier) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].pos = i
	q[j].pos = j
}
func (q *frontier) Push(x any) {
	n := x.(*node)
	n.pos = len(*q)
	*q = append(*q, n)
}
func (q *frontier) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.pos = -1
	*q = old[:len(old)-1]
	return n
}

// AStar searches from start to end with the cityblock distance as heuristic.
// Every step costs one, so the heuristic is consistent and the returned route
// is a shortest one. Blocked neighbors are never entered.
func AStar(g *core.Grid, start, end core.Point, opts ...Option) (Set, bool, error) {
	if err := validate(g, start, end); err != nil {
		return nil, false, err
	}
	o := buildOptions(opts)

	cells := g.Cells()
	// No route is longer than the cell count, so this acts as infinity.
	unknown := len(cells) + 1

	cameFrom := make([]int, len(cells))
	gScore := make([]int, len(cells))
	open := make([]*node, len(cells))
	for i := range gScore {
		cameFrom[i] = -1
		gScore[i] = unknown
	}

	s := g.Index(start.X, start.Y)
	cameFrom[s] = s
	gScore[s] = 0

	seq := 0
	q := &frontier{}
	h0 := start.Cityblock(end)
	open[s] = &node{idx: s, f: h0, h: h0}
	heap.Push(q, open[s])

	for q.Len() > 0 {
		select {
		case <-o.Ctx.Done():
			return nil, false, o.Ctx.Err()
		default:
		}

		n := heap.Pop(q).(*node)
		open[n.idx] = nil
		cur := g.Point(n.idx)
		o.OnVisit(cur)
		if cur == end {
			return trace(g, cameFrom, start, end), true, nil
		}

		tentative := gScore[n.idx] + 1
		nb := core.LimitedNeighbors(cur)
		for p := range g.ValidNeighbors(nb[:]) {
			i := g.Index(p.X, p.Y)
			if cells[i] != 0 || tentative >= gScore[i] {
				continue
			}
			cameFrom[i] = n.idx
			gScore[i] = tentative
			h := p.Cityblock(end)
			if m := open[i]; m != nil {
				m.f = tentative + h
				heap.Fix(q, m.pos)
				continue
			}
			seq++
			open[i] = &node{idx: i, f: tentative + h, h: h, seq: seq}
			heap.Push(q, open[i])
		}
	}
	return nil, false, nil
}
