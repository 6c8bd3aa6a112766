package path

import "mazes/internal/core"

// PathOfZeroes runs a breadth-first search from start to end. Points are
// expanded in FIFO order and a neighbor is enqueued the first time it is
// seen, provided it is on the grid and empty. The returned route is a
// shortest one.
func PathOfZeroes(g *core.Grid, start, end core.Point, opts ...Option) (Set, bool, error) {
	if err := validate(g, start, end); err != nil {
		return nil, false, err
	}
	o := buildOptions(opts)

	cells := g.Cells()
	cameFrom := make([]int, len(cells))
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	s := g.Index(start.X, start.Y)
	cameFrom[s] = s

	queue := make([]core.Point, 0, len(cells))
	queue = append(queue, start)
	for len(queue) > 0 {
		select {
		case <-o.Ctx.Done():
			return nil, false, o.Ctx.Err()
		default:
		}

		cur := queue[0]
		queue = queue[1:]
		o.OnVisit(cur)
		if cur == end {
			return trace(g, cameFrom, start, end), true, nil
		}

		ci := g.Index(cur.X, cur.Y)
		nb := core.LimitedNeighbors(cur)
		for p := range g.ValidNeighbors(nb[:]) {
			i := g.Index(p.X, p.Y)
			if cameFrom[i] >= 0 || cells[i] != 0 {
				continue
			}
			cameFrom[i] = ci
			queue = append(queue, p)
		}
	}
	return nil, false, nil
}
