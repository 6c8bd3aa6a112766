package lifelike

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"mazes/internal/core"
	"mazes/internal/rules"
)

// Automaton advances a binary grid under a life-like rule. Every cell of a
// generation is computed from the previous generation only. A surviving cell
// keeps its byte value; a born cell is written as 1.
type Automaton struct {
	cur  *core.Grid
	nxt  *core.Grid
	rule rules.Rule

	table   rules.Table
	workers int
	gen     int

	name    string
	density float64
}

// New returns an Automaton starting from a copy of grid.
func New(grid *core.Grid, rule rules.Rule) *Automaton {
	a := &Automaton{
		cur:     grid.Clone(),
		nxt:     grid.Clone(),
		workers: 1,
		name:    "lifelike",
		density: 0.5,
	}
	a.SetRule(rule)
	return a
}

// NewFromDims returns an Automaton over an empty w×h grid.
func NewFromDims(w, h int, rule rules.Rule) (*Automaton, error) {
	g, err := core.New(w, h)
	if err != nil {
		return nil, err
	}
	return New(g, rule), nil
}

// Name returns the simulation identifier.
func (a *Automaton) Name() string { return a.name }

// Size returns the grid dimensions.
func (a *Automaton) Size() core.Size { return a.cur.Dim() }

// Cells exposes the current generation.
func (a *Automaton) Cells() []uint8 { return a.cur.Cells() }

// Grid exposes the current generation. It is replaced, not mutated, by Step,
// so callers must fetch it again after stepping.
func (a *Automaton) Grid() *core.Grid { return a.cur }

// Rule returns the active rule.
func (a *Automaton) Rule() rules.Rule { return a.rule }

// SetRule swaps the active rule. It takes effect on the next Step. A nil
// rule is ignored.
func (a *Automaton) SetRule(r rules.Rule) {
	if r == nil {
		return
	}
	a.rule = r
	a.table = rules.Compile(r)
}

// SetWorkers sets how many goroutines share each generation. Values below
// one mean runtime.NumCPU().
func (a *Automaton) SetWorkers(n int) {
	if n < 1 {
		n = runtime.NumCPU()
	}
	a.workers = n
}

// Density is the live-cell probability used by Reset.
func (a *Automaton) Density() float64 { return a.density }

// SetDensity sets the live-cell probability used by Reset, clamped to [0, 1].
func (a *Automaton) SetDensity(p float64) { a.density = min(max(p, 0), 1) }

// Generation counts steps since construction or the last Reset.
func (a *Automaton) Generation() int { return a.gen }

// Reset randomizes the board using the provided seed.
func (a *Automaton) Reset(seed int64) {
	core.FillDensity(core.NewRNG(seed).Source(), a.cur.Cells(), a.density)
	a.gen = 0
}

// Step advances the simulation by one generation.
func (a *Automaton) Step() {
	h := a.cur.H
	if a.workers <= 1 || h < 2 {
		a.stepRows(0, h)
	} else {
		a.stepParallel()
	}
	a.cur, a.nxt = a.nxt, a.cur
	a.gen++
}

// StepN advances n generations.
func (a *Automaton) StepN(n int) {
	for i := 0; i < n; i++ {
		a.Step()
	}
}

func (a *Automaton) stepParallel() {
	h := a.cur.H
	workers := min(a.workers, h)
	rowsPerWorker := (h + workers - 1) / workers

	var eg errgroup.Group
	for i := 0; i < workers; i++ {
		startRow := i * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, h)
		if startRow >= h {
			break
		}
		eg.Go(func() error {
			a.stepRows(startRow, endRow)
			return nil
		})
	}
	// Workers never fail.
	_ = eg.Wait()
}

// stepRows writes rows [y0, y1) of the next generation.
func (a *Automaton) stepRows(y0, y1 int) {
	w := a.cur.W
	cur, nxt := a.cur.Cells(), a.nxt.Cells()
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			k := a.cur.SumNeighborsWithOutsideDead(core.Point{X: x, Y: y})
			alive := cur[idx] != 0
			switch {
			case !a.table.Next(alive, k):
				nxt[idx] = 0
			case alive:
				nxt[idx] = cur[idx]
			default:
				nxt[idx] = 1
			}
		}
	}
}
