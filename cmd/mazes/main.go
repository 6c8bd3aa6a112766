package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"mazes/internal/app"
	"mazes/internal/core"
	"mazes/internal/path"
	"mazes/internal/rules"
	"mazes/internal/session"
	_ "mazes/internal/sims/lifelike"
)

type options struct {
	width, height int
	sim           string
	rule          string
	steps         int
	seed          int64
	density       float64
	workers       int
	kick          bool
	finder        string
	from, to      string
	openEnds      bool
	logLevel      string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var o options
	fs := flag.NewFlagSet("mazes", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.width, "w", 32, "grid width in cells")
	fs.IntVar(&o.height, "h", 32, "grid height in cells")
	fs.StringVar(&o.sim, "sim", "mazecetric", "simulation: "+strings.Join(core.SimNames(), ", "))
	fs.StringVar(&o.rule, "rule", "", "preset name or B/S rule overriding the simulation's own")
	fs.IntVar(&o.steps, "steps", 100, "generations to run")
	fs.Int64Var(&o.seed, "seed", 42, "seed for the random fill")
	fs.Float64Var(&o.density, "density", 0.1, "initial live-cell density (0 skips the fill)")
	fs.IntVar(&o.workers, "workers", 1, "goroutines per generation (0 = NumCPU)")
	fs.BoolVar(&o.kick, "kick", false, "stamp the two seed dominoes before stepping")
	fs.StringVar(&o.finder, "finder", "astar", "path finder: "+strings.Join(path.Finders(), " or "))
	fs.StringVar(&o.from, "from", "", "path start as x,y")
	fs.StringVar(&o.to, "to", "", "path end as x,y")
	fs.BoolVar(&o.openEnds, "open-endpoints", false, "clear live cells under -from and -to before searching")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log, err := app.NewLogger(stderr, o.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if err := simulate(o, stdout, log); err != nil {
		log.WithError(err).Error("run failed")
		return 1
	}
	return 0
}

func simulate(o options, out io.Writer, log *logrus.Logger) error {
	s, err := session.New(o.width, o.height,
		session.WithSim(o.sim),
		session.WithLogger(log),
		session.WithWorkers(o.workers),
	)
	if err != nil {
		return err
	}
	if o.rule != "" {
		if err := s.SelectRule(o.rule); err != nil {
			return err
		}
	}
	if err := s.SelectFinder(o.finder); err != nil {
		return err
	}
	if o.density > 0 {
		if !s.SetFloatParameter("density", o.density) {
			return fmt.Errorf("density %v outside [0, 1]", o.density)
		}
		s.Randomize(o.seed)
	}
	if o.kick {
		s.Seed(session.KickSeeds...)
	}
	if err := s.Step(o.steps); err != nil {
		return err
	}

	var start, end *core.Point
	if o.from != "" || o.to != "" {
		a, err := app.ParsePoint(o.from)
		if err != nil {
			return err
		}
		b, err := app.ParsePoint(o.to)
		if err != nil {
			return err
		}
		if o.openEnds {
			if err := s.ClearCell(a); err != nil {
				return err
			}
			if err := s.ClearCell(b); err != nil {
				return err
			}
		}
		found, err := s.FindPath(a, b)
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintf(out, "no path from %v to %v\n", a, b)
		}
		start, end = &a, &b
	}

	printGrid(out, s.Grid(), s.Path(), start, end)
	fmt.Fprintf(out, "rule %s, generation %d, population %d", rules.Format(s.Rule()), s.Generation(), s.Grid().Population())
	if p := s.Path(); p != nil {
		fmt.Fprintf(out, ", path %d cells", p.Len())
	}
	fmt.Fprintln(out)
	return nil
}

func printGrid(out io.Writer, g *core.Grid, route path.Set, start, end *core.Point) {
	var b strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := core.Pt(x, y)
			switch {
			case start != nil && p == *start:
				b.WriteByte('S')
			case end != nil && p == *end:
				b.WriteByte('E')
			case route.Contains(p):
				b.WriteByte('*')
			case g.Alive(p):
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	io.WriteString(out, b.String())
}
