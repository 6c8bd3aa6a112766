package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"mazes/internal/core"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Width    int
	Height   int
	Sim      string
	Rule     string
	Finder   string
	Scale    int
	TPS      int
	Rate     int
	Batch    int
	Workers  int
	Seed     int64
	HUD      int
	LogLevel string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:    400,
		Height:   400,
		Sim:      "life",
		Finder:   "astar",
		Scale:    2,
		TPS:      60,
		Rate:     10,
		Batch:    10,
		Workers:  1,
		Seed:     42,
		HUD:      220,
		LogLevel: "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.StringVar(&c.Sim, "sim", c.Sim, "registered simulation: "+strings.Join(core.SimNames(), ", "))
	fs.StringVar(&c.Rule, "rule", c.Rule, "preset name or B/S rule overriding the simulation's, e.g. B3/S23")
	fs.StringVar(&c.Finder, "finder", c.Finder, "path finder: astar or bfs")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "generations per second while running")
	fs.IntVar(&c.Batch, "batch", c.Batch, "generations run by a rule key")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per generation (0 = NumCPU)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fills")
	fs.IntVar(&c.HUD, "hud", c.HUD, "HUD panel width in pixels (0 hides it)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level")
}

// ParsePoint reads "x,y".
func ParsePoint(s string) (core.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return core.Point{}, fmt.Errorf("app: point %q is not x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return core.Point{}, fmt.Errorf("app: point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return core.Point{}, fmt.Errorf("app: point %q: %w", s, err)
	}
	return core.Pt(x, y), nil
}
