// Package session is the command surface a front-end drives: it owns one
// grid, the selected rule and the most recent path, and turns user commands
// into calls on the automaton and the path finders.
package session

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"mazes/internal/core"
	"mazes/internal/path"
	"mazes/internal/rules"
)

var (
	// ErrInvalidCount indicates a negative step count.
	ErrInvalidCount = errors.New("session: step count must not be negative")
	// ErrUnknownSim indicates a simulation name missing from the registry.
	ErrUnknownSim = errors.New("session: unknown simulation")
)

// automaton is the part of a registered simulation the session drives.
type automaton interface {
	core.Sim
	Grid() *core.Grid
	Rule() rules.Rule
	SetRule(rules.Rule)
	Density() float64
	SetDensity(float64)
}

// Session holds the state shared between a front-end and the core.
type Session struct {
	sim    automaton
	path   path.Set
	finder string

	gen     int
	batch   int
	noRoute bool

	log *logrus.Logger
}

type settings struct {
	sim     string
	rule    rules.Rule
	workers int
	batch   int
	log     *logrus.Logger
}

// Option configures a Session.
type Option func(*settings)

// WithLogger routes session logs to l.
func WithLogger(l *logrus.Logger) Option {
	return func(c *settings) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSim picks the registered simulation that owns the grid. Its preset
// rule applies unless WithRule is also given.
func WithSim(name string) Option {
	return func(c *settings) { c.sim = name }
}

// WithRule selects the initial rule.
func WithRule(r rules.Rule) Option {
	return func(c *settings) {
		if r != nil {
			c.rule = r
		}
	}
}

// WithWorkers sets the goroutine count used when stepping. Zero means one
// per CPU.
func WithWorkers(n int) Option {
	return func(c *settings) {
		if n >= 0 {
			c.workers = n
		}
	}
}

// WithBatch sets how many generations a rule command runs.
func WithBatch(n int) Option {
	return func(c *settings) {
		if n > 0 {
			c.batch = n
		}
	}
}

// New creates a session over an empty w×h grid owned by the selected
// simulation ("lifelike" unless WithSim says otherwise). Simulations are
// looked up in core.Sims, so their packages must be linked in by the caller.
func New(w, h int, opts ...Option) (*Session, error) {
	if err := core.CheckDims(w, h); err != nil {
		return nil, err
	}
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	c := settings{sim: "lifelike", workers: 1, batch: 10, log: quiet}
	for _, opt := range opts {
		opt(&c)
	}

	factory, ok := core.Sims()[c.sim]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownSim, c.sim, strings.Join(core.SimNames(), ", "))
	}
	cfg := map[string]string{
		"w":       strconv.Itoa(w),
		"h":       strconv.Itoa(h),
		"workers": strconv.Itoa(c.workers),
	}
	sim, ok := factory(cfg).(automaton)
	if !ok {
		return nil, fmt.Errorf("%w %q: not a rule-driven grid", ErrUnknownSim, c.sim)
	}
	if c.rule != nil {
		sim.SetRule(c.rule)
	}

	s := &Session{
		sim:    sim,
		finder: "astar",
		batch:  c.batch,
		log:    c.log,
	}
	s.log.WithFields(logrus.Fields{
		"sim":    sim.Name(),
		"width":  w,
		"height": h,
		"rule":   rules.Format(sim.Rule()),
	}).Debug("session created")
	return s, nil
}

// Grid exposes the current cells. Stepping swaps buffers, so fetch it again
// after Step.
func (s *Session) Grid() *core.Grid { return s.sim.Grid() }

// Size returns the grid dimensions.
func (s *Session) Size() core.Size { return s.sim.Size() }

// Sim names the simulation that owns the grid.
func (s *Session) Sim() string { return s.sim.Name() }

// Rule returns the selected rule.
func (s *Session) Rule() rules.Rule { return s.sim.Rule() }

// Path returns the last computed route, or nil.
func (s *Session) Path() path.Set { return s.path }

// Generation counts generations stepped so far.
func (s *Session) Generation() int { return s.gen }

// Batch is the number of generations run by RunBatch.
func (s *Session) Batch() int { return s.batch }

// Finder returns the selected path finder name.
func (s *Session) Finder() string { return s.finder }

// SelectRule picks a preset by name or parses B/S notation.
func (s *Session) SelectRule(name string) error {
	r, err := rules.Lookup(name)
	if err != nil {
		s.log.WithField("rule", name).WithError(err).Warn("rule rejected")
		return err
	}
	s.SetRule(r)
	return nil
}

// SetRule selects a rule value directly. A nil rule is ignored.
func (s *Session) SetRule(r rules.Rule) {
	if r == nil {
		return
	}
	s.sim.SetRule(r)
	s.log.WithField("rule", rules.Format(r)).Info("rule selected")
}

// SetThresholds selects a rule from explicit birth and survival counts.
func (s *Session) SetThresholds(birth, survival []uint8) {
	s.SetRule(rules.NewDynamic(birth, survival))
}

// SetCell stores v at p. Editing the grid invalidates the current path.
func (s *Session) SetCell(p core.Point, v uint8) error {
	if !s.Grid().Set(p, v) {
		return fmt.Errorf("%w: %v", path.ErrOutOfBounds, p)
	}
	s.dropPath()
	return nil
}

// ClearCell marks p as empty.
func (s *Session) ClearCell(p core.Point) error { return s.SetCell(p, 0) }

// Seed marks every in-bounds point alive and reports how many were placed.
func (s *Session) Seed(points ...core.Point) int {
	placed := 0
	for _, p := range points {
		if s.Grid().Set(p, 1) {
			placed++
		}
	}
	if placed > 0 {
		s.dropPath()
	}
	return placed
}

// Randomize refills the grid at the simulation's seed density.
func (s *Session) Randomize(seed int64) {
	s.sim.Reset(seed)
	s.dropPath()
	s.gen = 0
	s.log.WithFields(logrus.Fields{"seed": seed, "density": s.sim.Density()}).Info("grid randomized")
}

// Clear empties the grid.
func (s *Session) Clear() {
	s.Grid().Clear()
	s.dropPath()
	s.gen = 0
}

// Step advances the grid n generations under the selected rule.
func (s *Session) Step(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	if n == 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		s.sim.Step()
	}
	s.gen += n
	s.dropPath()
	s.log.WithFields(logrus.Fields{
		"steps":      n,
		"generation": s.gen,
		"population": s.Grid().Population(),
	}).Debug("stepped")
	return nil
}

// RunBatch steps Batch generations.
func (s *Session) RunBatch() error { return s.Step(s.batch) }

// KickSeeds are stamped by Apply so that an empty grid still grows.
var KickSeeds = []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 100, Y: 100}, {X: 100, Y: 101}}

// Apply selects r, stamps KickSeeds and runs one batch.
func (s *Session) Apply(r rules.Rule) error {
	s.SetRule(r)
	s.Seed(KickSeeds...)
	return s.RunBatch()
}

// SelectFinder picks the path finder used by FindPath.
func (s *Session) SelectFinder(name string) error {
	if _, err := path.Lookup(name); err != nil {
		return err
	}
	s.finder = name
	return nil
}

// ToggleFinder switches to the next registered finder.
func (s *Session) ToggleFinder() string {
	names := path.Finders()
	for i, n := range names {
		if n == s.finder {
			s.finder = names[(i+1)%len(names)]
			return s.finder
		}
	}
	s.finder = names[0]
	return s.finder
}

// FindPath searches between a and b with the selected finder and keeps the
// result. found is false when no route exists.
func (s *Session) FindPath(a, b core.Point) (bool, error) {
	find, err := path.Lookup(s.finder)
	if err != nil {
		return false, err
	}
	route, found, err := find(s.Grid(), a, b)
	fields := logrus.Fields{"finder": s.finder, "from": a.String(), "to": b.String()}
	if err != nil {
		s.log.WithFields(fields).WithError(err).Warn("path request rejected")
		return false, err
	}
	s.path = route
	s.noRoute = !found
	if found {
		fields["length"] = route.Len()
	}
	s.log.WithFields(fields).WithField("found", found).Info("path search finished")
	return found, nil
}

// ClearPath forgets the last route.
func (s *Session) ClearPath() { s.dropPath() }

func (s *Session) dropPath() {
	s.path = nil
	s.noRoute = false
}

// Parameters reports the session state for display.
func (s *Session) Parameters() core.ParameterSnapshot {
	pathStatus := "none"
	switch {
	case s.path != nil:
		pathStatus = strconv.Itoa(s.path.Len()) + " cells"
	case s.noRoute:
		pathStatus = "no route"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Automaton", Params: []core.Parameter{
			{Key: "sim", Label: "Simulation", Type: core.ParamTypeText, Value: s.sim.Name()},
			{Key: "rule", Label: "Rule", Type: core.ParamTypeText, Value: rules.Format(s.sim.Rule())},
			{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.Itoa(s.gen)},
			{Key: "population", Label: "Population", Type: core.ParamTypeInt, Value: strconv.Itoa(s.Grid().Population())},
			{Key: "batch", Label: "Steps per rule", Type: core.ParamTypeInt, Value: strconv.Itoa(s.batch)},
			{Key: "density", Label: "Seed density", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(s.sim.Density(), 'f', 2, 64)},
		}},
		{Name: "Path", Params: []core.Parameter{
			{Key: "finder", Label: "Finder", Type: core.ParamTypeText, Value: s.finder},
			{Key: "path", Label: "Route", Type: core.ParamTypeText, Value: pathStatus},
		}},
	}}
}

// ParameterControls lists the values a HUD may adjust.
func (s *Session) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "batch", Label: "Steps per rule", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 1000, HasMax: true},
		{Key: "density", Label: "Seed density", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
	}
}

// SetIntParameter implements core.IntParameterSetter.
func (s *Session) SetIntParameter(key string, value int) bool {
	if key != "batch" || value < 1 {
		return false
	}
	s.batch = value
	return true
}

// SetFloatParameter implements core.FloatParameterSetter.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	if key != "density" || value < 0 || value > 1 {
		return false
	}
	s.sim.SetDensity(value)
	return true
}
