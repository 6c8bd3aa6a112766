package lifelike

import (
	"strconv"

	"mazes/internal/core"
	"mazes/internal/rules"
)

// Config holds parameters for a life-like simulation.
type Config struct {
	Width   int
	Height  int
	Rule    rules.Rule
	Density float64
	Workers int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Rule: rules.Life, Density: 0.5, Workers: 1}
}

// FromMap populates a Config from a string map. Unparseable entries keep
// their defaults, and so does a size core.CheckDims rejects.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if core.CheckDims(c.Width, c.Height) != nil {
		def := DefaultConfig()
		c.Width, c.Height = def.Width, def.Height
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := rules.Lookup(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	return c
}

// NewWithConfig builds an Automaton over an empty grid described by c.
func NewWithConfig(c Config) (*Automaton, error) {
	a, err := NewFromDims(c.Width, c.Height, c.Rule)
	if err != nil {
		return nil, err
	}
	a.density = c.Density
	a.SetWorkers(c.Workers)
	return a, nil
}

func register(name string, preset rules.Rule) {
	core.Register(name, func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		if _, ok := cfg["rule"]; !ok && preset != nil {
			c.Rule = preset
		}
		a, err := NewWithConfig(c)
		if err != nil {
			// FromMap only yields sizes core.CheckDims accepts.
			panic(err)
		}
		a.name = name
		return a
	})
}

func init() {
	register("lifelike", nil)
	for _, name := range rules.Names() {
		preset, _ := rules.Preset(name)
		register(name, preset)
	}
}
