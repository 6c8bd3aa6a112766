// Package rules describes life-like birth/survival rules.
//
// A Rule exposes two sets of live-neighbor counts. A dead cell with k live
// Moore neighbors is born when k is a birth count; a live cell survives when
// k is a survival count and dies otherwise.
package rules

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MaxNeighbors is the largest possible Moore-neighborhood count.
const MaxNeighbors = 8

var (
	// ErrRuleSyntax indicates a rule string without a 'B' or 'S' marker.
	ErrRuleSyntax = errors.New("rules: rule must contain B and S markers")
	// ErrUnknownRule indicates a name that is neither a preset nor a rule string.
	ErrUnknownRule = errors.New("rules: unknown rule")
)

// Rule is the capability shared by every rule variant.
type Rule interface {
	Birth() []uint8
	Survival() []uint8
}

// Mask is a set of neighbor counts, bit k set when count k is a member.
type Mask uint16

// MaskOf builds a Mask from counts. Counts above MaxNeighbors are dropped.
func MaskOf(counts ...uint8) Mask {
	var m Mask
	for _, c := range counts {
		if c <= MaxNeighbors {
			m |= 1 << c
		}
	}
	return m
}

// Has reports whether count k is in the set.
func (m Mask) Has(k int) bool { return k >= 0 && k <= MaxNeighbors && m&(1<<k) != 0 }

// Counts lists the members in ascending order.
func (m Mask) Counts() []uint8 {
	out := make([]uint8, 0, MaxNeighbors+1)
	for k := 0; k <= MaxNeighbors; k++ {
		if m.Has(k) {
			out = append(out, uint8(k))
		}
	}
	return out
}

// Fixed is a rule whose thresholds are fixed when it is declared. It is a
// comparable value, used for the named presets.
type Fixed struct {
	B, S Mask
}

// NewFixed builds a Fixed rule from explicit counts.
func NewFixed(birth, survival []uint8) Fixed {
	return Fixed{B: MaskOf(birth...), S: MaskOf(survival...)}
}

func (f Fixed) Birth() []uint8    { return f.B.Counts() }
func (f Fixed) Survival() []uint8 { return f.S.Counts() }

// Dynamic converts f into a runtime rule with the same thresholds.
func (f Fixed) Dynamic() Dynamic { return NewDynamic(f.Birth(), f.Survival()) }

func (f Fixed) String() string { return Format(f) }

// Presets.
var (
	Seeds      = Fixed{B: MaskOf(2)}
	Life       = Fixed{B: MaskOf(3), S: MaskOf(2, 3)}
	Maze       = Fixed{B: MaskOf(3), S: MaskOf(1, 2, 3, 4, 5)}
	Mazecetric = Fixed{B: MaskOf(3), S: MaskOf(1, 2, 3, 4)}
)

var presets = map[string]Fixed{
	"seeds":      Seeds,
	"life":       Life,
	"maze":       Maze,
	"mazecetric": Mazecetric,
}

// Names lists the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset returns the named preset, matched case-insensitively.
func Preset(name string) (Fixed, bool) {
	f, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Dynamic is a rule whose thresholds are supplied at runtime.
type Dynamic struct {
	birth    []uint8
	survival []uint8
}

// NewDynamic copies the given thresholds into a new rule.
func NewDynamic(birth, survival []uint8) Dynamic {
	return Dynamic{
		birth:    append([]uint8{}, birth...),
		survival: append([]uint8{}, survival...),
	}
}

// Birth and Survival return copies; editing them does not change d.
func (d Dynamic) Birth() []uint8    { return slices.Clone(d.birth) }
func (d Dynamic) Survival() []uint8 { return slices.Clone(d.survival) }

func (d Dynamic) String() string { return Format(d) }

// ToDynamic returns r as a Dynamic rule.
func ToDynamic(r Rule) Dynamic {
	switch v := r.(type) {
	case Dynamic:
		return v
	case Fixed:
		return v.Dynamic()
	}
	return NewDynamic(r.Birth(), r.Survival())
}

// Parse reads "B<digits>S<digits>" notation. The markers are matched
// case-insensitively and may appear in either order. Each segment takes the
// digits right after its marker and stops at the first non-digit, so "B3/S23"
// and "b3s23" are the same rule. Counts above 8 and duplicates are dropped.
func Parse(s string) (Dynamic, error) {
	lower := strings.ToLower(s)
	bi := strings.IndexByte(lower, 'b')
	si := strings.IndexByte(lower, 's')
	if bi < 0 || si < 0 {
		return Dynamic{}, fmt.Errorf("%w: %q", ErrRuleSyntax, s)
	}
	return Dynamic{
		birth:    leadingCounts(lower[bi+1:]),
		survival: leadingCounts(lower[si+1:]),
	}, nil
}

func leadingCounts(s string) []uint8 {
	var m Mask
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		m |= MaskOf(c - '0')
	}
	return m.Counts()
}

// Lookup resolves a preset name, falling back to rule notation.
func Lookup(name string) (Rule, error) {
	if f, ok := Preset(name); ok {
		return f, nil
	}
	d, err := Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, name)
	}
	return d, nil
}

// Format renders r as "B<digits>/S<digits>" with sorted, unique counts.
// A nil rule renders as "B/S".
func Format(r Rule) string {
	if r == nil {
		return "B/S"
	}
	var b strings.Builder
	b.WriteByte('B')
	for _, c := range MaskOf(r.Birth()...).Counts() {
		b.WriteByte('0' + c)
	}
	b.WriteString("/S")
	for _, c := range MaskOf(r.Survival()...).Counts() {
		b.WriteByte('0' + c)
	}
	return b.String()
}

// Equivalent reports whether a and b have the same birth and survival sets.
func Equivalent(a, b Rule) bool {
	return MaskOf(a.Birth()...) == MaskOf(b.Birth()...) &&
		MaskOf(a.Survival()...) == MaskOf(b.Survival()...)
}

// Table is a rule compiled for per-cell lookup: Table[alive][k].
type Table [2][MaxNeighbors + 1]bool

// Compile builds the lookup table for r. A nil rule compiles to the empty
// table, under which every cell dies.
func Compile(r Rule) Table {
	var t Table
	if r == nil {
		return t
	}
	for _, k := range r.Birth() {
		if k <= MaxNeighbors {
			t[0][k] = true
		}
	}
	for _, k := range r.Survival() {
		if k <= MaxNeighbors {
			t[1][k] = true
		}
	}
	return t
}

// Next returns the next state of a cell with k live neighbors.
func (t *Table) Next(alive bool, k int) bool {
	if alive {
		return t[1][k]
	}
	return t[0][k]
}
