package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	cases := []struct {
		name     string
		rule     Fixed
		birth    []uint8
		survival []uint8
	}{
		{"seeds", Seeds, []uint8{2}, []uint8{}},
		{"life", Life, []uint8{3}, []uint8{2, 3}},
		{"maze", Maze, []uint8{3}, []uint8{1, 2, 3, 4, 5}},
		{"mazecetric", Mazecetric, []uint8{3}, []uint8{1, 2, 3, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.birth, tc.rule.Birth())
			assert.Equal(t, tc.survival, tc.rule.Survival())

			got, ok := Preset(tc.name)
			require.True(t, ok)
			assert.Equal(t, tc.rule, got)
		})
	}
	assert.Equal(t, []string{"life", "maze", "mazecetric", "seeds"}, Names())
}

func TestFixedToDynamicIsLossless(t *testing.T) {
	for _, f := range []Fixed{Seeds, Life, Maze, Mazecetric} {
		d := f.Dynamic()
		assert.Equal(t, f.Birth(), d.Birth())
		assert.Equal(t, f.Survival(), d.Survival())
		assert.True(t, Equivalent(f, d))
		assert.Equal(t, f, NewFixed(d.Birth(), d.Survival()))
	}
}

func TestParseLifeMatchesPreset(t *testing.T) {
	d, err := Parse("B3S23")
	require.NoError(t, err)
	assert.True(t, Equivalent(d, Life))
	assert.Equal(t, "B3/S23", Format(d))
}

func TestParse(t *testing.T) {
	cases := []struct {
		in       string
		birth    []uint8
		survival []uint8
	}{
		{"B3/S23", []uint8{3}, []uint8{2, 3}},
		{"b36s23", []uint8{3, 6}, []uint8{2, 3}},
		{"S23B3", []uint8{3}, []uint8{2, 3}},
		{"B2S", []uint8{2}, []uint8{}},
		{"BS", []uint8{}, []uint8{}},
		{"B3x5S12", []uint8{3}, []uint8{1, 2}},
		{"B33S9", []uint8{3}, []uint8{}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			d, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.birth, d.Birth())
			assert.Equal(t, tc.survival, d.Survival())
		})
	}
}

func TestParseMissingMarker(t *testing.T) {
	for _, in := range []string{"", "23/3", "B3", "S23"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrRuleSyntax, "Parse(%q)", in)
	}
}

func TestLookup(t *testing.T) {
	r, err := Lookup(" Maze ")
	require.NoError(t, err)
	assert.Equal(t, Maze, r)

	r, err = Lookup("B3/S1235")
	require.NoError(t, err)
	assert.Equal(t, "B3/S1235", Format(r))

	_, err = Lookup("highlife")
	assert.ErrorIs(t, err, ErrUnknownRule)
}

func TestCompile(t *testing.T) {
	table := Compile(Life)
	for k := 0; k <= MaxNeighbors; k++ {
		assert.Equal(t, k == 3, table.Next(false, k), "birth k=%d", k)
		assert.Equal(t, k == 2 || k == 3, table.Next(true, k), "survival k=%d", k)
	}

	odd := Compile(NewDynamic([]uint8{9, 1}, nil))
	assert.True(t, odd.Next(false, 1))
	assert.False(t, odd.Next(true, 1))
}

func TestDynamicThresholdsAreCopies(t *testing.T) {
	in := []uint8{3}
	d := NewDynamic(in, []uint8{2, 3})
	in[0] = 5
	d.Birth()[0] = 6
	d.Survival()[1] = 8

	assert.Equal(t, []uint8{3}, d.Birth())
	assert.Equal(t, []uint8{2, 3}, d.Survival())
	assert.True(t, Equivalent(Life, d))
}

func TestNilRule(t *testing.T) {
	assert.Equal(t, "B/S", Format(nil))
	table := Compile(nil)
	for k := 0; k <= MaxNeighbors; k++ {
		assert.False(t, table.Next(false, k))
		assert.False(t, table.Next(true, k))
	}
}
