package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropad-tool/macropad-go/pkg/config"
	"github.com/macropad-tool/macropad-go/pkg/keymap"
)

// key returns a distinct single-step action for grid tests.
func key(code keymap.Code) keymap.Action {
	return keymap.KeySequence{KeySteps: []keymap.KeyStep{{Code: code}}}
}

// grid builds an authored action grid from codes.
func grid(codes [][]keymap.Code) [][]keymap.Action {
	out := make([][]keymap.Action, len(codes))
	for r, row := range codes {
		out[r] = make([]keymap.Action, len(row))
		for c, code := range row {
			out[r][c] = key(code)
		}
	}
	return out
}

// codesOf extracts the flattened codes back out of entries.
func codesOf(entries []Entry) []keymap.Code {
	out := make([]keymap.Code, len(entries))
	for i, e := range entries {
		out[i] = e.Action.(keymap.KeySequence).KeySteps[0].Code
	}
	return out
}

func compiled(o config.Orientation, rows, cols uint8, buttons [][]keymap.Action, knobs []config.CompiledKnob) *config.Compiled {
	return &config.Compiled{
		Orientation: o,
		Rows:        rows,
		Cols:        cols,
		Knobs:       uint8(len(knobs)),
		Layers: []config.CompiledLayer{
			{Buttons: buttons, Knobs: knobs},
		},
	}
}

func TestPhysicalButtonOrder(t *testing.T) {
	// Physical device is 2x3. Codes name authored positions.
	normalGrid := [][]keymap.Code{
		{1, 2, 3},
		{4, 5, 6},
	}
	// Rotated orientations are authored transposed (3x2).
	rotatedGrid := [][]keymap.Code{
		{1, 2},
		{3, 4},
		{5, 6},
	}

	tests := []struct {
		name     string
		o        config.Orientation
		authored [][]keymap.Code
		want     []keymap.Code
	}{
		{"normal is identity", config.Normal, normalGrid, []keymap.Code{1, 2, 3, 4, 5, 6}},
		{"upsidedown mirrors each row", config.UpsideDown, normalGrid, []keymap.Code{3, 2, 1, 6, 5, 4}},
		{"clockwise reads columns bottom-up", config.Clockwise, rotatedGrid, []keymap.Code{5, 3, 1, 6, 4, 2}},
		{"counterclockwise mirrors clockwise", config.CounterClockwise, rotatedGrid, []keymap.Code{2, 4, 6, 1, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := Physical(compiled(tt.o, 2, 3, grid(tt.authored), nil))
			require.Len(t, pl.Layers, 1)
			assert.Equal(t, tt.want, codesOf(pl.Layers[0].Entries))
		})
	}
}

func TestPhysicalPositions(t *testing.T) {
	knobs := []config.CompiledKnob{
		{CCW: key(10), Press: key(11), CW: key(12)},
	}
	pl := Physical(compiled(config.Normal, 2, 3, grid([][]keymap.Code{
		{1, 2, 3},
		{4, 5, 6},
	}), knobs))

	entries := pl.Layers[0].Entries
	require.Len(t, entries, 9)

	// Buttons take positions 1..6.
	for i := 0; i < 6; i++ {
		assert.Equal(t, uint8(i+1), entries[i].Position)
	}

	// Knob sub-actions start at KnobBase in cw, press, ccw order.
	assert.Equal(t, KnobBase, entries[6].Position)
	assert.Equal(t, key(12), entries[6].Action)
	assert.Equal(t, KnobBase+1, entries[7].Position)
	assert.Equal(t, key(11), entries[7].Action)
	assert.Equal(t, KnobBase+2, entries[8].Position)
	assert.Equal(t, key(10), entries[8].Action)
}

func TestKnobOrderReversal(t *testing.T) {
	knobs := []config.CompiledKnob{
		{CCW: key(10), Press: key(11), CW: key(12)},
		{CCW: key(20), Press: key(21), CW: key(22)},
	}
	buttons := grid([][]keymap.Code{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 30, 31, 32}})

	pl := Physical(compiled(config.UpsideDown, 3, 4, buttons, knobs))
	entries := pl.Layers[0].Entries
	// Second authored knob transmits first.
	assert.Equal(t, key(22), entries[12].Action)
	assert.Equal(t, key(12), entries[15].Action)

	pl = Physical(compiled(config.Normal, 3, 4, buttons, knobs))
	entries = pl.Layers[0].Entries
	assert.Equal(t, key(12), entries[12].Action)
	assert.Equal(t, key(22), entries[15].Action)
}

// Applying the clockwise transform and then the counterclockwise
// transform to its output recovers the original logical positions.
func TestRotationRoundTrip(t *testing.T) {
	authored := [][]keymap.Code{
		{1, 2},
		{3, 4},
		{5, 6},
	}

	// Clockwise: authored 3x2 grid on a 2x3 device.
	cw := Physical(compiled(config.Clockwise, 2, 3, grid(authored), nil))
	flat := codesOf(cw.Layers[0].Entries)

	// Reshape the physical 2x3 output into an authored grid for the
	// inverse pass.
	back := [][]keymap.Code{
		{flat[0], flat[1], flat[2]},
		{flat[3], flat[4], flat[5]},
	}

	// Counterclockwise: authored 2x3 grid on a 3x2 device.
	ccw := Physical(compiled(config.CounterClockwise, 3, 2, grid(back), nil))
	got := codesOf(ccw.Layers[0].Entries)

	assert.Equal(t, []keymap.Code{1, 2, 3, 4, 5, 6}, got)
}

func TestLayerNumbers(t *testing.T) {
	c := &config.Compiled{
		Orientation: config.Normal,
		Rows:        1, Cols: 1,
		Layers: []config.CompiledLayer{
			{Buttons: grid([][]keymap.Code{{1}})},
			{Buttons: grid([][]keymap.Code{{2}})},
			{Buttons: grid([][]keymap.Code{{3}})},
		},
	}
	pl := Physical(c)
	require.Len(t, pl.Layers, 3)
	for i, l := range pl.Layers {
		assert.Equal(t, uint8(i+1), l.Number)
	}
}
