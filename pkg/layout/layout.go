// Package layout derives the firmware transmission order of a
// validated mapping from its authored order and orientation.
//
// Button grids are authored for the Normal orientation; when the
// device sits rotated or flipped on the desk the firmware still
// expects buttons in its own fixed physical order. The transform here
// is purely geometric: it changes transmission order only, never which
// action belongs to which physical position's meaning.
package layout

import (
	"github.com/macropad-tool/macropad-go/pkg/config"
	"github.com/macropad-tool/macropad-go/pkg/keymap"
)

// KnobBase is the firmware position of the first knob sub-action.
// Buttons occupy positions 1..rows*cols; each knob then takes three
// consecutive positions in cw, press, ccw order.
const KnobBase uint8 = 0x10

// Entry pairs an action with the firmware position it programs.
type Entry struct {
	Position uint8
	Action   keymap.Action
}

// Layer is one layer's entries in exact transmission order: buttons
// first, then knob sub-actions.
type Layer struct {
	// Number is the 1-based layer index sent to the device.
	Number  uint8
	Entries []Entry
}

// PhysicalLayout is a compiled mapping reordered for transmission.
type PhysicalLayout struct {
	Layers []Layer
}

// Physical produces the firmware transmission order for every layer.
// It is a pure function of the compiled configuration.
func Physical(c *config.Compiled) *PhysicalLayout {
	out := &PhysicalLayout{}
	for li, layer := range c.Layers {
		pl := Layer{Number: uint8(li + 1)}

		pos := uint8(1)
		for _, action := range physicalButtons(c.Orientation, layer.Buttons, int(c.Rows), int(c.Cols)) {
			pl.Entries = append(pl.Entries, Entry{Position: pos, Action: action})
			pos++
		}

		knobPos := KnobBase
		for _, knob := range physicalKnobs(c.Orientation, layer.Knobs) {
			pl.Entries = append(pl.Entries,
				Entry{Position: knobPos, Action: knob.CW},
				Entry{Position: knobPos + 1, Action: knob.Press},
				Entry{Position: knobPos + 2, Action: knob.CCW},
			)
			knobPos += 3
		}

		out.Layers = append(out.Layers, pl)
	}
	return out
}

// physicalButtons flattens the authored grid into physical row-major
// order. rows and cols are the physical grid dimensions; for the
// rotated orientations the authored grid is shaped cols x rows.
func physicalButtons(o config.Orientation, authored [][]keymap.Action, rows, cols int) []keymap.Action {
	out := make([]keymap.Action, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out = append(out, buttonAt(o, authored, rows, cols, r, c))
		}
	}
	return out
}

// buttonAt resolves the authored cell feeding physical position (r, c).
func buttonAt(o config.Orientation, a [][]keymap.Action, rows, cols, r, c int) keymap.Action {
	switch o {
	case config.UpsideDown:
		// Mirror each row.
		return a[r][cols-1-c]
	case config.Clockwise:
		// Physical row r is authored column r, read bottom-up.
		return a[cols-1-c][r]
	case config.CounterClockwise:
		// Both axes mirrored relative to Clockwise.
		return a[c][rows-1-r]
	default:
		return a[r][c]
	}
}

// physicalKnobs reorders knobs for transmission. The mirrored
// orientations reverse the left-to-right knob order; Clockwise keeps
// the authored top-to-bottom order.
func physicalKnobs(o config.Orientation, knobs []config.CompiledKnob) []config.CompiledKnob {
	if o != config.UpsideDown && o != config.CounterClockwise {
		return knobs
	}
	out := make([]config.CompiledKnob, len(knobs))
	for i, k := range knobs {
		out[len(knobs)-1-i] = k
	}
	return out
}
