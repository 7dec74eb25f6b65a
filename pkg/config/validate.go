package config

import (
	"fmt"

	"github.com/macropad-tool/macropad-go/pkg/keymap"
	"github.com/macropad-tool/macropad-go/pkg/profile"
)

// Compiled is a validated mapping document with every mapping string
// parsed into its canonical action. Button grids keep the authored
// order; the orientation mapper derives transmission order from it.
type Compiled struct {
	Orientation Orientation

	// Physical geometry, from the profile.
	Rows  uint8
	Cols  uint8
	Knobs uint8

	Layers []CompiledLayer
}

// CompiledLayer is one validated layer.
type CompiledLayer struct {
	Buttons [][]keymap.Action
	Knobs   []CompiledKnob
}

// CompiledKnob holds the three parsed actions of one rotary encoder.
type CompiledKnob struct {
	CCW   keymap.Action
	Press keymap.Action
	CW    keymap.Action
}

// Validate cross-checks a mapping document against a device profile
// and the mapping grammar. All failures across the whole document are
// aggregated into the report rather than stopping at the first one.
// The compiled form is returned only when the report has no errors.
func Validate(mp *Macropad, prof profile.DeviceProfile) (*Compiled, *Report) {
	report := &Report{}

	if mp.Device.Rows != prof.Rows || mp.Device.Cols != prof.Cols {
		report.addError(&ValidationError{
			Kind: DeviceMismatch, Layer: 0, Row: -1, Col: -1, Knob: -1,
			Detail: fmt.Sprintf("device section declares %dx%d buttons, profile %s has %dx%d",
				mp.Device.Rows, mp.Device.Cols, prof, prof.Rows, prof.Cols),
		})
	}
	if mp.Device.Knobs != prof.Knobs {
		report.addError(&ValidationError{
			Kind: DeviceMismatch, Layer: 0, Row: -1, Col: -1, Knob: -1,
			Detail: fmt.Sprintf("device section declares %d knobs, profile %s has %d",
				mp.Device.Knobs, prof, prof.Knobs),
		})
	}

	if len(mp.Layers) != NumLayers {
		report.addError(&ValidationError{
			Kind: LayerCountMismatch, Layer: 0, Row: -1, Col: -1, Knob: -1,
			Detail: fmt.Sprintf("got %d layers, device has exactly %d", len(mp.Layers), NumLayers),
		})
	}

	// Authored grid shape: rotated orientations are written transposed.
	expRows, expCols := int(prof.Rows), int(prof.Cols)
	if mp.Device.Orientation.Transposed() {
		expRows, expCols = expCols, expRows
	}

	compiled := &Compiled{
		Orientation: mp.Device.Orientation,
		Rows:        prof.Rows,
		Cols:        prof.Cols,
		Knobs:       prof.Knobs,
	}

	for li, layer := range mp.Layers {
		layerNum := li + 1

		if !gridShapeOK(layer.Buttons, expRows, expCols) {
			report.addError(&ValidationError{
				Kind: GridShapeMismatch, Layer: layerNum, Row: -1, Col: -1, Knob: -1,
				Detail: fmt.Sprintf("expected %dx%d buttons for %s orientation, got %s",
					expRows, expCols, mp.Device.Orientation, gridShape(layer.Buttons)),
			})
		}
		if len(layer.Knobs) != int(prof.Knobs) {
			report.addError(&ValidationError{
				Kind: KnobCountMismatch, Layer: layerNum, Row: -1, Col: -1, Knob: -1,
				Detail: fmt.Sprintf("got %d knob entries, profile %s has %d knobs",
					len(layer.Knobs), prof, prof.Knobs),
			})
		}

		cl := CompiledLayer{}
		for ri, row := range layer.Buttons {
			actions := make([]keymap.Action, len(row))
			for ci, text := range row {
				action, err := keymap.Parse(text, keymap.ContextButton)
				if err != nil {
					report.addError(&ValidationError{
						Kind: GrammarMismatch, Layer: layerNum, Row: ri, Col: ci, Knob: -1,
						Text: text, Err: err,
					})
					continue
				}
				actions[ci] = action
				checkDelay(report, prof, action, layerNum,
					fmt.Sprintf("layer %d button [%d][%d]", layerNum, ri, ci))
			}
			cl.Buttons = append(cl.Buttons, actions)
		}

		for ki, knob := range layer.Knobs {
			ck := CompiledKnob{}
			for _, sub := range []struct {
				name string
				text string
				dst  *keymap.Action
			}{
				{"ccw", knob.CCW, &ck.CCW},
				{"press", knob.Press, &ck.Press},
				{"cw", knob.CW, &ck.CW},
			} {
				action, err := keymap.Parse(sub.text, keymap.ContextKnob)
				if err != nil {
					report.addError(&ValidationError{
						Kind: GrammarMismatch, Layer: layerNum, Row: -1, Col: -1,
						Knob: ki, Sub: sub.name, Text: sub.text, Err: err,
					})
					continue
				}
				*sub.dst = action
				checkDelay(report, prof, action, layerNum,
					fmt.Sprintf("layer %d knob %d %s", layerNum, ki, sub.name))
			}
			cl.Knobs = append(cl.Knobs, ck)
		}

		compiled.Layers = append(compiled.Layers, cl)
	}

	if !report.OK() {
		return nil, report
	}
	return compiled, report
}

// checkDelay records a downgrade notice when an authored delay will be
// ignored because the profile lacks delay support.
func checkDelay(r *Report, prof profile.DeviceProfile, action keymap.Action, layer int, coord string) {
	if prof.SupportsDelay {
		return
	}
	if maxDelay(action) > 0 {
		r.addNotice(layer, coord,
			fmt.Sprintf("%s does not support delays; authored delay will be programmed as 0", prof))
	}
}

// maxDelay returns the largest authored per-step delay in the action.
func maxDelay(action keymap.Action) uint16 {
	switch a := action.(type) {
	case keymap.KeySequence:
		var max uint16
		for _, s := range a.KeySteps {
			if s.DelayMS > max {
				max = s.DelayMS
			}
		}
		return max
	case keymap.MediaKey:
		return a.DelayMS
	case keymap.MouseCombo:
		return a.DelayMS
	case keymap.WheelEvent:
		return a.DelayMS
	default:
		return 0
	}
}

// gridShapeOK reports whether buttons form a full rows x cols grid.
func gridShapeOK(buttons [][]string, rows, cols int) bool {
	if len(buttons) != rows {
		return false
	}
	for _, row := range buttons {
		if len(row) != cols {
			return false
		}
	}
	return true
}

// gridShape renders the observed (possibly ragged) shape for errors.
func gridShape(buttons [][]string) string {
	if len(buttons) == 0 {
		return "0x0"
	}
	cols := len(buttons[0])
	for _, row := range buttons[1:] {
		if len(row) != cols {
			return fmt.Sprintf("%d ragged rows", len(buttons))
		}
	}
	return fmt.Sprintf("%dx%d", len(buttons), cols)
}
