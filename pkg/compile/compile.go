// Package compile turns a validated mapping document into the ordered
// feature report stream a device session writes out. It is the only
// package a frontend needs besides profile lookup and config loading.
package compile

import (
	"errors"
	"fmt"

	"github.com/macropad-tool/macropad-go/pkg/config"
	"github.com/macropad-tool/macropad-go/pkg/layout"
	"github.com/macropad-tool/macropad-go/pkg/profile"
	"github.com/macropad-tool/macropad-go/pkg/wire"
)

// MaxLEDMode is the highest LED mode the firmware understands.
// 0 turns the backlight off, 1 keeps it on, 2-5 select reactive
// effects.
const MaxLEDMode = 5

// Sentinel errors.
var (
	// ErrInvalidConfig is returned when validation produced errors;
	// the accompanying report carries the details.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidLEDMode is returned for LED modes outside 0..MaxLEDMode.
	ErrInvalidLEDMode = errors.New("invalid led mode")

	// ErrInvalidLayer is returned for layer numbers outside 1..3.
	ErrInvalidLayer = errors.New("invalid layer number")
)

// ValidateOnly runs validation without producing packets.
func ValidateOnly(mp *config.Macropad, prof profile.DeviceProfile) *config.Report {
	_, report := config.Validate(mp, prof)
	return report
}

// CompileProgram validates the document against the profile and, when
// it is clean, encodes the full programming stream: every mapped
// position on every layer in firmware transmission order, terminated
// by the finish packet. The report is always returned so callers can
// surface notices even on success.
func CompileProgram(mp *config.Macropad, prof profile.DeviceProfile) ([]wire.Packet, *config.Report, error) {
	compiled, report := config.Validate(mp, prof)
	if !report.OK() {
		return nil, report, ErrInvalidConfig
	}

	physical := layout.Physical(compiled)

	var packets []wire.Packet
	for _, l := range physical.Layers {
		for _, e := range l.Entries {
			packets = append(packets, wire.EncodeAction(prof, e.Position, l.Number, e.Action)...)
		}
	}
	packets = append(packets, wire.EncodeFinish(prof))
	return packets, report, nil
}

// CompileLED builds the single packet that sets the LED mode for one
// layer. Fails on profiles without LED support.
func CompileLED(prof profile.DeviceProfile, mode uint8, layer uint8, color wire.LEDColor) (wire.Packet, error) {
	if !prof.SupportsLED {
		return nil, fmt.Errorf("%w: %s has no backlight", profile.ErrUnsupportedFeature, prof)
	}
	if mode > MaxLEDMode {
		return nil, fmt.Errorf("%w: %d (valid: 0..%d)", ErrInvalidLEDMode, mode, MaxLEDMode)
	}
	if layer < 1 || layer > config.NumLayers {
		return nil, fmt.Errorf("%w: %d (valid: 1..%d)", ErrInvalidLayer, layer, config.NumLayers)
	}
	return wire.EncodeLED(prof, mode, layer, color), nil
}
