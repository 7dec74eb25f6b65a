// Package profile holds the static capability table for known macropad
// models. Profiles are immutable and looked up by USB product ID; the
// table is compiled in and not externally configurable.
package profile

import (
	"errors"
	"fmt"
)

// VendorID is the USB vendor ID shared by all supported macropads.
const VendorID uint16 = 0x1189

// MaxChords is the chord chain limit; every known profile shares it.
const MaxChords = 17

// Sentinel errors.
var (
	// ErrUnknownProduct is returned for a product ID with no profile.
	ErrUnknownProduct = errors.New("unknown product id")

	// ErrUnsupportedFeature is returned when an operation requires a
	// capability the profile lacks (e.g. LED commands).
	ErrUnsupportedFeature = errors.New("unsupported feature for this device")
)

// Opcodes is the command opcode set a device family understands.
type Opcodes struct {
	// Program introduces a key/knob mapping packet.
	Program uint8

	// LED introduces an LED mode packet.
	LED uint8

	// Finish introduces the end-of-programming packet that commits
	// the transferred mappings to device nvram.
	Finish uint8
}

// DeviceProfile describes one macropad model: geometry, capability
// flags and report packet parameters. Values are immutable; Lookup
// returns copies.
type DeviceProfile struct {
	Name      string
	VendorID  uint16
	ProductID uint16

	// Geometry. Buttons form a Rows x Cols grid; Knobs rotary
	// encoders sit alongside it.
	Rows  uint8
	Cols  uint8
	Knobs uint8

	// SupportsDelay gates whether nonzero per-step delay bytes are
	// emitted. When false, authored delays are silently downgraded to
	// zero (the validator reports a notice).
	SupportsDelay bool

	// SupportsLED gates the LED command path. Requesting an LED
	// command on a profile without it is a fatal error.
	SupportsLED bool

	// PacketSize is the feature report size in bytes, including the
	// report ID byte. Actions whose step records exceed one packet's
	// capacity are split across continuation packets.
	PacketSize int

	Opcodes Opcodes
}

// Buttons returns the button count of the grid.
func (p DeviceProfile) Buttons() int {
	return int(p.Rows) * int(p.Cols)
}

// String returns a short identifier like "884x (0x8840)".
func (p DeviceProfile) String() string {
	return fmt.Sprintf("%s (0x%04x)", p.Name, p.ProductID)
}

// profiles is the compiled capability table, one entry per known
// product ID.
var profiles = []DeviceProfile{
	{
		Name:          "884x",
		VendorID:      VendorID,
		ProductID:     0x8840,
		Rows:          3,
		Cols:          4,
		Knobs:         2,
		SupportsDelay: true,
		SupportsLED:   true,
		PacketSize:    65,
		Opcodes:       Opcodes{Program: 0xfd, LED: 0xb0, Finish: 0xaa},
	},
	{
		Name:          "884x",
		VendorID:      VendorID,
		ProductID:     0x8842,
		Rows:          2,
		Cols:          3,
		Knobs:         1,
		SupportsDelay: true,
		SupportsLED:   true,
		PacketSize:    65,
		Opcodes:       Opcodes{Program: 0xfd, LED: 0xb0, Finish: 0xaa},
	},
	{
		// The 8890 firmware takes at most five step records per
		// packet, so long chains go out as continuation packets.
		Name:          "8890",
		VendorID:      VendorID,
		ProductID:     0x8890,
		Rows:          1,
		Cols:          4,
		Knobs:         0,
		SupportsDelay: false,
		SupportsLED:   true,
		PacketSize:    24,
		Opcodes:       Opcodes{Program: 0xfd, LED: 0xb0, Finish: 0xaa},
	},
	{
		Name:          "8880",
		VendorID:      VendorID,
		ProductID:     0x8880,
		Rows:          2,
		Cols:          3,
		Knobs:         1,
		SupportsDelay: false,
		SupportsLED:   false,
		PacketSize:    65,
		Opcodes:       Opcodes{Program: 0xfd, LED: 0xb0, Finish: 0xaa},
	},
}

// Lookup returns the profile for a product ID.
func Lookup(productID uint16) (DeviceProfile, error) {
	for _, p := range profiles {
		if p.ProductID == productID {
			return p, nil
		}
	}
	return DeviceProfile{}, fmt.Errorf("%w: 0x%04x", ErrUnknownProduct, productID)
}

// ProductIDs returns the known product IDs in table order.
func ProductIDs() []uint16 {
	ids := make([]uint16, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ProductID
	}
	return ids
}
