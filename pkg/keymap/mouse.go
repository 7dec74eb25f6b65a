package keymap

import "strings"

// MouseButtons is a set of mouse buttons encoded as the wire-format
// bitmask (left=0x01, right=0x02, middle=0x04).
type MouseButtons uint8

const (
	MouseLeft   MouseButtons = 0x01
	MouseRight  MouseButtons = 0x02
	MouseMiddle MouseButtons = 0x04
)

// IsEmpty reports whether no buttons are set.
func (b MouseButtons) IsEmpty() bool { return b == 0 }

// String returns the button names joined with "+", in mask order.
func (b MouseButtons) String() string {
	var names []string
	if b&MouseLeft != 0 {
		names = append(names, "click")
	}
	if b&MouseRight != 0 {
		names = append(names, "rclick")
	}
	if b&MouseMiddle != 0 {
		names = append(names, "mclick")
	}
	return strings.Join(names, "+")
}

var mouseButtonNames = map[string]MouseButtons{
	"click":  MouseLeft,
	"rclick": MouseRight,
	"mclick": MouseMiddle,
}

// LookupMouseButton resolves a mouse button name (case-insensitive).
func LookupMouseButton(name string) (MouseButtons, bool) {
	b, ok := mouseButtonNames[strings.ToLower(name)]
	return b, ok
}

// WheelDirection is a scroll wheel direction.
type WheelDirection uint8

const (
	WheelUp WheelDirection = iota
	WheelDown
)

// String returns the configuration name of the wheel direction.
func (d WheelDirection) String() string {
	if d == WheelUp {
		return "wheelup"
	}
	return "wheeldown"
}

// MouseModifiers is a set of modifiers legal for mouse and wheel
// events, encoded as the wire-format bitmask. Only ctrl, shift and alt
// exist here; the devices cannot combine mouse events with win or
// right-hand modifiers.
type MouseModifiers uint8

const (
	MouseModCtrl  MouseModifiers = 0x01
	MouseModShift MouseModifiers = 0x02
	MouseModAlt   MouseModifiers = 0x04
)

// IsEmpty reports whether no modifiers are set.
func (m MouseModifiers) IsEmpty() bool { return m == 0 }

// String returns the modifier names joined with "-", in mask order.
func (m MouseModifiers) String() string {
	var names []string
	if m&MouseModCtrl != 0 {
		names = append(names, "ctrl")
	}
	if m&MouseModShift != 0 {
		names = append(names, "shift")
	}
	if m&MouseModAlt != 0 {
		names = append(names, "alt")
	}
	return strings.Join(names, "-")
}

// mouseModifier maps a general modifier to its mouse-event form.
// Returns false for modifiers the devices reject on mouse events.
func mouseModifier(m Modifier) (MouseModifiers, bool) {
	switch m {
	case ModCtrl:
		return MouseModCtrl, true
	case ModShift:
		return MouseModShift, true
	case ModAlt:
		return MouseModAlt, true
	default:
		return 0, false
	}
}
