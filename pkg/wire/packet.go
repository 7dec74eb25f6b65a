package wire

import (
	"fmt"

	"github.com/macropad-tool/macropad-go/pkg/keymap"
	"github.com/macropad-tool/macropad-go/pkg/profile"
)

// ReportID is the first byte of every feature report.
const ReportID uint8 = 0x03

const (
	headerLen = 8
	stepLen   = 3
)

// Action type tags, header byte 4.
const (
	TypeKey   uint8 = 1
	TypeMedia uint8 = 2
	TypeMouse uint8 = 3
)

// Wheel direction bytes, step record byte 2 of a mouse step.
const (
	wheelNone uint8 = 0x00
	wheelUp   uint8 = 0x01
	wheelDown uint8 = 0xff
)

// Packet is one complete feature report, already sized to the target
// profile's packet size.
type Packet []byte

// String renders the packet as space-separated hex bytes.
func (p Packet) String() string {
	out := make([]byte, 0, len(p)*3)
	for i, b := range p {
		if i > 0 {
			out = append(out, ' ')
		}
		out = fmt.Appendf(out, "%02x", b)
	}
	return string(out)
}

// LEDColor is the backlight color byte of an LED packet.
type LEDColor uint8

const (
	ColorRed    LEDColor = 0x10
	ColorOrange LEDColor = 0x20
	ColorYellow LEDColor = 0x30
	ColorGreen  LEDColor = 0x40
	ColorCyan   LEDColor = 0x50
	ColorBlue   LEDColor = 0x60
	ColorPurple LEDColor = 0x70
)

// ledColorNames maps configuration names to color bytes.
var ledColorNames = map[string]LEDColor{
	"red":    ColorRed,
	"orange": ColorOrange,
	"yellow": ColorYellow,
	"green":  ColorGreen,
	"cyan":   ColorCyan,
	"blue":   ColorBlue,
	"purple": ColorPurple,
}

// String returns the configuration name of the color.
func (c LEDColor) String() string {
	for name, v := range ledColorNames {
		if v == c {
			return name
		}
	}
	return fmt.Sprintf("<0x%02x>", uint8(c))
}

// LookupLEDColor resolves an LED color name.
func LookupLEDColor(name string) (LEDColor, bool) {
	c, ok := ledColorNames[name]
	return c, ok
}

// LEDColorNames returns the accepted color names in byte order.
func LEDColorNames() []string {
	return []string{"red", "orange", "yellow", "green", "cyan", "blue", "purple"}
}

// stepRecord is one encoded step, 3 bytes.
type stepRecord [stepLen]uint8

// delayByte converts a millisecond delay to 100 ms wire units, rounded
// to nearest. Profiles without delay support always emit zero.
func delayByte(ms uint16, supportsDelay bool) uint8 {
	if !supportsDelay {
		return 0
	}
	return uint8((ms + 50) / 100)
}

// encodeSteps flattens an action into its type tag and step records.
func encodeSteps(act keymap.Action, supportsDelay bool) (uint8, []stepRecord) {
	switch a := act.(type) {
	case keymap.KeySequence:
		recs := make([]stepRecord, len(a.KeySteps))
		for i, s := range a.KeySteps {
			recs[i] = stepRecord{s.Mods.Mask(), uint8(s.Code), delayByte(s.DelayMS, supportsDelay)}
		}
		return TypeKey, recs
	case keymap.MediaKey:
		return TypeMedia, []stepRecord{{
			uint8(a.Code >> 8),
			uint8(a.Code & 0xff),
			delayByte(a.DelayMS, supportsDelay),
		}}
	case keymap.MouseCombo:
		return TypeMouse, []stepRecord{{uint8(a.Mods), uint8(a.Buttons), wheelNone}}
	case keymap.WheelEvent:
		w := wheelUp
		if a.Direction == keymap.WheelDown {
			w = wheelDown
		}
		return TypeMouse, []stepRecord{{uint8(a.Mods), 0x00, w}}
	default:
		panic(fmt.Sprintf("wire: unhandled action type %T", act))
	}
}

// stepCapacity returns how many step records fit in one packet.
func stepCapacity(p profile.DeviceProfile) int {
	return (p.PacketSize - headerLen) / stepLen
}

// EncodeAction encodes one mapped action for a physical position into
// one or more programming packets. Position and layer follow the
// firmware numbering: buttons 1..n, knob sub-actions from 0x10, layers
// 1..3.
func EncodeAction(p profile.DeviceProfile, position, layer uint8, act keymap.Action) []Packet {
	tag, recs := encodeSteps(act, p.SupportsDelay)
	capacity := stepCapacity(p)
	total := len(recs)

	var packets []Packet
	for idx := 0; len(recs) > 0 || idx == 0; idx++ {
		n := len(recs)
		if n > capacity {
			n = capacity
		}
		pkt := make(Packet, p.PacketSize)
		pkt[0] = ReportID
		pkt[1] = p.Opcodes.Program
		pkt[2] = position
		pkt[3] = layer
		pkt[4] = tag
		pkt[5] = uint8(idx)
		pkt[6] = uint8(total)
		for i := 0; i < n; i++ {
			copy(pkt[headerLen+i*stepLen:], recs[i][:])
		}
		packets = append(packets, pkt)
		recs = recs[n:]
	}
	return packets
}

// EncodeLED builds the LED mode packet. The caller is responsible for
// checking profile support and mode bounds.
func EncodeLED(p profile.DeviceProfile, mode uint8, layer uint8, color LEDColor) Packet {
	pkt := make(Packet, p.PacketSize)
	pkt[0] = ReportID
	pkt[1] = p.Opcodes.LED
	pkt[2] = mode
	pkt[3] = layer
	pkt[4] = uint8(color)
	return pkt
}

// EncodeFinish builds the end-of-programming packet that commits the
// transferred mappings.
func EncodeFinish(p profile.DeviceProfile) Packet {
	pkt := make(Packet, p.PacketSize)
	pkt[0] = ReportID
	pkt[1] = p.Opcodes.Finish
	return pkt
}
