package keymap

import "strings"

// Modifier identifies a single modifier key by its bit position in the
// wire-format modifier mask. Right-hand modifiers are distinct bits
// from their left-hand counterparts.
type Modifier uint8

const (
	ModCtrl Modifier = iota
	ModShift
	ModAlt
	ModWin
	ModRightCtrl
	ModRightShift
	ModRightAlt
	ModRightWin

	numModifiers = 8
)

// String returns the canonical configuration name of the modifier.
func (m Modifier) String() string {
	switch m {
	case ModCtrl:
		return "ctrl"
	case ModShift:
		return "shift"
	case ModAlt:
		return "alt"
	case ModWin:
		return "win"
	case ModRightCtrl:
		return "rctrl"
	case ModRightShift:
		return "rshift"
	case ModRightAlt:
		return "ralt"
	case ModRightWin:
		return "rwin"
	default:
		return "unknown"
	}
}

// Modifiers is a set of modifier keys encoded as a bitmask, one bit
// per Modifier. The zero value is the empty set.
type Modifiers uint8

// Add returns the set with m added.
func (s Modifiers) Add(m Modifier) Modifiers {
	return s | 1<<m
}

// Has reports whether m is in the set.
func (s Modifiers) Has(m Modifier) bool {
	return s&(1<<m) != 0
}

// IsEmpty reports whether no modifiers are set.
func (s Modifiers) IsEmpty() bool {
	return s == 0
}

// Mask returns the raw wire-format bitmask.
func (s Modifiers) Mask() uint8 {
	return uint8(s)
}

// String returns the canonical names of all set modifiers joined
// with "-", in bit order (left-hand modifiers first).
func (s Modifiers) String() string {
	var names []string
	for m := Modifier(0); m < numModifiers; m++ {
		if s.Has(m) {
			names = append(names, m.String())
		}
	}
	return strings.Join(names, "-")
}

// modifierNames maps every accepted modifier spelling to its Modifier.
// "opt"/"cmd" are the macOS spellings of alt/win.
var modifierNames = map[string]Modifier{
	"ctrl":   ModCtrl,
	"shift":  ModShift,
	"alt":    ModAlt,
	"opt":    ModAlt,
	"win":    ModWin,
	"cmd":    ModWin,
	"rctrl":  ModRightCtrl,
	"rshift": ModRightShift,
	"ralt":   ModRightAlt,
	"ropt":   ModRightAlt,
	"rwin":   ModRightWin,
	"rcmd":   ModRightWin,
}

// LookupModifier resolves a modifier name (case-insensitive).
func LookupModifier(name string) (Modifier, bool) {
	m, ok := modifierNames[strings.ToLower(name)]
	return m, ok
}

// ModifierNames returns the accepted spellings for each modifier in
// bit order, canonical spelling first. Used by help output.
func ModifierNames() [][]string {
	return [][]string{
		{"ctrl"},
		{"shift"},
		{"alt", "opt"},
		{"win", "cmd"},
		{"rctrl"},
		{"rshift"},
		{"ralt", "ropt"},
		{"rwin", "rcmd"},
	}
}
