package keymap

import (
	"fmt"
	"strings"
)

// Category classifies what a mapping string emits. Every token in one
// mapping string must resolve to the same category.
type Category uint8

const (
	CategoryKey Category = iota
	CategoryMedia
	CategoryMouse
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryKey:
		return "key"
	case CategoryMedia:
		return "media"
	case CategoryMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

// Action is the canonical form of one parsed mapping string. Exactly
// one concrete type backs each value: KeySequence, MediaKey,
// MouseCombo or WheelEvent.
type Action interface {
	fmt.Stringer

	// Category returns the action's category. WheelEvent and
	// MouseCombo are both CategoryMouse.
	Category() Category

	// Steps returns the number of wire steps the action serializes to.
	Steps() int
}

// KeyStep is one chord in a key sequence: a modifier set, an optional
// base key (Code zero means none) and a delay applied before the
// press, in milliseconds.
type KeyStep struct {
	DelayMS uint16
	Mods    Modifiers
	Code    Code
}

// String returns the canonical text form of the step.
func (s KeyStep) String() string {
	var b strings.Builder
	if s.DelayMS > 0 {
		fmt.Fprintf(&b, "%dms-", s.DelayMS)
	}
	b.WriteString(s.Mods.String())
	if s.Code != 0 {
		if !s.Mods.IsEmpty() {
			b.WriteByte('-')
		}
		b.WriteString(s.Code.String())
	}
	return b.String()
}

// KeySequence is a chained sequence of key chords.
type KeySequence struct {
	KeySteps []KeyStep
}

// Category returns CategoryKey.
func (a KeySequence) Category() Category { return CategoryKey }

// Steps returns the chord count.
func (a KeySequence) Steps() int { return len(a.KeySteps) }

// String returns the canonical text form, chords joined with ",".
func (a KeySequence) String() string {
	parts := make([]string, len(a.KeySteps))
	for i, s := range a.KeySteps {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

// MediaKey is a single multimedia key press.
type MediaKey struct {
	DelayMS uint16
	Code    MediaCode
}

// Category returns CategoryMedia.
func (a MediaKey) Category() Category { return CategoryMedia }

// Steps returns 1.
func (a MediaKey) Steps() int { return 1 }

// String returns the canonical media key name.
func (a MediaKey) String() string {
	if a.DelayMS > 0 {
		return fmt.Sprintf("%dms-%s", a.DelayMS, a.Code)
	}
	return a.Code.String()
}

// MouseCombo is one or more mouse buttons pressed together, with an
// optional modifier set.
type MouseCombo struct {
	DelayMS uint16
	Mods    MouseModifiers
	Buttons MouseButtons
}

// Category returns CategoryMouse.
func (a MouseCombo) Category() Category { return CategoryMouse }

// Steps returns 1.
func (a MouseCombo) Steps() int { return 1 }

// String returns the canonical text form, e.g. "ctrl-click+rclick".
func (a MouseCombo) String() string {
	var b strings.Builder
	if a.DelayMS > 0 {
		fmt.Fprintf(&b, "%dms-", a.DelayMS)
	}
	if !a.Mods.IsEmpty() {
		b.WriteString(a.Mods.String())
		b.WriteByte('-')
	}
	b.WriteString(a.Buttons.String())
	return b.String()
}

// WheelEvent is a scroll wheel movement with an optional modifier set.
type WheelEvent struct {
	DelayMS   uint16
	Mods      MouseModifiers
	Direction WheelDirection
}

// Category returns CategoryMouse.
func (a WheelEvent) Category() Category { return CategoryMouse }

// Steps returns 1.
func (a WheelEvent) Steps() int { return 1 }

// String returns the canonical text form, e.g. "ctrl-wheeldown".
func (a WheelEvent) String() string {
	var b strings.Builder
	if a.DelayMS > 0 {
		fmt.Fprintf(&b, "%dms-", a.DelayMS)
	}
	if !a.Mods.IsEmpty() {
		b.WriteString(a.Mods.String())
		b.WriteByte('-')
	}
	b.WriteString(a.Direction.String())
	return b.String()
}
