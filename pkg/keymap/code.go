package keymap

import (
	"fmt"
	"strings"
)

// Code is a USB HID usage code for a base key. Zero means no base key
// (a bare modifier chord).
type Code uint8

// String returns the canonical name for the code, or the "<N>" custom
// syntax for codes outside the named table.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("<%d>", uint8(c))
}

// namedKey pairs a configuration name with its HID usage code.
// keyTable is ordered for help output; lookup maps are built in init.
type namedKey struct {
	name string
	code Code
}

var keyTable = []namedKey{
	{"a", 0x04}, {"b", 0x05}, {"c", 0x06}, {"d", 0x07}, {"e", 0x08},
	{"f", 0x09}, {"g", 0x0a}, {"h", 0x0b}, {"i", 0x0c}, {"j", 0x0d},
	{"k", 0x0e}, {"l", 0x0f}, {"m", 0x10}, {"n", 0x11}, {"o", 0x12},
	{"p", 0x13}, {"q", 0x14}, {"r", 0x15}, {"s", 0x16}, {"t", 0x17},
	{"u", 0x18}, {"v", 0x19}, {"w", 0x1a}, {"x", 0x1b}, {"y", 0x1c},
	{"z", 0x1d},
	{"1", 0x1e}, {"2", 0x1f}, {"3", 0x20}, {"4", 0x21}, {"5", 0x22},
	{"6", 0x23}, {"7", 0x24}, {"8", 0x25}, {"9", 0x26}, {"0", 0x27},
	{"enter", 0x28}, {"escape", 0x29}, {"backspace", 0x2a}, {"tab", 0x2b},
	{"space", 0x2c}, {"minus", 0x2d}, {"equal", 0x2e},
	{"leftbracket", 0x2f}, {"rightbracket", 0x30}, {"backslash", 0x31},
	{"nonushash", 0x32}, {"semicolon", 0x33}, {"quote", 0x34},
	{"grave", 0x35}, {"comma", 0x36}, {"dot", 0x37}, {"slash", 0x38},
	{"capslock", 0x39},
	{"f1", 0x3a}, {"f2", 0x3b}, {"f3", 0x3c}, {"f4", 0x3d}, {"f5", 0x3e},
	{"f6", 0x3f}, {"f7", 0x40}, {"f8", 0x41}, {"f9", 0x42}, {"f10", 0x43},
	{"f11", 0x44}, {"f12", 0x45},
	{"printscreen", 0x46}, {"scrolllock", 0x47}, {"pause", 0x48},
	{"insert", 0x49}, {"home", 0x4a}, {"pageup", 0x4b}, {"delete", 0x4c},
	{"end", 0x4d}, {"pagedown", 0x4e},
	{"right", 0x4f}, {"left", 0x50}, {"down", 0x51}, {"up", 0x52},
	{"numlock", 0x53}, {"numpadslash", 0x54}, {"numpadasterisk", 0x55},
	{"numpadminus", 0x56}, {"numpadplus", 0x57}, {"numpadenter", 0x58},
	{"numpad1", 0x59}, {"numpad2", 0x5a}, {"numpad3", 0x5b},
	{"numpad4", 0x5c}, {"numpad5", 0x5d}, {"numpad6", 0x5e},
	{"numpad7", 0x5f}, {"numpad8", 0x60}, {"numpad9", 0x61},
	{"numpad0", 0x62}, {"numpaddot", 0x63},
	{"nonusbackslash", 0x64}, {"application", 0x65}, {"power", 0x66},
	{"numpadequal", 0x67},
	{"f13", 0x68}, {"f14", 0x69}, {"f15", 0x6a}, {"f16", 0x6b},
	{"f17", 0x6c}, {"f18", 0x6d}, {"f19", 0x6e}, {"f20", 0x6f},
	{"f21", 0x70}, {"f22", 0x71}, {"f23", 0x72}, {"f24", 0x73},
}

var (
	keyCodes  = make(map[string]Code, len(keyTable))
	codeNames = make(map[Code]string, len(keyTable))
)

func init() {
	for _, k := range keyTable {
		keyCodes[k.name] = k.code
		codeNames[k.code] = k.name
	}
}

// LookupKey resolves a named key (case-insensitive).
func LookupKey(name string) (Code, bool) {
	c, ok := keyCodes[strings.ToLower(name)]
	return c, ok
}

// KeyNames returns all named keys in table order. Used by help output.
func KeyNames() []string {
	names := make([]string, len(keyTable))
	for i, k := range keyTable {
		names[i] = k.name
	}
	return names
}

// MediaCode is a USB HID consumer-page usage code for a multimedia key.
type MediaCode uint16

const (
	MediaNext       MediaCode = 0xb5
	MediaPrevious   MediaCode = 0xb6
	MediaStop       MediaCode = 0xb7
	MediaPlay       MediaCode = 0xcd
	MediaMute       MediaCode = 0xe2
	MediaVolumeUp   MediaCode = 0xe9
	MediaVolumeDown MediaCode = 0xea
	MediaFavorites  MediaCode = 0x182
	MediaCalculator MediaCode = 0x192
	MediaScreenLock MediaCode = 0x19e
)

// String returns the canonical configuration name of the media code.
func (c MediaCode) String() string {
	switch c {
	case MediaNext:
		return "next"
	case MediaPrevious:
		return "previous"
	case MediaStop:
		return "stop"
	case MediaPlay:
		return "play"
	case MediaMute:
		return "mute"
	case MediaVolumeUp:
		return "volumeup"
	case MediaVolumeDown:
		return "volumedown"
	case MediaFavorites:
		return "favorites"
	case MediaCalculator:
		return "calculator"
	case MediaScreenLock:
		return "screenlock"
	default:
		return "unknown"
	}
}

var mediaNames = map[string]MediaCode{
	"next":       MediaNext,
	"previous":   MediaPrevious,
	"prev":       MediaPrevious,
	"stop":       MediaStop,
	"play":       MediaPlay,
	"mute":       MediaMute,
	"volumeup":   MediaVolumeUp,
	"volumedown": MediaVolumeDown,
	"favorites":  MediaFavorites,
	"calculator": MediaCalculator,
	"screenlock": MediaScreenLock,
}

// LookupMedia resolves a multimedia key name (case-insensitive).
func LookupMedia(name string) (MediaCode, bool) {
	c, ok := mediaNames[strings.ToLower(name)]
	return c, ok
}

// MediaNames returns the accepted spellings for each media key,
// canonical spelling first. Used by help output.
func MediaNames() [][]string {
	return [][]string{
		{"next"},
		{"previous", "prev"},
		{"stop"},
		{"play"},
		{"mute"},
		{"volumeup"},
		{"volumedown"},
		{"favorites"},
		{"calculator"},
		{"screenlock"},
	}
}
