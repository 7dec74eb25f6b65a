// Package keymap implements the textual key-mapping grammar used in
// macropad configuration files.
//
// A mapping string describes what a button or knob sub-action emits:
//
//   - Key chords, optionally chained: "ctrl-alt-a" or "ctrl-a,ctrl-s".
//     A chord is zero or more modifiers plus an optional base key; a
//     bare modifier chord like "win" is valid. Up to 17 chords may be
//     chained with commas on buttons; knob sub-actions take a single
//     chord. A chord may carry a leading per-step delay: "500ms-ctrl-a".
//   - Media keys: "volumeup", "play", "mute", ... Single token, no
//     modifiers.
//   - Mouse events: "click", "click+rclick", "ctrl-wheeldown". Buttons
//     combine with "+"; only ctrl, shift and alt are legal modifiers.
//
// A mapping string resolves to exactly one category (key, media or
// mouse); mixing categories in one string is an error. Parsing is
// all-or-nothing: either the whole string parses or a GrammarError
// describing the offending token and its 1-based position is returned.
//
// Key and modifier names are matched case-insensitively. Raw HID usage
// codes outside the named table can be given in decimal as "<110>".
package keymap
