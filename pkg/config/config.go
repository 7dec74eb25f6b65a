// Package config defines the macropad mapping document, its YAML
// schema and the validator that cross-checks a document against a
// device profile and the mapping grammar.
//
// A mapping document:
//
//	device:
//	  orientation: normal
//	  rows: 2
//	  cols: 3
//	  knobs: 1
//	layers:
//	  - buttons:
//	      - ["ctrl-a,ctrl-s", "b", "c"]
//	      - ["d", "e", "f"]
//	    knobs:
//	      - ccw: volumedown
//	        press: mute
//	        cw: volumeup
//	  ...
//
// Every document carries exactly three layers; the hardware has a
// physical layer selector with three positions.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// NumLayers is the layer count of all known macropads.
const NumLayers = 3

// Orientation describes how the device sits on the desk relative to
// the authored layout. It affects transmission order only.
type Orientation uint8

const (
	Normal Orientation = iota
	UpsideDown
	Clockwise
	CounterClockwise
)

// String returns the configuration spelling of the orientation.
func (o Orientation) String() string {
	switch o {
	case Normal:
		return "normal"
	case UpsideDown:
		return "upsidedown"
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	default:
		return "unknown"
	}
}

// Transposed reports whether the authored grid is written in swapped
// (cols x rows) shape. True for the rotated orientations.
func (o Orientation) Transposed() bool {
	return o == Clockwise || o == CounterClockwise
}

// ParseOrientation resolves an orientation name (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "normal", "":
		return Normal, nil
	case "upsidedown":
		return UpsideDown, nil
	case "clockwise":
		return Clockwise, nil
	case "counterclockwise":
		return CounterClockwise, nil
	default:
		return Normal, fmt.Errorf("unknown orientation %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Orientation) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseOrientation(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (o Orientation) MarshalYAML() (any, error) {
	return o.String(), nil
}

// Macropad is the root of a mapping document.
type Macropad struct {
	Device Device  `yaml:"device"`
	Layers []Layer `yaml:"layers"`
}

// Device is the device section: orientation and authored geometry.
type Device struct {
	Orientation Orientation `yaml:"orientation"`
	Rows        uint8       `yaml:"rows"`
	Cols        uint8       `yaml:"cols"`
	Knobs       uint8       `yaml:"knobs"`
}

// Layer is one of the three key-mapping sets: a button grid in
// authored order plus one entry per knob.
type Layer struct {
	Buttons [][]string `yaml:"buttons"`
	Knobs   []Knob     `yaml:"knobs"`
}

// Knob holds the three mapping strings of one rotary encoder.
type Knob struct {
	CCW   string `yaml:"ccw"`
	Press string `yaml:"press"`
	CW    string `yaml:"cw"`
}

// Parse parses a mapping document from YAML bytes. Structural
// validation against a profile is a separate step; see Validate.
func Parse(data []byte) (*Macropad, error) {
	var mp Macropad
	if err := yaml.Unmarshal(data, &mp); err != nil {
		return nil, fmt.Errorf("failed to parse mapping document: %w", err)
	}
	return &mp, nil
}

// Load reads and parses a mapping document from a file.
func Load(path string) (*Macropad, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping document: %w", err)
	}
	return Parse(data)
}
