package config

import (
	"fmt"
	"strings"
)

// ValidationKind classifies structural validation errors.
type ValidationKind int

const (
	// LayerCountMismatch means the document does not have exactly
	// three layers.
	LayerCountMismatch ValidationKind = iota

	// GridShapeMismatch means a layer's button grid does not match
	// the shape the profile and orientation require.
	GridShapeMismatch

	// KnobCountMismatch means a layer's knob entry count does not
	// match the profile's knob count.
	KnobCountMismatch

	// DeviceMismatch means the device section's declared geometry
	// disagrees with the profile.
	DeviceMismatch

	// GrammarMismatch wraps a mapping-string parse failure.
	GrammarMismatch
)

// String returns the kind name.
func (k ValidationKind) String() string {
	switch k {
	case LayerCountMismatch:
		return "layer count mismatch"
	case GridShapeMismatch:
		return "grid shape mismatch"
	case KnobCountMismatch:
		return "knob count mismatch"
	case DeviceMismatch:
		return "device section mismatch"
	case GrammarMismatch:
		return "invalid mapping"
	default:
		return "validation error"
	}
}

// ValidationError describes one validation failure with enough
// coordinates to point the user at the offending entry. Layer is
// 1-based; Row/Col/Knob are 0-based; a value of -1 means the
// coordinate does not apply.
type ValidationError struct {
	Kind  ValidationKind
	Layer int
	Row   int
	Col   int
	Knob  int

	// Sub is the knob sub-action name ("ccw", "press", "cw"), empty
	// for buttons and structural errors.
	Sub string

	// Text is the offending mapping string for grammar errors.
	Text string

	// Detail describes structural mismatches.
	Detail string

	// Err is the underlying grammar error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if c := e.coord(); c != "" {
		b.WriteString(" at ")
		b.WriteString(c)
	}
	if e.Text != "" {
		fmt.Fprintf(&b, " %q", e.Text)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying grammar error, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// coord renders the error's position inside the document.
func (e *ValidationError) coord() string {
	if e.Layer < 1 {
		return ""
	}
	switch {
	case e.Knob >= 0:
		if e.Sub != "" {
			return fmt.Sprintf("layer %d knob %d %s", e.Layer, e.Knob, e.Sub)
		}
		return fmt.Sprintf("layer %d knob %d", e.Layer, e.Knob)
	case e.Row >= 0 && e.Col >= 0:
		return fmt.Sprintf("layer %d button [%d][%d]", e.Layer, e.Row, e.Col)
	default:
		return fmt.Sprintf("layer %d", e.Layer)
	}
}

// Notice is a non-fatal validation finding, e.g. a delay downgrade on
// a device without delay support.
type Notice struct {
	Layer   int
	Coord   string
	Message string
}

// String renders the notice for display.
func (n Notice) String() string {
	if n.Coord != "" {
		return fmt.Sprintf("%s: %s", n.Coord, n.Message)
	}
	return n.Message
}

// Report aggregates every validation finding for one run so the user
// can fix all problems in a single pass.
type Report struct {
	Errors  []*ValidationError
	Notices []Notice
}

// OK reports whether validation found no errors. Notices do not make
// a report fail.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

func (r *Report) addError(e *ValidationError) {
	r.Errors = append(r.Errors, e)
}

func (r *Report) addNotice(layer int, coord, message string) {
	r.Notices = append(r.Notices, Notice{Layer: layer, Coord: coord, Message: message})
}
