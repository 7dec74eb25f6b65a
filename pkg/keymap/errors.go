package keymap

import "fmt"

// ErrorKind classifies grammar errors.
type ErrorKind int

const (
	// ErrUnknownKey means the final segment of a chord token is not a
	// named key, media key, mouse event or "<N>" custom code.
	ErrUnknownKey ErrorKind = iota

	// ErrUnknownModifier means a non-final segment is not a modifier.
	ErrUnknownModifier

	// ErrMixedCategory means tokens of different categories appear in
	// one mapping string, or a media key carries modifiers.
	ErrMixedCategory

	// ErrTooManyChords means the chain exceeds the allowed token
	// count (17 for buttons, 1 for knob sub-actions and for mouse and
	// media actions).
	ErrTooManyChords

	// ErrEmptyChord means a token (or a "-" segment) is empty.
	ErrEmptyChord

	// ErrInvalidMouseModifier means a mouse or wheel event carries a
	// modifier other than ctrl, shift or alt.
	ErrInvalidMouseModifier

	// ErrInvalidDelay means a delay prefix is out of the 0..6000 ms
	// range.
	ErrInvalidDelay
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownKey:
		return "unknown key name"
	case ErrUnknownModifier:
		return "unknown modifier"
	case ErrMixedCategory:
		return "mixed action categories"
	case ErrTooManyChords:
		return "too many chords"
	case ErrEmptyChord:
		return "empty chord"
	case ErrInvalidMouseModifier:
		return "invalid mouse modifier"
	case ErrInvalidDelay:
		return "invalid delay"
	default:
		return "grammar error"
	}
}

// GrammarError describes why a mapping string failed to parse. It
// always carries the offending token and its 1-based position so the
// user can locate the problem inside a chained sequence.
type GrammarError struct {
	Kind     ErrorKind
	Token    string
	Position int

	// Detail adds kind-specific context, e.g. the rejected segment or
	// the chord limit.
	Detail string
}

// Error implements the error interface.
func (e *GrammarError) Error() string {
	msg := fmt.Sprintf("%s: %q (token %d)", e.Kind, e.Token, e.Position)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func grammarErr(kind ErrorKind, token string, pos int, detail string) *GrammarError {
	return &GrammarError{Kind: kind, Token: token, Position: pos, Detail: detail}
}
