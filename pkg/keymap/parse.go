package keymap

import (
	"strconv"
	"strings"
)

const (
	// MaxChords is the longest key-chord chain any supported device
	// accepts for one button.
	MaxChords = 17

	// MaxDelayMS is the largest per-step delay the devices accept.
	MaxDelayMS = 6000
)

// Context selects the chain limit for a mapping string. Buttons accept
// chained key sequences; knob sub-actions are single-step.
type Context int

const (
	ContextButton Context = iota
	ContextKnob
)

// chainLimit returns the maximum chord token count for the context.
func (c Context) chainLimit() int {
	if c == ContextKnob {
		return 1
	}
	return MaxChords
}

// Parse parses one mapping string into its canonical Action. Parsing
// is all-or-nothing: on any failure the returned error is a
// *GrammarError and the Action is nil.
func Parse(text string, ctx Context) (Action, error) {
	tokens := strings.Split(text, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}

	if limit := ctx.chainLimit(); len(tokens) > limit {
		return nil, grammarErr(ErrTooManyChords, tokens[limit], limit+1,
			"at most "+strconv.Itoa(limit)+" chords per action")
	}

	var (
		category Category
		parsed   = make([]Action, len(tokens))
	)
	for i, token := range tokens {
		a, err := parseToken(token, i+1)
		if err != nil {
			return nil, err
		}
		parsed[i] = a

		if i == 0 {
			category = a.Category()
		} else if a.Category() != category {
			return nil, grammarErr(ErrMixedCategory, token, i+1,
				category.String()+" action cannot be combined with a "+
					a.Category().String()+" token")
		}
	}

	// Mouse and media actions are single-token only.
	if category != CategoryKey {
		if len(tokens) > 1 {
			return nil, grammarErr(ErrTooManyChords, tokens[1], 2,
				category.String()+" actions cannot be chained")
		}
		return parsed[0], nil
	}

	var steps []KeyStep
	for _, a := range parsed {
		steps = append(steps, a.(KeySequence).KeySteps...)
	}
	return KeySequence{KeySteps: steps}, nil
}

// parseToken parses one comma-separated token. Key tokens come back as
// a single-step KeySequence.
func parseToken(token string, pos int) (Action, error) {
	if token == "" {
		return nil, grammarErr(ErrEmptyChord, token, pos, "")
	}

	segments := strings.Split(token, "-")
	for _, seg := range segments {
		if seg == "" {
			return nil, grammarErr(ErrEmptyChord, token, pos, "empty segment")
		}
	}

	delay, segments, err := splitDelay(segments, token, pos)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, grammarErr(ErrEmptyChord, token, pos, "delay without a chord")
	}

	last := segments[len(segments)-1]
	leading := segments[:len(segments)-1]

	// Every leading segment must be a modifier regardless of category.
	var mods Modifiers
	for _, seg := range leading {
		m, ok := LookupModifier(seg)
		if !ok {
			return nil, grammarErr(ErrUnknownModifier, token, pos, "segment "+strconv.Quote(seg))
		}
		mods = mods.Add(m)
	}

	// A token may end in a modifier: a bare modifier press.
	if m, ok := LookupModifier(last); ok {
		return KeySequence{KeySteps: []KeyStep{{DelayMS: delay, Mods: mods.Add(m)}}}, nil
	}

	if code, ok := LookupKey(last); ok {
		return KeySequence{KeySteps: []KeyStep{{DelayMS: delay, Mods: mods, Code: code}}}, nil
	}
	if code, ok := parseCustomCode(last); ok {
		return KeySequence{KeySteps: []KeyStep{{DelayMS: delay, Mods: mods, Code: code}}}, nil
	}

	if media, ok := LookupMedia(last); ok {
		if !mods.IsEmpty() {
			return nil, grammarErr(ErrMixedCategory, token, pos, "media keys cannot take modifiers")
		}
		return MediaKey{DelayMS: delay, Code: media}, nil
	}

	if dir, buttons, ok := parseMouseSpec(last); ok {
		mouseMods, err := mouseModifiers(mods, token, pos)
		if err != nil {
			return nil, err
		}
		if buttons != 0 {
			return MouseCombo{DelayMS: delay, Mods: mouseMods, Buttons: buttons}, nil
		}
		return WheelEvent{DelayMS: delay, Mods: mouseMods, Direction: dir}, nil
	}

	return nil, grammarErr(ErrUnknownKey, token, pos, "segment "+strconv.Quote(last))
}

// splitDelay strips an optional leading "<N>ms" segment and returns
// the delay in milliseconds.
func splitDelay(segments []string, token string, pos int) (uint16, []string, error) {
	first := strings.ToLower(segments[0])
	if !strings.HasSuffix(first, "ms") {
		return 0, segments, nil
	}
	digits := strings.TrimSuffix(first, "ms")
	if digits == "" {
		return 0, segments, nil
	}
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		// Not all digits: treat as an ordinary (unknown) segment.
		return 0, segments, nil
	}
	if n > MaxDelayMS {
		return 0, nil, grammarErr(ErrInvalidDelay, token, pos,
			"delay must be at most "+strconv.Itoa(MaxDelayMS)+" ms")
	}
	return uint16(n), segments[1:], nil
}

// parseCustomCode parses the "<N>" decimal HID code syntax.
func parseCustomCode(s string) (Code, bool) {
	if len(s) < 3 || s[0] != '<' || s[len(s)-1] != '>' {
		return 0, false
	}
	n, err := strconv.ParseUint(s[1:len(s)-1], 10, 8)
	if err != nil || n == 0 {
		return 0, false
	}
	return Code(n), true
}

// parseMouseSpec parses the final segment of a mouse token: either a
// wheel direction or one or more "+"-joined buttons. ok is false when
// the segment is not mouse syntax at all.
func parseMouseSpec(s string) (WheelDirection, MouseButtons, bool) {
	switch strings.ToLower(s) {
	case "wheelup":
		return WheelUp, 0, true
	case "wheeldown":
		return WheelDown, 0, true
	}

	var buttons MouseButtons
	for _, part := range strings.Split(s, "+") {
		b, ok := LookupMouseButton(part)
		if !ok {
			return 0, 0, false
		}
		buttons |= b
	}
	return 0, buttons, true
}

// mouseModifiers converts general modifiers to the mouse-event set,
// rejecting modifiers the devices cannot attach to mouse events.
func mouseModifiers(mods Modifiers, token string, pos int) (MouseModifiers, error) {
	var out MouseModifiers
	for m := Modifier(0); m < numModifiers; m++ {
		if !mods.Has(m) {
			continue
		}
		mm, ok := mouseModifier(m)
		if !ok {
			return 0, grammarErr(ErrInvalidMouseModifier, token, pos,
				"only ctrl, shift and alt may modify mouse events")
		}
		out |= mm
	}
	return out, nil
}
