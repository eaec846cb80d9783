package glyphwalk

import "strings"

// Symbol is a single key character. Only ASCII letters, digits and the
// space character are meaningful to the engine.
type Symbol rune

// Space is the symbol of the fixed blank glyph.
const Space Symbol = ' '

// String returns the symbol as a one-character string.
func (s Symbol) String() string {
	return string(rune(s))
}

// IsAlphaNum reports whether s is an ASCII letter or digit.
func (s Symbol) IsAlphaNum() bool {
	switch {
	case s >= 'a' && s <= 'z':
		return true
	case s >= 'A' && s <= 'Z':
		return true
	case s >= '0' && s <= '9':
		return true
	}
	return false
}

// AlphaNum returns every alphanumeric symbol in ascending order.
func AlphaNum() []Symbol {
	out := make([]Symbol, 0, 62)
	for r := '0'; r <= '9'; r++ {
		out = append(out, Symbol(r))
	}
	for r := 'A'; r <= 'Z'; r++ {
		out = append(out, Symbol(r))
	}
	for r := 'a'; r <= 'z'; r++ {
		out = append(out, Symbol(r))
	}
	return out
}

// JoinSymbols concatenates symbols into a string.
func JoinSymbols(syms []Symbol) string {
	var b strings.Builder
	for _, s := range syms {
		b.WriteRune(rune(s))
	}
	return b.String()
}

// KeyKind identifies the physical key behind an Event.
type KeyKind uint8

const (
	// KeySymbol is a character key; Event.Symbol holds the character.
	KeySymbol KeyKind = iota
	// KeyBackspace deletes the slot before the cursor.
	KeyBackspace
	// KeySpace inserts the blank glyph.
	KeySpace
	// KeyArrowLeft moves the cursor one slot left.
	KeyArrowLeft
	// KeyArrowRight moves the cursor one slot right.
	KeyArrowRight
)

// String returns the DOM-style key name.
func (k KeyKind) String() string {
	switch k {
	case KeySymbol:
		return "Symbol"
	case KeyBackspace:
		return "Backspace"
	case KeySpace:
		return "Space"
	case KeyArrowLeft:
		return "ArrowLeft"
	case KeyArrowRight:
		return "ArrowRight"
	default:
		return "Unknown"
	}
}

// Event is a single key transition.
type Event struct {
	Kind   KeyKind
	Symbol Symbol
	// Up is true for a key release. Only KeySymbol releases are meaningful.
	Up bool
}

// KeyDown returns the press event for a character key.
func KeyDown(s Symbol) Event {
	return Event{Kind: KeySymbol, Symbol: s}
}

// KeyUp returns the release event for a character key.
func KeyUp(s Symbol) Event {
	return Event{Kind: KeySymbol, Symbol: s, Up: true}
}

// Press returns the press event for a control key.
func Press(k KeyKind) Event {
	e := Event{Kind: k}
	if k == KeySpace {
		e.Symbol = Space
	}
	return e
}

// ParseKey converts a DOM-style key name ("a", " ", "Backspace",
// "ArrowLeft", ...) into a press event. It reports false for keys the
// engine does not handle.
func ParseKey(name string) (Event, bool) {
	switch name {
	case "Backspace":
		return Press(KeyBackspace), true
	case " ", "Space", "space":
		return Press(KeySpace), true
	case "ArrowLeft", "left":
		return Press(KeyArrowLeft), true
	case "ArrowRight", "right":
		return Press(KeyArrowRight), true
	}
	r := []rune(name)
	if len(r) != 1 {
		return Event{}, false
	}
	s := Symbol(r[0])
	if !s.IsAlphaNum() {
		return Event{}, false
	}
	return KeyDown(s), true
}
