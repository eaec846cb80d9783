package glyphwalk

import "github.com/google/uuid"

// Slot is one character position in the document.
//
// A symbol slot carries a live latent Address that the stepper moves while
// keys are held. The space slot has no address and a fixed blank image.
type Slot struct {
	// ID identifies the slot across inserts and deletes. Inference results
	// are routed by ID, never by index.
	ID uuid.UUID

	// Symbols blended into this slot, in insertion order. Never empty.
	Symbols []Symbol

	// Address is the slot's current latent position; nil for a space slot.
	Address Vector

	// Image is the most recently applied frame, or nil while the first
	// result is pending.
	Image *Frame

	issued  uint64 // sequence of the last issued request
	applied uint64 // sequence of the frame currently in Image
	// inFlight counts issued requests that have not completed yet.
	inFlight int
	// pending is the latest address computed while the in-flight limit was
	// reached. Newer targets replace older ones.
	pending Vector
}

func newSymbolSlot(s Symbol, addr Vector) *Slot {
	return &Slot{
		ID:      uuid.New(),
		Symbols: []Symbol{s},
		Address: addr.Clone(),
	}
}

func newSpaceSlot() *Slot {
	blank := BlankFrame()
	return &Slot{
		ID:      uuid.New(),
		Symbols: []Symbol{Space},
		Image:   &blank,
	}
}

// IsSpace reports whether the slot is the fixed blank glyph.
func (s *Slot) IsSpace() bool {
	return s.Address == nil
}

// Pending reports whether no frame has been applied yet.
func (s *Slot) Pending() bool {
	return s.Image == nil
}

// Label returns the slot's symbols as a string.
func (s *Slot) Label() string {
	return JoinSymbols(s.Symbols)
}

// Clone returns a copy of the slot's visible state. Request bookkeeping is
// not copied.
func (s *Slot) Clone() *Slot {
	c := &Slot{
		ID:      s.ID,
		Symbols: append([]Symbol(nil), s.Symbols...),
		Address: s.Address.Clone(),
	}
	if s.Image != nil {
		img := *s.Image
		c.Image = &img
	}
	return c
}
