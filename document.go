package glyphwalk

import (
	"fmt"

	"github.com/google/uuid"
)

// Document is the ordered sequence of slots plus a cursor.
//
// The cursor is an insertion point in [0, Len()]: slots before it are to
// the left of the caret. Document is not safe for concurrent use; the
// Controller is its only writer.
type Document struct {
	slots  []*Slot
	cursor int
}

// NewDocument returns an empty document with the cursor at 0.
func NewDocument() *Document {
	return &Document{}
}

// Len returns the number of slots.
func (d *Document) Len() int {
	return len(d.slots)
}

// Cursor returns the insertion point.
func (d *Document) Cursor() int {
	return d.cursor
}

// SetCursor moves the cursor, clamped to [0, Len()].
func (d *Document) SetCursor(i int) {
	d.cursor = max(0, min(i, len(d.slots)))
}

// MoveCursor moves the cursor by delta, clamped to [0, Len()].
func (d *Document) MoveCursor(delta int) {
	d.SetCursor(d.cursor + delta)
}

// Get returns the slot at index i.
func (d *Document) Get(i int) (*Slot, error) {
	if i < 0 || i >= len(d.slots) {
		return nil, fmt.Errorf("%w: get %d of %d", ErrIndexOutOfRange, i, len(d.slots))
	}
	return d.slots[i], nil
}

// InsertAt inserts slot before index i (i == Len() appends). The cursor is
// not moved.
func (d *Document) InsertAt(i int, slot *Slot) error {
	if i < 0 || i > len(d.slots) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, i, len(d.slots))
	}
	d.slots = append(d.slots, nil)
	copy(d.slots[i+1:], d.slots[i:])
	d.slots[i] = slot
	return nil
}

// RemoveAt removes and returns the slot at index i. The cursor is clamped
// if it now points past the end.
func (d *Document) RemoveAt(i int) (*Slot, error) {
	if i < 0 || i >= len(d.slots) {
		return nil, fmt.Errorf("%w: remove %d of %d", ErrIndexOutOfRange, i, len(d.slots))
	}
	s := d.slots[i]
	copy(d.slots[i:], d.slots[i+1:])
	d.slots[len(d.slots)-1] = nil
	d.slots = d.slots[:len(d.slots)-1]
	d.SetCursor(d.cursor)
	return s, nil
}

// IndexOf returns the index of the slot with the given ID, or -1.
func (d *Document) IndexOf(id uuid.UUID) int {
	for i, s := range d.slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Slots returns the slots in order. The slice is a copy; the slots are not.
func (d *Document) Slots() []*Slot {
	return append([]*Slot(nil), d.slots...)
}

// Text returns the first symbol of every slot, in order.
func (d *Document) Text() string {
	b := make([]Symbol, 0, len(d.slots))
	for _, s := range d.slots {
		b = append(b, s.Symbols[0])
	}
	return JoinSymbols(b)
}

// Clone returns a deep copy of the visible document state, suitable for
// handing to display code on another goroutine.
func (d *Document) Clone() *Document {
	c := &Document{cursor: d.cursor, slots: make([]*Slot, len(d.slots))}
	for i, s := range d.slots {
		c.slots[i] = s.Clone()
	}
	return c
}
