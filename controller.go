package glyphwalk

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Controller interprets key events and ticks.
//
// It owns the held-key set and the document. A key press with nothing else
// held types a new slot; further keys pressed while holding blend into the
// slot before the cursor, which the stepper then walks on every Tick.
//
// Controller is not safe for concurrent use. All methods must be called
// from one goroutine; Engine.Run is that goroutine in a running program.
type Controller struct {
	table   AddressTable
	stepper *Stepper
	sub     Submitter
	doc     *Document

	held    []Symbol // press order
	arrived bool
	limit   int
	last    time.Time
}

// NewController creates a controller that issues inference requests to sub.
func NewController(table AddressTable, sub Submitter, opts ...Option) (*Controller, error) {
	if table == nil {
		return nil, errors.New("glyphwalk: nil address table")
	}
	if table.Dim() <= 0 {
		return nil, fmt.Errorf("%w: table dimension %d", ErrDimension, table.Dim())
	}
	if sub == nil {
		return nil, errors.New("glyphwalk: nil submitter")
	}
	o := applyOptions(opts)
	return &Controller{
		table:   table,
		stepper: NewStepper(o.stepSize, o.jitter, o.rng),
		sub:     sub,
		doc:     NewDocument(),
		limit:   o.inFlight,
	}, nil
}

// Document returns the live document. Callers on other goroutines must use
// Snapshot instead.
func (c *Controller) Document() *Document {
	return c.doc
}

// Snapshot returns a deep copy of the document.
func (c *Controller) Snapshot() *Document {
	return c.doc.Clone()
}

// Held returns the held symbols in press order.
func (c *Controller) Held() []Symbol {
	return slices.Clone(c.held)
}

// Arrived reports whether the active slot has reached its destination.
func (c *Controller) Arrived() bool {
	return c.arrived
}

// Outstanding returns the number of issued requests that have not completed
// for slots still in the document.
func (c *Controller) Outstanding() int {
	n := 0
	for _, s := range c.doc.slots {
		n += s.inFlight
	}
	return n
}

// Handle applies one key event. It reports whether the document changed.
func (c *Controller) Handle(ev Event) bool {
	switch ev.Kind {
	case KeySymbol:
		if ev.Up {
			c.keyUp(ev.Symbol)
			return false
		}
		return c.keyDown(ev.Symbol)
	case KeyBackspace:
		if ev.Up {
			return false
		}
		return c.backspace()
	case KeySpace:
		if ev.Up {
			return false
		}
		return c.space()
	case KeyArrowLeft, KeyArrowRight:
		if ev.Up {
			return false
		}
		before := c.doc.Cursor()
		if ev.Kind == KeyArrowLeft {
			c.doc.MoveCursor(-1)
		} else {
			c.doc.MoveCursor(1)
		}
		return c.doc.Cursor() != before
	}
	return false
}

func (c *Controller) keyDown(s Symbol) bool {
	if !s.IsAlphaNum() {
		Logger().Debug("glyphwalk: ignoring key", "key", s.String())
		return false
	}
	addr, ok := c.table.Lookup(s)
	if !ok {
		Logger().Debug("glyphwalk: unrepresentable symbol", "key", s.String())
		return false
	}
	if slices.Contains(c.held, s) {
		// Auto-repeat of a key that is already down.
		return false
	}

	c.arrived = false
	fresh := len(c.held) == 0
	c.held = append(c.held, s)
	if !fresh {
		// The next Tick blends s into the active slot.
		return false
	}

	slot := newSymbolSlot(s, addr)
	if err := c.doc.InsertAt(c.doc.Cursor(), slot); err != nil {
		panic(err) // the cursor is always within [0, Len()]
	}
	c.doc.MoveCursor(1)
	c.issue(slot, slot.Address)
	return true
}

func (c *Controller) keyUp(s Symbol) {
	if i := slices.Index(c.held, s); i >= 0 {
		c.held = slices.Delete(c.held, i, i+1)
	}
	c.arrived = false
}

func (c *Controller) backspace() bool {
	cur := c.doc.Cursor()
	if cur == 0 {
		return false
	}
	if _, err := c.doc.RemoveAt(cur - 1); err != nil {
		panic(err)
	}
	c.doc.SetCursor(cur - 1)
	return true
}

func (c *Controller) space() bool {
	if err := c.doc.InsertAt(c.doc.Cursor(), newSpaceSlot()); err != nil {
		panic(err)
	}
	c.doc.MoveCursor(1)
	return true
}

// Tick advances the slot before the cursor one step towards the held keys'
// destination and requests its new frame. It does nothing when no key is
// held, the cursor is at 0, or that slot is a space. It reports whether the
// document changed.
func (c *Controller) Tick(now time.Time) bool {
	c.last = now
	if len(c.held) == 0 {
		return false
	}
	i := c.doc.Cursor() - 1
	if i < 0 {
		return false
	}
	slot := c.doc.slots[i]
	if slot.IsSpace() {
		return false
	}

	dest, err := c.stepper.Destination(c.table, c.held)
	if err != nil {
		panic(fmt.Sprintf("glyphwalk: destination for held keys %q: %v", JoinSymbols(c.held), err))
	}
	if len(slot.Address) != c.table.Dim() {
		panic(fmt.Sprintf("glyphwalk: slot address has %d components, want %d", len(slot.Address), c.table.Dim()))
	}

	next, arrived := c.stepper.Step(slot.Address, dest, c.arrived)
	c.arrived = arrived
	slot.Symbols = slices.Clone(c.held)
	slot.Address = next
	c.issue(slot, next)
	return true
}

// LastTick returns the time passed to the most recent Tick.
func (c *Controller) LastTick() time.Time {
	return c.last
}

// issue sends a request for addr unless the slot is at its in-flight
// limit, in which case addr replaces the slot's pending target.
func (c *Controller) issue(slot *Slot, addr Vector) {
	if slot.inFlight >= c.limit {
		slot.pending = addr.Clone()
		Logger().Debug("glyphwalk: coalesced inference request", "slot", slot.ID)
		return
	}
	slot.issued++
	slot.inFlight++
	c.sub.Submit(Request{Slot: slot.ID, Seq: slot.issued, Address: addr.Clone()})
}

// Apply records a completion. The frame is stored only if the completion is
// newer than the frame the slot already shows; failures leave the image
// untouched. If a target was coalesced while the request was outstanding
// and keys are still held, it is issued now. Apply reports whether the
// slot's image changed.
func (c *Controller) Apply(comp Completion) bool {
	i := c.doc.IndexOf(comp.Slot)
	if i < 0 {
		Logger().Debug("glyphwalk: completion for removed slot", "slot", comp.Slot, "seq", comp.Seq)
		return false
	}
	slot := c.doc.slots[i]
	if slot.inFlight > 0 {
		slot.inFlight--
	}

	changed := false
	switch {
	case comp.Err != nil:
		// Already logged by the gateway; keep the last good frame.
	case comp.Seq <= slot.applied:
		Logger().Debug("glyphwalk: dropping stale frame",
			"slot", slot.ID, "seq", comp.Seq, "applied", slot.applied)
	default:
		frame := comp.Frame
		slot.Image = &frame
		slot.applied = comp.Seq
		changed = true
	}

	if slot.pending != nil && slot.inFlight < c.limit {
		p := slot.pending
		slot.pending = nil
		if len(c.held) > 0 {
			c.issue(slot, p)
		}
	}
	return changed
}
