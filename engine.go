package glyphwalk

import (
	"context"
	"errors"
)

// eventBuffer bounds key events waiting for the event goroutine.
const eventBuffer = 64

// Engine runs a Controller on a single goroutine, feeding it key events,
// clock ticks and inference completions.
type Engine struct {
	ctrl     *Controller
	gw       *Gateway
	clock    Clock
	opts     options
	events   chan Event
	observer func(*Document)
}

// NewEngine wires a Controller to a Gateway built from factory.
func NewEngine(table AddressTable, factory SessionFactory, opts ...Option) (*Engine, error) {
	gw, err := NewGateway(factory, opts...)
	if err != nil {
		return nil, err
	}
	ctrl, err := NewController(table, gw, opts...)
	if err != nil {
		_ = gw.Close()
		return nil, err
	}
	o := applyOptions(opts)
	return &Engine{
		ctrl:     ctrl,
		gw:       gw,
		clock:    o.clock,
		opts:     o,
		events:   make(chan Event, eventBuffer),
		observer: o.observer,
	}, nil
}

// Gateway returns the engine's inference gateway.
func (e *Engine) Gateway() *Gateway {
	return e.gw
}

// Send queues a key event for the event goroutine. It blocks only while
// the event buffer is full and returns false if ctx ends first.
func (e *Engine) Send(ctx context.Context, ev Event) bool {
	select {
	case e.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// Run processes events until ctx is cancelled, then closes the gateway.
// It returns nil on cancellation.
func (e *Engine) Run(ctx context.Context) error {
	ticker := e.clock.NewTicker(e.opts.tickInterval)
	defer ticker.Stop()
	defer func() {
		_ = e.gw.Close()
	}()

	for {
		var changed bool
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ev := <-e.events:
			changed = e.ctrl.Handle(ev)
		case now := <-ticker.C():
			changed = e.ctrl.Tick(now)
		case c := <-e.gw.Completions():
			changed = e.ctrl.Apply(c)
		}
		if changed && e.observer != nil {
			e.observer(e.ctrl.Snapshot())
		}
	}
}
