package glyphwalk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/glyphwalk/internal/parallel"
)

// Generator turns a latent vector into a frame. It is the model session.
// Generate may be slow; it is always called off the event goroutine.
// Implementations must be safe for concurrent use by the gateway workers.
type Generator interface {
	Generate(ctx context.Context, z Vector) (Frame, error)
}

// SessionFactory creates the Generator. The Gateway calls it lazily, at
// most once at a time, and only again if a previous attempt failed.
type SessionFactory func(ctx context.Context) (Generator, error)

// Request asks for the frame of one slot address.
type Request struct {
	Slot uuid.UUID
	// Seq increases monotonically per slot; higher means newer.
	Seq     uint64
	Address Vector
}

// Completion is the outcome of a Request.
type Completion struct {
	Request
	Frame Frame
	Err   error
}

// Submitter accepts inference requests without blocking the caller.
// Every submitted request eventually yields exactly one Completion.
type Submitter interface {
	Submit(req Request)
}

// completionBuffer bounds completions waiting for the event goroutine.
const completionBuffer = 64

// Gateway runs inference requests against a single lazily created session.
//
// Requests submitted before the session is ready wait for it; they are not
// dropped. Completions arrive on Completions() in the order the generator
// finishes them, which is not necessarily the order of submission.
type Gateway struct {
	factory SessionFactory
	label   string
	pool    *parallel.WorkerPool
	out     chan Completion

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	gen      Generator
	creating chan struct{} // closed when the running creation attempt ends
	lastErr  error
	closed   bool
}

// NewGateway creates a gateway. The session is not created until the first
// Submit or Warm.
func NewGateway(factory SessionFactory, opts ...Option) (*Gateway, error) {
	if factory == nil {
		return nil, errors.New("glyphwalk: nil session factory")
	}
	o := applyOptions(opts)
	ctx, cancel := context.WithCancel(context.Background())
	pool := parallel.NewWorkerPool(o.workers, completionBuffer)
	return &Gateway{
		factory: factory,
		label:   o.label,
		pool:    pool,
		out:     make(chan Completion, completionBuffer),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Completions returns the channel on which every submitted request's
// outcome is delivered.
func (g *Gateway) Completions() <-chan Completion {
	return g.out
}

// Submit queues req. It never blocks on inference.
func (g *Gateway) Submit(req Request) {
	req.Address = req.Address.Clone()
	ok := g.pool.TrySubmit(func() {
		g.deliver(g.run(req))
	})
	if ok {
		return
	}
	err := ErrGatewayBusy
	if !g.pool.IsRunning() {
		err = ErrGatewayClosed
	}
	// Report asynchronously; the event goroutine may be the one reading out.
	go g.deliver(Completion{Request: req, Err: err})
}

// Warm starts session creation without submitting a request and waits for
// it to finish or ctx to end.
func (g *Gateway) Warm(ctx context.Context) error {
	_, err := g.session(ctx)
	return err
}

// Ready reports whether the session exists.
func (g *Gateway) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen != nil
}

// Close stops the workers and closes the session if it implements io.Closer.
// Requests still waiting for the session complete with ErrGatewayClosed.
func (g *Gateway) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	g.mu.Unlock()

	g.cancel()
	g.pool.Close()

	g.mu.Lock()
	gen := g.gen
	g.gen = nil
	g.mu.Unlock()
	if c, ok := gen.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (g *Gateway) run(req Request) Completion {
	c := Completion{Request: req}
	gen, err := g.session(g.ctx)
	if err != nil {
		c.Err = err
		return c
	}
	frame, err := gen.Generate(g.ctx, req.Address)
	if err != nil {
		c.Err = fmt.Errorf("glyphwalk: generate: %w", err)
		return c
	}
	if frame.Label != g.label {
		c.Err = fmt.Errorf("%w: got %q, want %q", ErrFrameLabel, frame.Label, g.label)
		return c
	}
	c.Frame = frame
	return c
}

func (g *Gateway) deliver(c Completion) {
	if c.Err != nil {
		Logger().Warn("glyphwalk: inference failed",
			"slot", c.Slot, "seq", c.Seq, "err", c.Err)
	}
	select {
	case g.out <- c:
	case <-g.ctx.Done():
	}
}

// session returns the generator, creating it on first use. Concurrent
// callers share one creation attempt. A failed attempt is reported to its
// waiters and retried by the next caller.
func (g *Gateway) session(ctx context.Context) (Generator, error) {
	for {
		g.mu.Lock()
		if g.closed {
			g.mu.Unlock()
			return nil, ErrGatewayClosed
		}
		if g.gen != nil {
			gen := g.gen
			g.mu.Unlock()
			return gen, nil
		}
		wait := g.creating
		if wait == nil {
			wait = make(chan struct{})
			g.creating = wait
			g.lastErr = nil
			go g.create(wait)
		}
		g.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			if g.ctx.Err() != nil {
				return nil, ErrGatewayClosed
			}
			return nil, ctx.Err()
		}

		g.mu.Lock()
		gen, err := g.gen, g.lastErr
		g.mu.Unlock()
		if gen != nil {
			return gen, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (g *Gateway) create(done chan struct{}) {
	gen, err := g.factory(g.ctx)

	g.mu.Lock()
	defer close(done)
	defer g.mu.Unlock()

	g.creating = nil
	if err != nil {
		g.lastErr = fmt.Errorf("glyphwalk: create session: %w", err)
		Logger().Warn("glyphwalk: inference session failed", "err", err)
		return
	}
	if g.closed {
		if c, ok := gen.(io.Closer); ok {
			_ = c.Close()
		}
		g.lastErr = ErrGatewayClosed
		return
	}
	g.gen = gen
	Logger().Info("glyphwalk: inference session ready")
}
