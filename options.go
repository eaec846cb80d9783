package glyphwalk

import (
	"math/rand/v2"
	"time"
)

// DefaultTickInterval is the stepping period while keys are held.
// Useful values range from 10ms to 100ms.
const DefaultTickInterval = 50 * time.Millisecond

// Option configures a Controller, Gateway or Engine during creation.
// Each constructor reads only the options it understands.
//
// Example:
//
//	// Deterministic controller for tests
//	ctrl, err := glyphwalk.NewController(table, gw,
//	    glyphwalk.WithStepSize(0.25),
//	    glyphwalk.WithRand(rand.New(rand.NewPCG(1, 2))),
//	)
type Option func(*options)

// options holds optional configuration.
type options struct {
	tickInterval time.Duration
	stepSize     float64
	jitter       float64
	rng          *rand.Rand
	clock        Clock
	workers      int
	label        string
	inFlight     int
	observer     func(*Document)
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		tickInterval: DefaultTickInterval,
		stepSize:     DefaultStepSize,
		jitter:       DefaultJitter,
		rng:          nil, // Seeded randomly by NewStepper if nil
		clock:        SystemClock{},
		workers:      0, // GOMAXPROCS
		label:        OutputLabel,
		inFlight:     1,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithTickInterval sets how often the Engine steps the active slot while
// keys are held. Non-positive values are ignored.
func WithTickInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.tickInterval = d
		}
	}
}

// WithStepSize sets the per-tick, per-component convergence step.
func WithStepSize(incr float64) Option {
	return func(o *options) {
		if incr > 0 {
			o.stepSize = incr
		}
	}
}

// WithJitter sets the per-component random walk amplitude after arrival.
func WithJitter(j float64) Option {
	return func(o *options) {
		if j >= 0 {
			o.jitter = j
		}
	}
}

// WithRand sets the random source of the wandering phase.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithClock sets the Engine's time source.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithWorkers sets the number of Gateway inference workers.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLabel sets the output label the Gateway expects on generator frames.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}

// WithInFlightLimit sets how many inference requests one slot may have
// outstanding. Targets computed beyond the limit are coalesced into a
// single pending request. The default is 1.
func WithInFlightLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.inFlight = n
		}
	}
}

// WithObserver registers a callback the Engine invokes on its event
// goroutine with a deep copy of the document after every change.
func WithObserver(fn func(*Document)) Option {
	return func(o *options) {
		o.observer = fn
	}
}
