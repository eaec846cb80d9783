package glyphwalk

import (
	"fmt"
	"math/rand/v2"
)

// Default trajectory parameters.
const (
	DefaultStepSize = 0.1
	DefaultJitter   = 0.05
)

// Stepper advances a slot's address one tick at a time.
//
// While the slot has not arrived, every component moves towards the
// destination by at most the step size and snaps onto it once the remaining
// gap is within one step. Components arrive independently; the slot has
// arrived only when all of them have. After arrival each component is
// nudged by ±jitter per tick, unclamped.
type Stepper struct {
	incr   float64
	jitter float64
	rng    *rand.Rand
}

// NewStepper creates a stepper. A nil rng uses a randomly seeded source.
func NewStepper(incr, jitter float64, rng *rand.Rand) *Stepper {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Stepper{incr: incr, jitter: jitter, rng: rng}
}

// StepSize returns the per-tick convergence step.
func (s *Stepper) StepSize() float64 {
	return s.incr
}

// Destination returns the target address for the held symbols: the table
// entry when one symbol is held, otherwise the component-wise mean.
func (s *Stepper) Destination(table AddressTable, held []Symbol) (Vector, error) {
	if len(held) == 0 {
		return nil, fmt.Errorf("%w: no held symbols", ErrUnknownSymbol)
	}
	addrs := make([]Vector, 0, len(held))
	for _, sym := range held {
		v, ok := table.Lookup(sym)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, sym.String())
		}
		if len(v) != table.Dim() {
			return nil, fmt.Errorf("%w: %q has %d components, want %d", ErrDimension, sym.String(), len(v), table.Dim())
		}
		addrs = append(addrs, v)
	}
	if len(addrs) == 1 {
		return addrs[0].Clone(), nil
	}
	return Mean(addrs...)
}

// Step computes the next address from cur towards dest.
//
// arrived is the caller's flag from the previous tick. Step returns the new
// address and the updated flag: it becomes true when cur already equals dest
// or when this tick's move lands on dest exactly. A nil cur is not moved.
// Step panics if cur and dest differ in dimension.
func (s *Stepper) Step(cur, dest Vector, arrived bool) (Vector, bool) {
	if cur == nil {
		return nil, arrived
	}
	mustSameDim(cur, dest)

	if cur.Equal(dest) {
		arrived = true
	}
	if arrived {
		return s.wander(cur), true
	}
	next := s.approach(cur, dest)
	return next, next.Equal(dest)
}

// approach moves each component by at most incr towards dest.
func (s *Stepper) approach(cur, dest Vector) Vector {
	next := make(Vector, len(cur))
	for i := range cur {
		diff := dest[i] - cur[i]
		switch {
		case diff <= s.incr && diff >= -s.incr:
			next[i] = dest[i]
		case diff > 0:
			next[i] = cur[i] + s.incr
		default:
			next[i] = cur[i] - s.incr
		}
	}
	return next
}

// wander perturbs each component by ±jitter with equal probability.
func (s *Stepper) wander(cur Vector) Vector {
	next := make(Vector, len(cur))
	for i, x := range cur {
		if s.rng.IntN(2) == 0 {
			next[i] = x + s.jitter
		} else {
			next[i] = x - s.jitter
		}
	}
	return next
}
