package glyphwalk

import (
	"fmt"
	"math"
)

// DefaultDim is the latent dimensionality of the bundled generator.
const DefaultDim = 100

// Vector is a point in latent space.
//
// Vectors compare exactly: two vectors are equal only when every component
// is equal. The stepper snaps to its destination on the final step, which is
// what makes exact equality reachable.
type Vector []float64

// Clone returns an independent copy of v. Clone of nil is nil.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Dim returns the number of components.
func (v Vector) Dim() int {
	return len(v)
}

// Equal reports whether v and o have the same length and identical components.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// MaxDistance returns the largest absolute per-component difference (L∞).
// It panics if the dimensions differ.
func (v Vector) MaxDistance(o Vector) float64 {
	mustSameDim(v, o)
	var d float64
	for i := range v {
		d = math.Max(d, math.Abs(o[i]-v[i]))
	}
	return d
}

// Mean returns the component-wise arithmetic mean of vs.
// All inputs must share one dimension.
func Mean(vs ...Vector) (Vector, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("%w: mean of no vectors", ErrDimension)
	}
	dim := len(vs[0])
	out := make(Vector, dim)
	for n, v := range vs {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d components, want %d", ErrDimension, n, len(v), dim)
		}
		for i, x := range v {
			out[i] += x
		}
	}
	k := float64(len(vs))
	for i := range out {
		out[i] /= k
	}
	return out, nil
}

// mustSameDim panics when two vectors of different length meet inside the
// stepping path. A mismatch there means a table or stepper bug, not bad input.
func mustSameDim(a, b Vector) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("glyphwalk: latent dimension mismatch: %d vs %d", len(a), len(b)))
	}
}
