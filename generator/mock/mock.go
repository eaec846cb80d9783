// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mock provides stand-in generators for running glyphwalk without a
// trained model: a deterministic projection for demos, a manually resolved
// generator for ordering tests, and an always-failing one.
package mock

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/gogpu/glyphwalk"
)

// blobSigma is the radius, in pixels, of each latent component's footprint.
const blobSigma = 3.5

// Projection is a deterministic Generator. Every latent component owns a
// Gaussian blob at a seeded position with a seeded sign; a frame is the
// tanh of the weighted sum of blobs. Nearby vectors give similar frames, so
// trajectories morph smoothly.
type Projection struct {
	dim     int
	weights [][glyphwalk.FrameSize]float32
	latency time.Duration
	calls   atomic.Int64
}

// NewProjection builds a projection for dim-dimensional vectors. latency is
// added to every call to imitate a slow model.
func NewProjection(dim int, seed uint64, latency time.Duration) *Projection {
	rng := rand.New(rand.NewPCG(seed, uint64(dim)))
	p := &Projection{
		dim:     dim,
		weights: make([][glyphwalk.FrameSize]float32, dim),
		latency: latency,
	}
	gain := 3 / math.Sqrt(float64(dim))
	for k := range p.weights {
		cx := 4 + rng.Float64()*(glyphwalk.FrameWidth-8)
		cy := 4 + rng.Float64()*(glyphwalk.FrameHeight-8)
		sign := 1.0
		if rng.IntN(2) == 0 {
			sign = -1
		}
		for y := 0; y < glyphwalk.FrameHeight; y++ {
			for x := 0; x < glyphwalk.FrameWidth; x++ {
				dx, dy := float64(x)-cx, float64(y)-cy
				w := sign * gain * math.Exp(-(dx*dx+dy*dy)/(2*blobSigma*blobSigma))
				p.weights[k][y*glyphwalk.FrameWidth+x] = float32(w)
			}
		}
	}
	return p
}

// Generate implements glyphwalk.Generator.
func (p *Projection) Generate(ctx context.Context, z glyphwalk.Vector) (glyphwalk.Frame, error) {
	p.calls.Add(1)
	if len(z) != p.dim {
		return glyphwalk.Frame{}, fmt.Errorf("%w: got %d components, want %d", glyphwalk.ErrDimension, len(z), p.dim)
	}
	if p.latency > 0 {
		t := time.NewTimer(p.latency)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return glyphwalk.Frame{}, ctx.Err()
		}
	}

	f := glyphwalk.Frame{Label: glyphwalk.OutputLabel}
	var acc [glyphwalk.FrameSize]float64
	for k, zk := range z {
		if zk == 0 {
			continue
		}
		w := &p.weights[k]
		for i := range acc {
			acc[i] += zk * float64(w[i])
		}
	}
	for i, a := range acc {
		f.Pix[i] = float32(math.Tanh(a - 0.5))
	}
	return f, nil
}

// Calls returns how many times Generate has been called.
func (p *Projection) Calls() int64 {
	return p.calls.Load()
}

// Session returns a factory that hands out g immediately.
func Session(g glyphwalk.Generator) glyphwalk.SessionFactory {
	return func(context.Context) (glyphwalk.Generator, error) {
		return g, nil
	}
}

// Gated returns a factory that hands out g once ready is closed, imitating
// a model that takes a while to load.
func Gated(g glyphwalk.Generator, ready <-chan struct{}) glyphwalk.SessionFactory {
	return func(ctx context.Context) (glyphwalk.Generator, error) {
		select {
		case <-ready:
			return g, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Failing is a Generator whose every call returns Err.
type Failing struct {
	Err error
}

// Generate implements glyphwalk.Generator.
func (f Failing) Generate(context.Context, glyphwalk.Vector) (glyphwalk.Frame, error) {
	return glyphwalk.Frame{}, f.Err
}

// Uniform returns a frame with every value set to v.
func Uniform(v float32) glyphwalk.Frame {
	f := glyphwalk.Frame{Label: glyphwalk.OutputLabel}
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}
