// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mock

import (
	"context"

	"github.com/gogpu/glyphwalk"
)

// Manual is a Generator whose calls block until the test resolves them.
// Calls can be resolved in any order, which reproduces a model finishing
// requests out of order.
type Manual struct {
	calls chan *Call
}

// Call is one pending Generate invocation.
type Call struct {
	Z     glyphwalk.Vector
	reply chan reply
}

type reply struct {
	frame glyphwalk.Frame
	err   error
}

// NewManual creates a manual generator. Up to buffer calls may be waiting
// to be received from Calls before Generate blocks on handing them over.
func NewManual(buffer int) *Manual {
	return &Manual{calls: make(chan *Call, buffer)}
}

// Calls delivers every Generate invocation in call order.
func (m *Manual) Calls() <-chan *Call {
	return m.calls
}

// Generate implements glyphwalk.Generator.
func (m *Manual) Generate(ctx context.Context, z glyphwalk.Vector) (glyphwalk.Frame, error) {
	c := &Call{Z: z.Clone(), reply: make(chan reply, 1)}
	select {
	case m.calls <- c:
	case <-ctx.Done():
		return glyphwalk.Frame{}, ctx.Err()
	}
	select {
	case r := <-c.reply:
		return r.frame, r.err
	case <-ctx.Done():
		return glyphwalk.Frame{}, ctx.Err()
	}
}

// Resolve completes the call with f.
func (c *Call) Resolve(f glyphwalk.Frame) {
	c.reply <- reply{frame: f}
}

// Fail completes the call with err.
func (c *Call) Fail(err error) {
	c.reply <- reply{err: err}
}
