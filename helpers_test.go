package glyphwalk_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/glyphwalk"
)

// testTable has dyadic components so that stepping with power-of-two step
// sizes is exact.
func testTable(t *testing.T) *glyphwalk.MapTable {
	t.Helper()
	table, err := glyphwalk.NewMapTable(3, map[glyphwalk.Symbol]glyphwalk.Vector{
		'a': {1, 0, -0.5},
		'b': {0, 0.5, 0.5},
		'c': {-1, -1, 0.25},
	})
	require.NoError(t, err)
	return table
}

// recorder is a Submitter that records requests and never completes them
// on its own.
type recorder struct {
	reqs []glyphwalk.Request
}

func (r *recorder) Submit(req glyphwalk.Request) {
	r.reqs = append(r.reqs, req)
}

func (r *recorder) last(t *testing.T) glyphwalk.Request {
	t.Helper()
	require.NotEmpty(t, r.reqs)
	return r.reqs[len(r.reqs)-1]
}

func newTestController(t *testing.T, opts ...glyphwalk.Option) (*glyphwalk.Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	base := []glyphwalk.Option{
		glyphwalk.WithStepSize(0.25),
		glyphwalk.WithRand(rand.New(rand.NewPCG(1, 2))),
	}
	ctrl, err := glyphwalk.NewController(testTable(t), rec, append(base, opts...)...)
	require.NoError(t, err)
	return ctrl, rec
}

func mustSlot(t *testing.T, doc *glyphwalk.Document, i int) *glyphwalk.Slot {
	t.Helper()
	s, err := doc.Get(i)
	require.NoError(t, err)
	return s
}

func complete(req glyphwalk.Request, f glyphwalk.Frame) glyphwalk.Completion {
	return glyphwalk.Completion{Request: req, Frame: f}
}

func uniform(v float32) glyphwalk.Frame {
	f := glyphwalk.Frame{Label: glyphwalk.OutputLabel}
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// tickN ticks the controller n times at 50ms intervals.
func tickN(ctrl *glyphwalk.Controller, n int) {
	for i := 0; i < n; i++ {
		ctrl.Tick(epoch.Add(time.Duration(i) * 50 * time.Millisecond))
	}
}
