// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/gogpu/glyphwalk"
)

func solidFrame(v float32) *glyphwalk.Frame {
	f := &glyphwalk.Frame{Label: glyphwalk.OutputLabel}
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

// testDoc returns "W", a pending "x" and a space, with the cursor after the
// first slot.
func testDoc(t *testing.T) *glyphwalk.Document {
	t.Helper()
	doc := glyphwalk.NewDocument()
	slots := []*glyphwalk.Slot{
		{ID: uuid.New(), Symbols: []glyphwalk.Symbol{'W'}, Address: glyphwalk.Vector{0}, Image: solidFrame(1)},
		{ID: uuid.New(), Symbols: []glyphwalk.Symbol{'x'}, Address: glyphwalk.Vector{0}},
		{ID: uuid.New(), Symbols: []glyphwalk.Symbol{glyphwalk.Space}, Image: glyphwalk.BlankFrame()},
	}
	for i, s := range slots {
		if err := doc.InsertAt(i, s); err != nil {
			t.Fatal(err)
		}
	}
	doc.SetCursor(1)
	return doc
}

func newTestStrip(t *testing.T, opts ...StripOption) *Strip {
	t.Helper()
	s, err := NewStrip(opts...)
	if err != nil {
		t.Fatalf("NewStrip() = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewStripRejectsBadCellSize(t *testing.T) {
	_, err := NewStrip(WithCellSize(0))
	if !errors.Is(err, ErrCellSize) {
		t.Fatalf("NewStrip(WithCellSize(0)) = %v, want ErrCellSize", err)
	}
}

func TestStripSize(t *testing.T) {
	s := newTestStrip(t, WithCellSize(28))

	w0, h0 := s.Size(0)
	w1, h1 := s.Size(1)
	if w0 != w1 || h0 != h1 {
		t.Errorf("empty strip %dx%d, want room for one cell %dx%d", w0, h0, w1, h1)
	}

	w3, _ := s.Size(3)
	if got := s.CellRect(2).Max.X + stripPadding; got != w3 {
		t.Errorf("last cell ends at %d, width %d", got, w3)
	}
	if r := s.CellRect(0); r.Dx() != 30 || r.Dy() != 30 {
		t.Errorf("CellRect(0) = %v, want 30x30 with border", r)
	}
	if h1 <= s.CellRect(0).Max.Y+labelGap {
		t.Errorf("height %d leaves no room for labels", h1)
	}
}

func TestStripCompose(t *testing.T) {
	s := newTestStrip(t, WithCellSize(56))
	doc := testDoc(t)

	img := s.Compose(doc)
	w, h := s.Size(3)
	if img.Bounds() != image.Rect(0, 0, w, h) {
		t.Fatalf("bounds = %v, want %dx%d", img.Bounds(), w, h)
	}

	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}

	glyph := s.CellRect(0)
	if c := img.RGBAAt(glyph.Min.X, glyph.Min.Y); c != black {
		t.Errorf("border = %v, want black", c)
	}
	center := image.Pt((glyph.Min.X+glyph.Max.X)/2, (glyph.Min.Y+glyph.Max.Y)/2)
	if c := img.RGBAAt(center.X, center.Y); c != black {
		t.Errorf("ink frame pixel = %v, want black", c)
	}

	pending := s.CellRect(1).Inset(1)
	if c := img.RGBAAt(pending.Min.X+3, pending.Min.Y+3); c != pendingFill {
		t.Errorf("pending cell = %v, want %v", c, pendingFill)
	}

	space := s.CellRect(2).Inset(1)
	if c := img.RGBAAt(space.Min.X+3, space.Min.Y+3); c != white {
		t.Errorf("space cell = %v, want white", c)
	}

	caret := s.CaretRect(1)
	if c := img.RGBAAt(caret.Min.X, caret.Min.Y+5); c != caretColor {
		t.Errorf("caret = %v, want %v", c, caretColor)
	}
	if !caret.In(image.Rect(glyph.Max.X, 0, s.CellRect(1).Min.X, h)) {
		t.Errorf("caret %v not in gap after cell 0", caret)
	}

	if !hasInk(img, image.Rect(glyph.Min.X, glyph.Max.Y, glyph.Max.X, h)) {
		t.Error("no label drawn under the first cell")
	}
	spaceBox := s.CellRect(2)
	if hasInk(img, image.Rect(spaceBox.Min.X, spaceBox.Max.Y, spaceBox.Max.X, h)) {
		t.Error("space slot should have a blank label")
	}
}

func hasInk(img *image.RGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R < 128 {
				return true
			}
		}
	}
	return false
}

func TestStripEmptyDocument(t *testing.T) {
	s := newTestStrip(t, WithCellSize(20))
	img := s.Compose(glyphwalk.NewDocument())

	caret := s.CaretRect(0)
	if c := img.RGBAAt(caret.Min.X, caret.Min.Y); c != caretColor {
		t.Errorf("caret = %v, want %v", c, caretColor)
	}
	if c := img.RGBAAt(s.CellRect(0).Min.X+1, s.CellRect(0).Min.Y); c != paper {
		t.Errorf("empty document drew a cell border: %v", c)
	}
}

func TestStripWorkersMatchSerial(t *testing.T) {
	doc := testDoc(t)
	serial := newTestStrip(t, WithCellSize(40)).Compose(doc)
	pooled := newTestStrip(t, WithCellSize(40), WithWorkers(3)).Compose(doc)

	if !bytes.Equal(serial.Pix, pooled.Pix) {
		t.Error("parallel composition differs from serial")
	}
}

func TestStripLabelCentred(t *testing.T) {
	s := newTestStrip(t, WithCellSize(80), WithLabelSize(20))

	narrow := s.label.Advance("i")
	wide := s.label.Advance("WW")
	if narrow <= 0 || wide <= narrow {
		t.Fatalf("advances i=%v WW=%v", narrow, wide)
	}

	doc := glyphwalk.NewDocument()
	_ = doc.InsertAt(0, &glyphwalk.Slot{ID: uuid.New(), Symbols: []glyphwalk.Symbol{'W', 'W'}, Image: solidFrame(-1)})
	img := s.Compose(doc)

	box := s.CellRect(0)
	mid := (box.Min.X + box.Max.X) / 2
	left := hasInk(img, image.Rect(box.Min.X, box.Max.Y, mid, img.Bounds().Max.Y))
	right := hasInk(img, image.Rect(mid, box.Max.Y, box.Max.X, img.Bounds().Max.Y))
	if !left || !right {
		t.Errorf("label not centred: ink left=%v right=%v", left, right)
	}
}

func TestStripSavePNG(t *testing.T) {
	s := newTestStrip(t, WithCellSize(16))
	path := filepath.Join(t.TempDir(), "strip.png")
	if err := s.SavePNG(testDoc(t), path); err != nil {
		t.Fatalf("SavePNG() = %v", err)
	}
}

func TestStripComposeReturnsCopy(t *testing.T) {
	s := newTestStrip(t, WithCellSize(20))
	doc := testDoc(t)
	first := s.Compose(doc)
	want := bytes.Clone(first.Pix)

	doc.SetCursor(3)
	second := s.Compose(doc)
	if !bytes.Equal(first.Pix, want) {
		t.Error("second Compose changed the first image")
	}
	if bytes.Equal(first.Pix, second.Pix) {
		t.Error("cursor move not drawn")
	}

	// A longer document needs a wider surface.
	_ = doc.InsertAt(3, &glyphwalk.Slot{ID: uuid.New(), Symbols: []glyphwalk.Symbol{'o'}, Image: solidFrame(0)})
	third := s.Compose(doc)
	if w, _ := s.Size(4); third.Rect.Dx() != w {
		t.Errorf("width after insert = %d, want %d", third.Rect.Dx(), w)
	}
}

func TestStripCloseReleasesSurface(t *testing.T) {
	s, err := NewStrip(WithCellSize(12))
	if err != nil {
		t.Fatal(err)
	}
	s.Compose(testDoc(t))
	surf := s.surf
	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if surf.Snapshot() != nil {
		t.Error("surface still open after Close")
	}
}

// countingScaler tracks how many Scale calls overlap. It is not a
// draw.Interpolator, like the scalers from Kernel.NewScaler.
type countingScaler struct {
	active, peak atomic.Int32
}

func (c *countingScaler) Scale(dst draw.Image, dr image.Rectangle, src image.Image, sr image.Rectangle, op draw.Op, opts *draw.Options) {
	n := c.active.Add(1)
	defer c.active.Add(-1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	draw.NearestNeighbor.Scale(dst, dr, src, sr, op, opts)
}

func TestStripStatefulScalerRunsSerially(t *testing.T) {
	sc := &countingScaler{}
	s := newTestStrip(t, WithCellSize(16), WithWorkers(4), WithScaler(sc))

	doc := glyphwalk.NewDocument()
	for i := range 6 {
		_ = doc.InsertAt(i, &glyphwalk.Slot{ID: uuid.New(), Symbols: []glyphwalk.Symbol{'a'}, Image: solidFrame(1)})
	}
	s.Compose(doc)

	if got := sc.peak.Load(); got != 1 {
		t.Errorf("peak concurrent Scale calls = %d, want 1", got)
	}
}
