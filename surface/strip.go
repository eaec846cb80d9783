// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/glyphwalk"
	"github.com/gogpu/glyphwalk/internal/parallel"
)

// Default strip geometry, in pixels.
const (
	DefaultCellSize  = 100
	DefaultLabelSize = 14

	stripPadding = 8
	cellGap      = 6
	labelGap     = 4
	caretWidth   = 2
)

var (
	ink         = color.RGBA{0, 0, 0, 255}
	paper       = color.RGBA{255, 255, 255, 255}
	pendingFill = color.RGBA{232, 232, 232, 255}
	caretColor  = color.RGBA{200, 30, 30, 255}
)

// ErrCellSize is returned for a non-positive cell size.
var ErrCellSize = errors.New("surface: cell size must be positive")

// StripOption configures a Strip.
type StripOption func(*Strip)

// WithCellSize sets the inner size of each square cell.
func WithCellSize(px int) StripOption {
	return func(s *Strip) {
		s.cell = px
	}
}

// WithLabelSize sets the label font size in points at 72 DPI.
func WithLabelSize(pt float64) StripOption {
	return func(s *Strip) {
		s.labelSize = pt
	}
}

// WithScaler sets the scaler used to enlarge frames into cells.
//
// Package-level interpolators such as draw.NearestNeighbor and
// draw.CatmullRom are stateless and may scale several cells at once. Any
// other Scaler, such as one from Kernel.NewScaler, keeps internal buffers;
// cells are then scaled one at a time even when WithWorkers is set.
func WithScaler(scaler draw.Scaler) StripOption {
	return func(s *Strip) {
		s.scaler = scaler
	}
}

// WithWorkers scales cells on n goroutines. Values below 2 scale on the
// calling goroutine.
func WithWorkers(n int) StripOption {
	return func(s *Strip) {
		s.workers = n
	}
}

// Strip composes document snapshots into images.
//
// Strip is safe for concurrent use; Compose calls are serialized.
type Strip struct {
	cell      int
	labelSize float64
	scaler    draw.Scaler
	workers   int

	mu    sync.Mutex
	label *labeler
	pool  *parallel.WorkerPool
	surf  *ImageSurface // reused while the strip size is unchanged
}

// NewStrip creates a strip composer.
func NewStrip(opts ...StripOption) (*Strip, error) {
	s := &Strip{
		cell:      DefaultCellSize,
		labelSize: DefaultLabelSize,
		scaler:    draw.NearestNeighbor,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cell <= 0 {
		return nil, ErrCellSize
	}
	l, err := newLabeler(s.labelSize)
	if err != nil {
		return nil, err
	}
	s.label = l
	if s.workers > 1 {
		s.pool = parallel.NewWorkerPool(s.workers, 0)
	}
	return s, nil
}

// CellSize returns the inner cell size.
func (s *Strip) CellSize() int {
	return s.cell
}

// box is the outer size of a cell including its border.
func (s *Strip) box() int {
	return s.cell + 2
}

// Size returns the image size for a document of n slots. An empty document
// still reserves room for one cell.
func (s *Strip) Size(n int) (width, height int) {
	cells := max(n, 1)
	width = 2*stripPadding + cells*s.box() + (cells-1)*cellGap
	height = 2*stripPadding + s.box() + labelGap + s.label.Height()
	return width, height
}

// CellRect returns the bordered rectangle of cell i.
func (s *Strip) CellRect(i int) image.Rectangle {
	x := stripPadding + i*(s.box()+cellGap)
	return image.Rect(x, stripPadding, x+s.box(), stripPadding+s.box())
}

// CaretRect returns the caret drawn at cursor position i, which sits in the
// gap before cell i.
func (s *Strip) CaretRect(i int) image.Rectangle {
	x := stripPadding + i*(s.box()+cellGap) - cellGap/2 - caretWidth/2
	return image.Rect(x, stripPadding, x+caretWidth, stripPadding+s.box())
}

// Compose draws doc and returns a copy of the image.
func (s *Strip) Compose(doc *glyphwalk.Document) *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draw(doc).Snapshot()
}

// SavePNG composes doc and writes it to path.
func (s *Strip) SavePNG(doc *glyphwalk.Document, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draw(doc).SavePNG(path)
}

// surface returns the cached surface, replacing it when the size changes.
func (s *Strip) surface(w, h int) *ImageSurface {
	if s.surf != nil && s.surf.Width() == w && s.surf.Height() == h {
		return s.surf
	}
	if s.surf != nil {
		_ = s.surf.Close()
	}
	s.surf = NewImageSurface(w, h)
	return s.surf
}

// draw renders doc onto the cached surface. Callers hold s.mu.
func (s *Strip) draw(doc *glyphwalk.Document) *ImageSurface {
	slots := doc.Slots()
	surf := s.surface(s.Size(len(slots)))
	surf.Clear(paper)

	work := make([]func(), 0, len(slots))
	for i, slot := range slots {
		box := s.CellRect(i)
		surf.StrokeRect(box, ink)
		inner := box.Inset(1)
		if slot.Pending() {
			surf.FillRect(inner, pendingFill)
			continue
		}
		frame := slot.Image
		work = append(work, func() {
			surf.DrawImage(glyphwalk.Display(frame).ToImage(), inner, s.scaler)
		})
	}
	s.execute(work)

	for i, slot := range slots {
		box := s.CellRect(i)
		mid := (box.Min.X + box.Max.X) / 2
		s.label.DrawCentered(surf.Image(), slot.Label(), mid, box.Max.Y+labelGap, ink)
	}
	surf.FillRect(s.CaretRect(doc.Cursor()), caretColor)
	return surf
}

// execute runs work on the pool when one is configured and the scaler is
// stateless. Cells never overlap, so the scalers write disjoint pixels.
func (s *Strip) execute(work []func()) {
	if _, stateless := s.scaler.(draw.Interpolator); s.pool == nil || !stateless {
		for _, fn := range work {
			fn()
		}
		return
	}
	s.pool.ExecuteAll(work)
}

// Close releases the label font and the cached surface and stops the
// workers.
func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
	if s.surf != nil {
		_ = s.surf.Close()
		s.surf = nil
	}
	return s.label.Close()
}
