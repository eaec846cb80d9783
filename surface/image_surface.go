// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// ImageSurface is a CPU canvas that renders to an *image.RGBA.
//
// ImageSurface is not safe for concurrent use, except that DrawImage calls
// whose destination rectangles do not overlap may run in parallel.
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a surface with the given dimensions. Non-positive
// dimensions are clamped to 1.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect fills r, clipped to the surface, with c.
func (s *ImageSurface) FillRect(r image.Rectangle, c color.Color) {
	if s.closed {
		return
	}
	draw.Draw(s.img, r.Intersect(s.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// StrokeRect draws a one pixel outline just inside r.
func (s *ImageSurface) StrokeRect(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	s.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	s.FillRect(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	s.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	s.FillRect(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// DrawImage scales src into dst using scaler. A nil scaler means nearest
// neighbour, which keeps frame pixels crisp.
func (s *ImageSurface) DrawImage(src image.Image, dst image.Rectangle, scaler draw.Scaler) {
	if s.closed || src == nil || dst.Empty() {
		return
	}
	if scaler == nil {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(s.img, dst, src, src.Bounds(), draw.Src, nil)
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}

	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(result.Pix, s.img.Pix)
	return result
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// SavePNG writes the surface contents to a PNG file.
func (s *ImageSurface) SavePNG(path string) error {
	if s.closed {
		return fmt.Errorf("surface: save %s: surface closed", path)
	}
	f, err := os.Create(path) //nolint:gosec // path comes from the caller
	if err != nil {
		return err
	}
	if err := png.Encode(f, s.img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Close releases the backing image.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	return nil
}
