// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/draw"
)

// TestNewImageSurface tests surface creation.
func TestNewImageSurface(t *testing.T) {
	s := NewImageSurface(100, 40)
	defer s.Close()

	if s.Width() != 100 {
		t.Errorf("Width() = %d, want 100", s.Width())
	}
	if s.Height() != 40 {
		t.Errorf("Height() = %d, want 40", s.Height())
	}
}

// TestNewImageSurfaceInvalidSize tests handling of invalid dimensions.
func TestNewImageSurfaceInvalidSize(t *testing.T) {
	s := NewImageSurface(0, -3)
	defer s.Close()

	if s.Width() != 1 || s.Height() != 1 {
		t.Errorf("expected 1x1, got %dx%d", s.Width(), s.Height())
	}
}

func TestImageSurfaceClear(t *testing.T) {
	s := NewImageSurface(10, 10)
	defer s.Close()

	s.Clear(color.RGBA{255, 0, 0, 255})

	c := s.Image().RGBAAt(5, 5)
	if c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel = %v, want red", c)
	}
}

func TestImageSurfaceFillRectClipped(t *testing.T) {
	s := NewImageSurface(10, 10)
	defer s.Close()
	s.Clear(color.White)

	// Partly outside the surface; must not panic.
	s.FillRect(image.Rect(-5, -5, 3, 3), color.Black)

	if c := s.Image().RGBAAt(2, 2); c != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("inside pixel = %v, want black", c)
	}
	if c := s.Image().RGBAAt(3, 3); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("outside pixel = %v, want white", c)
	}
}

func TestImageSurfaceStrokeRect(t *testing.T) {
	s := NewImageSurface(10, 10)
	defer s.Close()
	s.Clear(color.White)

	s.StrokeRect(image.Rect(2, 2, 8, 8), color.Black)
	img := s.Image()

	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{2, 2, black},
		{7, 7, black},
		{5, 2, black},
		{2, 5, black},
		{5, 5, white},
		{8, 8, white},
		{1, 1, white},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestImageSurfaceDrawImageScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(1, 1, color.RGBA{0, 0, 255, 255})

	s := NewImageSurface(8, 8)
	defer s.Close()
	s.DrawImage(src, image.Rect(2, 2, 6, 6), nil)
	img := s.Image()

	if c := img.RGBAAt(3, 3); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("top-left quadrant = %v, want red", c)
	}
	if c := img.RGBAAt(5, 5); c != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("bottom-right quadrant = %v, want blue", c)
	}
	if c := img.RGBAAt(1, 1); c.A != 0 {
		t.Errorf("outside destination = %v, want untouched", c)
	}

	// A smoothing scaler still fills the destination.
	s.DrawImage(src, image.Rect(0, 0, 8, 8), draw.ApproxBiLinear)
	if c := img.RGBAAt(0, 0); c.A == 0 {
		t.Error("ApproxBiLinear left destination empty")
	}
}

func TestImageSurfaceSnapshotIsCopy(t *testing.T) {
	s := NewImageSurface(4, 4)
	defer s.Close()
	s.Clear(color.White)

	snap := s.Snapshot()
	s.Clear(color.Black)

	if c := snap.RGBAAt(0, 0); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("snapshot changed with surface: %v", c)
	}
}

func TestImageSurfaceClose(t *testing.T) {
	s := NewImageSurface(4, 4)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}

	// Operations after close are ignored.
	s.Clear(color.White)
	s.FillRect(image.Rect(0, 0, 2, 2), color.Black)
	if s.Snapshot() != nil {
		t.Error("Snapshot after Close should be nil")
	}
	if err := s.SavePNG(filepath.Join(t.TempDir(), "closed.png")); err == nil {
		t.Error("SavePNG after Close should fail")
	}
}

func TestImageSurfaceSavePNG(t *testing.T) {
	s := NewImageSurface(6, 3)
	defer s.Close()
	s.Clear(color.RGBA{10, 20, 30, 255})

	path := filepath.Join(t.TempDir(), "out.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 3 {
		t.Errorf("decoded size %v, want 6x3", img.Bounds())
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("decoded pixel = (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}
