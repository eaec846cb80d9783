// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface draws a glyphwalk document as a horizontal strip of glyph
// cells.
//
// ImageSurface is a small CPU canvas over *image.RGBA. Strip lays a document
// snapshot out on it: one bordered square cell per slot holding the slot's
// display-oriented frame, the slot's symbols centred under the cell, and a
// caret at the cursor boundary.
//
// # Usage
//
//	strip, err := surface.NewStrip(surface.WithCellSize(64))
//	if err != nil {
//	    return err
//	}
//	defer strip.Close()
//
//	img := strip.Compose(doc)
//	_ = strip.SavePNG(doc, "strip.png")
//
// Labels are measured with the HarfBuzz shaper from go-text/typesetting and
// drawn with an x/image OpenType face, both loaded from the Go Regular font.
package surface
