package glyphwalk

import "math"

// Orientation maps the generator's native layout onto the screen: a 90°
// rotation after a vertical mirror, which together transpose the grid.
var Orientation = Rotate(math.Pi / 2).Multiply(Scale(1, -1))

// Luminance maps a generator value in [-1, 1] to display luminance:
// linear remap to [0, 255], clamp, truncate, then invert so ink is dark.
// NaN maps like -1, to paper.
func Luminance(v float32) uint8 {
	mapped := (float64(v) + 1) * 255 / 2
	if math.IsNaN(mapped) {
		mapped = 0
	}
	mapped = math.Max(0, math.Min(255, mapped))
	return 255 - uint8(mapped)
}

// Render converts a frame to an opaque greyscale pixmap in the frame's
// native orientation.
func Render(f *Frame) *Pixmap {
	pm := NewPixmap(FrameWidth, FrameHeight)
	for i, v := range f.Pix {
		l := Luminance(v)
		j := i * 4
		pm.data[j+0] = l
		pm.data[j+1] = l
		pm.data[j+2] = l
		pm.data[j+3] = 255
	}
	return pm
}

// Orient applies Orientation to pm about its centre and returns a new
// pixmap. Destination size swaps width and height.
func Orient(pm *Pixmap) *Pixmap {
	return Transform(pm, Orientation)
}

// Transform maps every source pixel centre through m (about the pixmap
// centre) onto the nearest destination pixel. m must be a quarter-turn
// rotation, mirror, or composition of them; other matrices leave gaps.
// The identity returns a copy.
func Transform(pm *Pixmap, m Matrix) *Pixmap {
	w, h := pm.width, pm.height
	if m.IsIdentity() {
		out := NewPixmap(w, h)
		copy(out.data, pm.data)
		return out
	}
	// A quarter turn swaps the axes.
	dw, dh := w, h
	if math.Abs(m.A) < 0.5 {
		dw, dh = h, w
	}
	out := NewPixmap(dw, dh)
	cx, cy := float64(w)/2, float64(h)/2
	dcx, dcy := float64(dw)/2, float64(dh)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := m.TransformPoint(Point{X: float64(x) + 0.5 - cx, Y: float64(y) + 0.5 - cy})
			dx := int(math.Floor(p.X + dcx))
			dy := int(math.Floor(p.Y + dcy))
			out.SetPixel(dx, dy, pm.RGBAAt(x, y))
		}
	}
	return out
}

// Display renders and orients a frame in one step.
func Display(f *Frame) *Pixmap {
	return Orient(Render(f))
}
