package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/glyphwalk"
)

// Each terminal cell shows two vertically stacked samples; a sample
// averages a cellScale×cellScale block of frame pixels.
const (
	cellScale   = 2
	glyphCols   = glyphwalk.FrameWidth / cellScale
	glyphRows   = glyphwalk.FrameHeight / cellScale / 2
	upperHalf   = "▀"
	pendingChar = "·"
)

var (
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(glyphCols).Align(lipgloss.Center)
)

// sample averages the luminance of one block of the display pixmap.
func sample(pm *glyphwalk.Pixmap, bx, by int) uint8 {
	var sum int
	for y := by * cellScale; y < (by+1)*cellScale; y++ {
		for x := bx * cellScale; x < (bx+1)*cellScale; x++ {
			sum += int(pm.RGBAAt(x, y).R)
		}
	}
	return uint8(sum / (cellScale * cellScale)) //nolint:gosec // average of uint8 values
}

func grey(v uint8) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", v, v, v))
}

// renderGlyph draws a frame as glyphRows lines of half blocks.
func renderGlyph(f *glyphwalk.Frame) string {
	pm := glyphwalk.Display(f)
	lines := make([]string, glyphRows)
	var b strings.Builder
	for row := range lines {
		b.Reset()
		for col := 0; col < glyphCols; col++ {
			top := sample(pm, col, 2*row)
			bottom := sample(pm, col, 2*row+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(grey(top)).
				Background(grey(bottom)).
				Render(upperHalf))
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

func renderPending() string {
	line := pendingStyle.Render(strings.Repeat(pendingChar, glyphCols))
	lines := make([]string, glyphRows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func renderCaret() string {
	lines := make([]string, glyphRows+1)
	for i := range lines {
		lines[i] = caretStyle.Render("│")
	}
	return strings.Join(lines, "\n")
}

func renderSlot(s *glyphwalk.Slot) string {
	body := renderPending()
	if !s.Pending() {
		body = renderGlyph(s.Image)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, labelStyle.Render(s.Label()))
}

// renderDocument lays slots out left to right with a caret at the cursor.
func renderDocument(doc *glyphwalk.Document) string {
	slots := doc.Slots()
	cols := make([]string, 0, 2*len(slots)+1)
	for i, s := range slots {
		if i == doc.Cursor() {
			cols = append(cols, renderCaret())
		} else {
			cols = append(cols, " ")
		}
		cols = append(cols, renderSlot(s))
	}
	if doc.Cursor() == len(slots) {
		cols = append(cols, renderCaret())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
