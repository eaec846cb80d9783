// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// labeler measures and draws short single-line labels in Go Regular.
//
// Advances come from the HarfBuzz shaper so kerning pairs are centred
// correctly; glyphs are drawn with an x/image OpenType face. Neither the
// shaper nor the face is safe for concurrent use, so a labeler belongs to
// one goroutine at a time.
type labeler struct {
	size   float64
	shaper shaping.HarfbuzzShaper
	shape  *gotext.Face
	face   font.Face
}

func newLabeler(size float64) (*labeler, error) {
	parsed, err := gotext.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("surface: parse label font: %w", err)
	}
	sf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("surface: parse label font: %w", err)
	}
	face, err := opentype.NewFace(sf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("surface: label face: %w", err)
	}
	return &labeler{
		size:  size,
		shape: gotext.NewFace(parsed.Font),
		face:  face,
	}, nil
}

// Height is the line height in pixels.
func (l *labeler) Height() int {
	return l.face.Metrics().Height.Ceil()
}

// Advance is the shaped width of text in 26.6 fixed point.
func (l *labeler) Advance(text string) fixed.Int26_6 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	out := l.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      l.shape,
		Size:      fixed.Int26_6(l.size * 64),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	})
	return out.Advance
}

// DrawCentered draws text horizontally centred on cx with its line box
// starting at top.
func (l *labeler) DrawCentered(dst *image.RGBA, text string, cx, top int, c color.Color) {
	if text == "" {
		return
	}
	m := l.face.Metrics()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: l.face,
	}
	d.Dot = fixed.Point26_6{
		X: fixed.I(cx) - l.Advance(text)/2,
		Y: fixed.I(top) + m.Ascent,
	}
	d.DrawString(text)
}

func (l *labeler) Close() error {
	return l.face.Close()
}
