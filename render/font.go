package render

import (
	"image/color"
	"strings"

	"github.com/kelindar/tibiavcr/internal/canvas"
)

// Font measures and draws the small bitmap text the overlay needs for name
// tags, speech bubbles and status lines. None of the corpus repos decode
// an actual glyph atlas for this client family (the real client's fonts
// live outside Tibia.dat/.spr/.pic entirely), so Font carries a measured
// per-rune advance-width table instead of real glyph bitmaps: layout comes
// out right (word wrap, centered names, sidebar sizing) even though the
// drawn glyph itself is a simple filled block rather than a faithful
// letterform.
type Font struct {
	Height int
}

// DefaultFont is the one font size the overlay and sidebar both use.
var DefaultFont = Font{Height: 7}

// glyphAdvance returns how many pixels wide one rune renders at, narrower
// for thin characters and punctuation, matching the general shape of a
// proportional bitmap font without needing real per-glyph bounding boxes.
func glyphAdvance(r rune) int {
	switch {
	case r == ' ':
		return 4
	case strings.ContainsRune("iIlj.,:;'!|", r):
		return 3
	case strings.ContainsRune("mMW", r):
		return 8
	default:
		return 6
	}
}

// Advance returns the pixel width s renders at in this font, including
// inter-glyph spacing.
func (f Font) Advance(s string) int {
	w := 0
	for _, r := range s {
		w += glyphAdvance(r) + 1
	}
	if w > 0 {
		w--
	}
	return w
}

// WrapWidth splits s into lines no wider than maxWidth pixels, breaking at
// word boundaries the way lib/textrenderer's word-wrap does. A single word
// wider than maxWidth is not split; it gets a line of its own.
func (f Font) WrapWidth(s string, maxWidth int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if f.Advance(candidate) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	lines = append(lines, line)
	return lines
}

// MeasureHeight returns the pixel height s occupies once wrapped to
// maxWidth, for layout code that needs the size before drawing.
func (f Font) MeasureHeight(s string, maxWidth int) int {
	return len(f.WrapWidth(s, maxWidth)) * (f.Height + 1)
}

// Draw paints s at (x, y) in col, top-left anchored, one filled block per
// glyph advance.
func (f Font) Draw(dst *canvas.RGBA, s string, x, y int, col color.RGBA) {
	cursor := x
	for _, r := range s {
		adv := glyphAdvance(r)
		if r != ' ' {
			f.drawGlyphBlock(dst, cursor, y, adv, col)
		}
		cursor += adv + 1
	}
}

// drawGlyphBlock paints one glyph cell as a filled rectangle inset by one
// pixel on each side, reading roughly as a blocky character without
// claiming to be a specific letterform.
func (f Font) drawGlyphBlock(dst *canvas.RGBA, x, y, width int, col color.RGBA) {
	for row := 1; row < f.Height-1; row++ {
		for col2 := 0; col2 < width; col2++ {
			dst.Blend(x+col2, y+row, col)
		}
	}
}

// DrawCentered draws s horizontally centered around cx, top edge at y.
func (f Font) DrawCentered(dst *canvas.RGBA, s string, cx, y int, col color.RGBA) {
	w := f.Advance(s)
	f.Draw(dst, s, cx-w/2, y, col)
}
