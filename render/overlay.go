package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/internal/canvas"
)

// numberEffectWindow bounds how long a floating damage/heal number stays
// on screen, drifting upward over that span.
const numberEffectWindow = 1500 * time.Millisecond

// numberEffectDriftPixels is the total upward travel a floating number
// covers over its display window.
const numberEffectDriftPixels = 20

var (
	colorWhite = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorRed   = color.RGBA{R: 0xE0, G: 0x20, B: 0x20, A: 0xFF}
	colorGreen = color.RGBA{R: 0x20, G: 0xC0, B: 0x30, A: 0xFF}
	colorBlue  = color.RGBA{R: 0x40, G: 0x80, B: 0xFF, A: 0xFF}
	colorGray  = color.RGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF}
)

// numberEffectColor maps a protocol color byte onto a display color;
// the wire byte space is much larger than these buckets so anything
// unrecognized falls back to white.
func numberEffectColor(c int) color.RGBA {
	switch {
	case c == 5 || c == 180:
		return colorRed
	case c == 81 || c == 30:
		return colorGreen
	case c == 89:
		return colorBlue
	case c == 215:
		return colorGray
	default:
		return colorWhite
	}
}

// DrawOverlay draws name tags, health bars, status icons, floating
// damage/heal numbers and speech bubbles for every creature and message
// currently visible on the player's own floor, scaled to dst's actual
// size rather than the fixed logical map resolution DrawGamestate uses —
// so the overlay still lines up correctly after the caller rescales the
// map canvas up or down to the output video resolution.
func DrawOverlay(opts Options, s *gamestate.State, dst *canvas.RGBA) {
	player, ok := s.Creatures.Get(s.Player.CreatureID)
	if !ok {
		return
	}
	center := player.Target
	now := s.CurrentTick

	b := dst.Bounds()
	scaleX := float64(b.Dx()) / float64(LogicalWidth)
	scaleY := float64(b.Dy()) / float64(LogicalHeight)

	for sy := 0; sy < viewportTilesY; sy++ {
		for sx := 0; sx < viewportTilesX; sx++ {
			wx := center.X - viewportTilesX/2 + sx
			wy := center.Y - viewportTilesY/2 + sy
			pos := gamestate.Position{X: wx, Y: wy, Z: center.Z}
			t := s.Map.Tile(pos)

			baseX := float64(sx*tileSize) * scaleX
			baseY := float64(sy*tileSize) * scaleY

			drawTileOverlay(opts, s, dst, t, pos, baseX, baseY, scaleX, scaleY, now)
		}
	}

	if opts.Has(ShowSpeechBubbles) {
		drawSpeechBubbles(s, dst, center, scaleX, scaleY, now)
	}
}

func drawTileOverlay(opts Options, s *gamestate.State, dst *canvas.RGBA, t *gamestate.Tile, pos gamestate.Position, baseX, baseY, scaleX, scaleY float64, now time.Duration) {
	for _, obj := range t.Objects {
		if !obj.IsCreature {
			continue
		}
		c, ok := s.Creatures.Get(obj.CreatureID)
		if !ok {
			continue
		}
		ox, oy := walkOffset(c, now)
		cx := int(baseX) + int(float64(ox)*scaleX) + int(tileSize*scaleX/2)
		top := int(baseY) + int(float64(oy)*scaleY)

		if opts.Has(ShowNames) && c.Name != "" {
			DefaultFont.DrawCentered(dst, c.Name, cx, top-DefaultFont.Height-2, colorWhite)
		}
		if opts.Has(ShowHealthBars) {
			drawHealthBar(dst, cx, top-3, c.HealthPct)
		}
		if opts.Has(ShowStatusIcons) {
			drawStatusIcons(dst, cx, top-DefaultFont.Height-12, c)
		}
	}

	if opts.Has(ShowFloatingNumbers) {
		for _, e := range t.NumberEffects() {
			drawFloatingNumber(dst, e, int(baseX+tileSize*scaleX/2), int(baseY), now)
		}
	}
}

const healthBarWidth = 27

func drawHealthBar(dst *canvas.RGBA, cx, y, pct int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	x0 := cx - healthBarWidth/2
	fill := healthBarWidth * pct / 100

	barColor := colorGreen
	switch {
	case pct <= 30:
		barColor = colorRed
	case pct <= 60:
		barColor = color.RGBA{R: 0xE0, G: 0xA0, B: 0x20, A: 0xFF}
	}

	for x := 0; x < healthBarWidth; x++ {
		col := color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF}
		if x < fill {
			col = barColor
		}
		dst.Blend(x0+x, y, col)
		dst.Blend(x0+x, y+1, col)
	}
}

// drawStatusIcons draws a short row of colored squares standing in for the
// skull/shield/war-icon glyphs the real client overlays above a name tag;
// no icon sprite decoder exists for this client family in the corpus, so
// each active status renders as a flat-colored marker instead of its real
// glyph.
func drawStatusIcons(dst *canvas.RGBA, cx, y int, c *gamestate.Creature) {
	x := cx - 8
	if c.Skull != 0 {
		fillBlock(dst, x, y, 6, 6, colorRed)
		x += 8
	}
	if c.Shield != 0 {
		fillBlock(dst, x, y, 6, 6, colorBlue)
		x += 8
	}
	if c.WarIcon != 0 {
		fillBlock(dst, x, y, 6, 6, color.RGBA{R: 0xFF, G: 0x80, B: 0, A: 0xFF})
	}
}

func fillBlock(dst *canvas.RGBA, x, y, w, h int, col color.RGBA) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			dst.Blend(x+dx, y+dy, col)
		}
	}
}

func drawFloatingNumber(dst *canvas.RGBA, e gamestate.TimedEffect, cx, baseY int, now time.Duration) {
	elapsed := now - e.StartTick
	if elapsed < 0 || elapsed >= numberEffectWindow {
		return
	}
	progress := float64(elapsed) / float64(numberEffectWindow)
	y := baseY - int(progress*numberEffectDriftPixels)

	text := fmt.Sprintf("%d", e.ID)
	DefaultFont.DrawCentered(dst, text, cx, y, numberEffectColor(e.Color))
}

// speechBubbleMaxWidth is the pixel width speech-bubble text wraps at; a
// bubble is drawn for as long as Messages.Visible still returns its message.
const speechBubbleMaxWidth = 120

func drawSpeechBubbles(s *gamestate.State, dst *canvas.RGBA, center gamestate.Position, scaleX, scaleY float64, now time.Duration) {
	for _, msg := range s.Messages.Visible(now) {
		if !msg.HasPosition || msg.Position.Z != center.Z {
			continue
		}
		relX := msg.Position.X - (center.X - viewportTilesX/2)
		relY := msg.Position.Y - (center.Y - viewportTilesY/2)
		if relX < 0 || relX >= viewportTilesX || relY < 0 || relY >= viewportTilesY {
			continue
		}
		cx := int(float64(relX*tileSize+tileSize/2) * scaleX)
		top := int(float64(relY*tileSize) * scaleY)

		lines := DefaultFont.WrapWidth(msg.Text, speechBubbleMaxWidth)
		y := top - len(lines)*(DefaultFont.Height+1) - 4
		for _, line := range lines {
			DefaultFont.DrawCentered(dst, line, cx, y, colorWhite)
			y += DefaultFont.Height + 1
		}
	}
}
