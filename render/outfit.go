package render

import (
	"time"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/internal/canvas"
)

// phaseIntervalMs is how long each animation frame stays on screen before
// advancing to the next, for both walking and idle frame groups.
const phaseIntervalMs = 100 * time.Millisecond

// outfitWalkGroup and outfitIdleGroup index a Type's animation groups when
// it carries the separate walking/idle split (Groups has more than one
// entry); a Type with only one group uses it for both states.
const (
	outfitIdleGroup = 0
	outfitWalkGroup = 1
)

// mountRiderLift is how many pixels a mounted rider's own outfit is drawn
// above the mount's sprite origin, matching the client's fixed rider seat
// offset rather than a per-mount value (no mount seat table survives in
// the filtered asset records).
const mountRiderLift = 8

// drawOutfit composites one creature's outfit (mount, body, addons, color
// layer) onto dst at the given top-left pixel anchor, which is the tile's
// screen origin plus whatever walk-interpolation offset the caller already
// computed.
func drawOutfit(store *assets.Store, dst *canvas.RGBA, c *gamestate.Creature, now time.Duration, x, y int) {
	if store == nil {
		return
	}
	o := c.Outfit
	if o.HasMount && o.MountOutfit != 0 {
		if mt, err := store.Type(assets.CategoryOutfit, o.MountOutfit); err == nil && mt != nil {
			drawOutfitBody(store, dst, mt, plainOutfitColors(), c.Direction, c.IsWalking(now), now, c.WalkStart, x, y)
		}
		y -= mountRiderLift
	}

	t, err := store.Type(assets.CategoryOutfit, o.LookType)
	if err != nil || t == nil {
		return
	}
	drawOutfitBody(store, dst, t, o, c.Direction, c.IsWalking(now), now, c.WalkStart, x, y)
}

// plainOutfitColors is the neutral (untinted) color set a mount's own body
// draws with; mounts aren't colored by the rider's outfit palette.
func plainOutfitColors() gamestate.Outfit { return gamestate.Outfit{} }

func drawOutfitBody(store *assets.Store, dst *canvas.RGBA, t *assets.Type, o gamestate.Outfit, direction int, walking bool, now, walkStart time.Duration, x, y int) {
	group := outfitIdleGroup
	if walking && len(t.Groups) > outfitWalkGroup {
		group = outfitWalkGroup
	}
	if group >= len(t.Groups) {
		group = 0
	}
	if len(t.Groups) == 0 {
		return
	}
	ag := t.Groups[group]

	phase := 0
	if ag.PhaseCount > 1 {
		ref := now
		if walking {
			ref = now - walkStart
		}
		phase = int(ref/phaseIntervalMs) % ag.PhaseCount
	}

	for py := 0; py < max1(t.PatternY); py++ {
		if py > 0 && o.Addons&(1<<uint(py-1)) == 0 {
			continue
		}
		for layer := 0; layer < max1(t.Layers); layer++ {
			drawOutfitLayer(store, dst, t, group, layer, phase, direction, py, o, x, y)
		}
	}
}

func drawOutfitLayer(store *assets.Store, dst *canvas.RGBA, t *assets.Type, group, layer, phase, direction, py int, o gamestate.Outfit, x, y int) {
	for h := 0; h < max1(t.Height); h++ {
		for w := 0; w < max1(t.Width); w++ {
			f, ok := t.FrameAt(group, layer, phase, direction, py, 0, h, w)
			if !ok {
				continue
			}
			sprite, err := store.Sprite(f.SpriteID)
			if err != nil || sprite == nil {
				continue
			}
			ox := x - w*tileSize
			oy := y - h*tileSize
			if layer == 1 {
				blitTinted(dst, sprite.Image, ox, oy, o)
			} else {
				blitSprite(dst, sprite.Image, ox, oy)
			}
		}
	}
}

// blitTinted draws src as a color-mask layer, resolving each non-background
// pixel through the outfit's four palette indices instead of copying the
// mask's own (meaningless) colors.
func blitTinted(dst *canvas.RGBA, src *canvas.RGBA, dstX, dstY int, o gamestate.Outfit) {
	if src == nil {
		return
	}
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			tinted, ok := tintMaskPixel(byte(r>>8), byte(g>>8), byte(bl>>8), o.Primary, o.Secondary, o.Head, o.Detail)
			if !ok {
				continue
			}
			dst.Blend(dstX+(x-b.Min.X), dstY+(y-b.Min.Y), tinted)
		}
	}
}
