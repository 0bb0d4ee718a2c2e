package render

import (
	"time"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/internal/canvas"
	"github.com/kelindar/tibiavcr/version"
)

// tileSize is the pixel footprint of one map square.
const tileSize = 32

// viewportTilesX/Y and the resulting logical canvas size: the player's own
// map buffer (gamestate.MapWidth x gamestate.MapHeight) is kept a few
// tiles larger than what's actually drawn, so incoming TileUpdated
// descriptions for the next scroll step arrive before they're needed; the
// renderer only ever draws the centered 15x11 window out of it.
const (
	viewportTilesX = 15
	viewportTilesY = 11

	LogicalWidth  = viewportTilesX * tileSize
	LogicalHeight = viewportTilesY * tileSize
)

// undergroundFloor is the z value at which a position is considered
// underground rather than a ground-level floor.
const undergroundFloor = 7

// DrawGamestate renders the tile-based viewport at LogicalWidth x
// LogicalHeight onto dst, centered on the state's own player creature. If
// the player hasn't been sighted yet (no WorldInitialized/CreatureSeen
// pair observed), the canvas is left untouched.
func DrawGamestate(opts Options, s *gamestate.State, dst *canvas.RGBA) {
	player, ok := s.Creatures.Get(s.Player.CreatureID)
	if !ok {
		return
	}

	center := player.Target
	top := center.Z
	if opts.Has(ShowUpperFloors) {
		top = topVisibleFloor(s, center)
	}

	for floor := top; floor <= center.Z; floor++ {
		drawFloor(opts, s, dst, floor, center)
	}
}

// topVisibleFloor walks upward from the player's own floor looking for the
// first obscuring solid, stopping one floor below it; underground, a
// fixed two-floor window below the player is used instead.
func topVisibleFloor(s *gamestate.State, center gamestate.Position) int {
	if center.Z > undergroundFloor {
		top := center.Z - 2
		if top < 0 {
			top = 0
		}
		return top
	}

	top := center.Z
	for z := center.Z - 1; z >= 0; z-- {
		pos := gamestate.Position{X: center.X, Y: center.Y, Z: z}
		if tileObscures(s.Assets, s.Map.Tile(pos)) {
			break
		}
		top = z
	}
	return top
}

// tileObscures reports whether t carries a ground or bottom-class object
// that isn't flagged to stay visible through (dont_hide), the signal that
// a floor above is fully roofed over at this column.
func tileObscures(store *assets.Store, t *gamestate.Tile) bool {
	for _, o := range t.Objects {
		switch gamestate.Priority(store, o) {
		case gamestate.PriorityGround, gamestate.PriorityBottom:
			if store == nil {
				return true
			}
			it, err := store.Type(assets.CategoryItem, o.ID)
			if err == nil && it != nil && it.Has(version.PropertyDontHide) {
				continue
			}
			return true
		}
	}
	return false
}

// drawFloor draws every screen tile of one floor. Floors above the
// player's own are shifted diagonally by the floor delta so a peek at a
// higher balcony reads as "closer to the camera" the way the client's own
// parallax trick does; floors at or below center.Z draw with no shift.
func drawFloor(opts Options, s *gamestate.State, dst *canvas.RGBA, floor int, center gamestate.Position) {
	shift := floor - center.Z
	now := s.CurrentTick

	for sy := 0; sy < viewportTilesY; sy++ {
		for sx := 0; sx < viewportTilesX; sx++ {
			wx := center.X - viewportTilesX/2 + sx + shift
			wy := center.Y - viewportTilesY/2 + sy + shift
			pos := gamestate.Position{X: wx, Y: wy, Z: floor}
			t := s.Map.Tile(pos)

			px := sx * tileSize
			py := sy * tileSize
			drawTile(opts, s, dst, t, pos, px, py, now)
		}
	}
}

// drawTile draws one screen tile's object stack, deferring any
// always-on-top items to the end (drawn last, in reverse insertion order)
// and dispatching creature markers to the outfit renderer.
func drawTile(opts Options, s *gamestate.State, dst *canvas.RGBA, t *gamestate.Tile, pos gamestate.Position, px, py int, now time.Duration) {
	var onTop []gamestate.Object

	for _, obj := range t.Objects {
		pri := gamestate.Priority(s.Assets, obj)
		switch {
		case pri == gamestate.PriorityAlwaysOnTop:
			onTop = append(onTop, obj)
		case obj.IsCreature:
			if opts.Has(ShowCreatures) {
				drawCreatureMarker(s, dst, obj, pos, px, py, now)
			}
		default:
			if opts.Has(ShowItems) {
				drawItem(s, dst, obj, pos, px, py, now)
			}
		}
	}

	if opts.Has(ShowEffects) {
		drawEffects(s, dst, t, px, py, now)
	}
	if opts.Has(ShowMissiles) {
		drawMissilesOverTile(s, dst, pos, px, py, now)
	}

	if opts.Has(ShowItems) {
		for i := len(onTop) - 1; i >= 0; i-- {
			drawItem(s, dst, onTop[i], pos, px, py, now)
		}
	}
}

func drawCreatureMarker(s *gamestate.State, dst *canvas.RGBA, obj gamestate.Object, pos gamestate.Position, px, py int, now time.Duration) {
	c, ok := s.Creatures.Get(obj.CreatureID)
	if !ok {
		return
	}
	ox, oy := walkOffset(c, now)
	drawOutfit(s.Assets, dst, c, now, px+ox, py+oy)
}

// walkOffset linearly interpolates the pixel displacement of a walking
// creature between its origin and target tile: offset = (origin - target)
// * (1 - progress), so it starts a full tile away from Target and eases
// to (0, 0) at WalkEnd.
func walkOffset(c *gamestate.Creature, now time.Duration) (int, int) {
	if !c.IsWalking(now) {
		return 0, 0
	}
	total := c.WalkEnd - c.WalkStart
	if total <= 0 {
		return 0, 0
	}
	progress := float64(now-c.WalkStart) / float64(total)
	remaining := 1 - progress

	dx := (c.Origin.X - c.Target.X) * tileSize
	dy := (c.Origin.Y - c.Target.Y) * tileSize
	return int(float64(dx) * remaining), int(float64(dy) * remaining)
}

func drawItem(s *gamestate.State, dst *canvas.RGBA, obj gamestate.Object, pos gamestate.Position, px, py int, now time.Duration) {
	if s.Assets == nil {
		return
	}
	t, err := s.Assets.Type(assets.CategoryItem, obj.ID)
	if err != nil || t == nil || len(t.Groups) == 0 {
		return
	}
	sel := selectItemFrame(s.Assets, s.Profile, t, obj, pos, s.Map)

	for h := 0; h < max1(t.Height); h++ {
		for w := 0; w < max1(t.Width); w++ {
			f, ok := t.FrameAt(0, 0, sel.Phase, sel.PX, sel.PY, sel.PZ, h, w)
			if !ok {
				continue
			}
			sprite, err := s.Assets.Sprite(f.SpriteID)
			if err != nil || sprite == nil {
				continue
			}
			blitSprite(dst, sprite.Image, px-w*tileSize, py-h*tileSize-t.ElevationOffset)
		}
	}
}

func drawEffects(s *gamestate.State, dst *canvas.RGBA, t *gamestate.Tile, px, py int, now time.Duration) {
	for _, e := range t.GraphicalEffects() {
		drawEffectSprite(s, dst, e, px, py, now)
	}
}

func drawEffectSprite(s *gamestate.State, dst *canvas.RGBA, e gamestate.TimedEffect, px, py int, now time.Duration) {
	if s.Assets == nil {
		return
	}
	t, err := s.Assets.Type(assets.CategoryEffect, e.ID)
	if err != nil || t == nil || len(t.Groups) == 0 {
		return
	}
	ag := t.Groups[0]
	phase := 0
	if ag.PhaseCount > 1 {
		elapsed := now - e.StartTick
		phase = int(elapsed/phaseIntervalMs) % ag.PhaseCount
		if phase < 0 {
			phase = 0
		}
	}
	f, ok := t.FrameAt(0, 0, phase, 0, 0, 0, 0, 0)
	if !ok {
		return
	}
	sprite, err := s.Assets.Sprite(f.SpriteID)
	if err != nil || sprite == nil {
		return
	}
	blitSprite(dst, sprite.Image, px, py)
}

func drawMissilesOverTile(s *gamestate.State, dst *canvas.RGBA, pos gamestate.Position, px, py int, now time.Duration) {
	for _, m := range s.Missiles.Visible(now) {
		if missileTile(m, now) != pos {
			continue
		}
		drawMissileSprite(s, dst, m, px, py)
	}
}

// missileTile rounds a missile's currently interpolated world position to
// the tile it visually occupies right now.
func missileTile(m gamestate.MissileEffect, now time.Duration) gamestate.Position {
	const window = 200 * time.Millisecond
	progress := float64(now-m.StartTick) / float64(window)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	x := m.Origin.X + int(float64(m.Target.X-m.Origin.X)*progress)
	y := m.Origin.Y + int(float64(m.Target.Y-m.Origin.Y)*progress)
	return gamestate.Position{X: x, Y: y, Z: m.Origin.Z}
}

func drawMissileSprite(s *gamestate.State, dst *canvas.RGBA, m gamestate.MissileEffect, px, py int) {
	if s.Assets == nil {
		return
	}
	t, err := s.Assets.Type(assets.CategoryMissile, m.ID)
	if err != nil || t == nil || len(t.Groups) == 0 {
		return
	}
	f, ok := t.FrameAt(0, 0, 0, 0, 0, 0, 0, 0)
	if !ok {
		return
	}
	sprite, err := s.Assets.Sprite(f.SpriteID)
	if err != nil || sprite == nil {
		return
	}
	blitSprite(dst, sprite.Image, px, py)
}
