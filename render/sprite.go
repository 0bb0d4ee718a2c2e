package render

import (
	"image/color"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/internal/canvas"
	"github.com/kelindar/tibiavcr/version"
)

// stackableBuckets are the upper count bounds a stackable item's pattern-x
// sprite variant steps through: 1, 2, 3, 4, 5-9, 10-24, 25-49, then 50 and
// more (a count of 0 counts as 1). Modern clients
// (version.FeatureFlags.ModernStacking) use this 8-step table;
// older ones only distinguish a handful of the low counts and otherwise
// fall back to the last bucket.
var stackableBuckets = []int{1, 2, 3, 4, 9, 24, 49}

// stackBucket converts a raw item count into the pattern-x index selecting
// its stacked-sprite variant.
func stackBucket(count int, modern bool) int {
	if count <= 0 {
		count = 1
	}
	if !modern {
		if count >= len(stackableBuckets) {
			return len(stackableBuckets)
		}
		return count - 1
	}
	for i, max := range stackableBuckets {
		if count <= max {
			return i
		}
	}
	return len(stackableBuckets)
}

// itemSpriteSelection holds the resolved (layer, phase, px, py, pz)
// coordinate an item sprite is drawn with at a given world position and
// tick.
type itemSpriteSelection struct {
	Layer, Phase, PX, PY, PZ int
}

// selectItemFrame resolves which frame of an item's default group to draw
// for obj sitting at world position pos. Ordinary items tile their
// (PatternX, PatternY, PatternZ) variants against world coordinates so
// neighboring identical ground tiles don't look uniformly repeated;
// stackables instead use PatternX to select a count-bucketed sprite;
// fluid containers/splashes use it to select a color variant; hangables
// pick a horizontal/vertical variant from their own type flags.
func selectItemFrame(store *assets.Store, profile *version.Profile, t *assets.Type, obj gamestate.Object, pos gamestate.Position, m *gamestate.Map) itemSpriteSelection {
	sel := itemSpriteSelection{
		PX: floorMod(pos.X, max1(t.PatternX)),
		PY: floorMod(pos.Y, max1(t.PatternY)),
		PZ: floorMod(pos.Z, max1(t.PatternZ)),
	}

	switch {
	case t.Has(version.PropertyStackable):
		sel.PX = stackBucket(int(obj.ExtraByte), profile != nil && profile.Features.ModernStacking)
	case t.Has(version.PropertyFluidContainer), t.Has(version.PropertySplash):
		if profile != nil {
			sel.PX = profile.FluidColor(obj.ExtraByte) % max1(t.PatternX)
		}
	case t.Has(version.PropertyHangable):
		sel.PX = hangableVariant(t, pos, m)
	}
	return sel
}

// hangableVariant picks between the horizontal (0) and vertical (1)
// decoration sprite from the type's own PropertyHorizontal/PropertyVertical
// flags. Neighboring tiles are not examined; pos and m are unused.
func hangableVariant(t *assets.Type, pos gamestate.Position, m *gamestate.Map) int {
	if t.PatternX < 2 {
		return 0
	}
	if t.Has(version.PropertyHorizontal) {
		return 0
	}
	if t.Has(version.PropertyVertical) {
		return 1 % t.PatternX
	}
	return 0
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// floorMod is like pos.X % m but always returns a value in [0, m).
func floorMod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

// blitSprite draws src onto dst at (dstX, dstY), top-left aligned,
// skipping fully-transparent pixels.
func blitSprite(dst *canvas.RGBA, src *canvas.RGBA, dstX, dstY int) {
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
			dst.Blend(dstX+(x-b.Min.X), dstY+(y-b.Min.Y), color.RGBA{R: byte(r >> 8), G: byte(g >> 8), B: byte(bl >> 8), A: byte(a >> 8)})
		}
	}
}
