package mock

import (
	"image"
	"image/color"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/internal/canvas"
	"github.com/kelindar/tibiavcr/version"
)

// assets.Store caches its type/sprite tables behind unexported fields
// populated by reading real client files, so it can't be fed fixture data
// directly from another package; these builders instead construct the
// exported assets.Type/canvas.Sprite values a test needs in isolation,
// independent of a Store.

// PlainItemType builds a single-frame, non-stackable ground/item type
// backed by spriteID.
func PlainItemType(id, spriteID int) *assets.Type {
	return &assets.Type{
		ID:       id,
		Category: assets.CategoryItem,
		Width:    1,
		Height:   1,
		Groups: []assets.AnimationGroup{
			{Frames: []assets.Frame{{SpriteID: spriteID, Width: 1, Height: 1}}, MinTicks: 1, MaxTicks: 1, PhaseCount: 1},
		},
	}
}

// StackableItemType builds an item type flagged PropertyStackable, whose
// sprite frame for a given pile size is picked by stackBucket.
func StackableItemType(id int, spriteIDs ...int) *assets.Type {
	frames := make([]assets.Frame, len(spriteIDs))
	for i, sid := range spriteIDs {
		frames[i] = assets.Frame{SpriteID: sid, Width: 1, Height: 1}
	}
	return &assets.Type{
		ID:       id,
		Category: assets.CategoryItem,
		Width:    1,
		Height:   1,
		Properties: map[version.ItemProperty]assets.PropertyValue{
			version.PropertyStackable: {},
		},
		Groups: []assets.AnimationGroup{
			{Frames: frames, MinTicks: 1, MaxTicks: 1, PhaseCount: 1},
		},
	}
}

// OutfitType builds an outfit type with the given layer count and one
// animation group per layer, each group holding phaseCount frames for each
// of 4 directions.
func OutfitType(id, layers, phaseCount int) *assets.Type {
	groups := make([]assets.AnimationGroup, layers)
	for i := range groups {
		frames := make([]assets.Frame, phaseCount*4) // 4 directions
		for p := range frames {
			frames[p] = assets.Frame{SpriteID: id*1000 + i*100 + p, Width: 1, Height: 1}
		}
		groups[i] = assets.AnimationGroup{Frames: frames, MinTicks: 300, MaxTicks: 300, PhaseCount: phaseCount}
	}
	return &assets.Type{
		ID:       id,
		Category: assets.CategoryOutfit,
		Width:    1,
		Height:   1,
		Layers:   layers,
		Groups:   groups,
	}
}

// Sprite builds a solid-color canvas.Sprite, handy for blit/tint tests
// that only care about pixel values, not decoding.
func Sprite(id, size int, fill color.RGBA) *canvas.Sprite {
	img := canvas.New(image.Rect(0, 0, size, size))
	img.Fill(fill)
	return &canvas.Sprite{ID: id, Image: img, Width: size, Height: size}
}
