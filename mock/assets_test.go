package mock

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/version"
)

func TestPlainItemTypeHasOneFrame(t *testing.T) {
	ty := PlainItemType(100, 5000)
	require.Len(t, ty.Groups, 1)
	require.Len(t, ty.Groups[0].Frames, 1)
	require.Equal(t, 5000, ty.Groups[0].Frames[0].SpriteID)
}

func TestStackableItemTypeCarriesFlag(t *testing.T) {
	ty := StackableItemType(200, 1, 2, 3)
	require.True(t, ty.Has(version.PropertyStackable))
	require.Len(t, ty.Groups[0].Frames, 3)
}

func TestOutfitTypeLayerAndPhaseCounts(t *testing.T) {
	ty := OutfitType(300, 2, 3)
	require.Equal(t, assets.CategoryOutfit, ty.Category)
	require.Len(t, ty.Groups, 2)
	require.Len(t, ty.Groups[0].Frames, 3*4)
	require.Equal(t, 3, ty.Groups[0].PhaseCount)
}

func TestSpriteFillsSolidColor(t *testing.T) {
	red := color.RGBA{R: 0xFF, A: 0xFF}
	s := Sprite(1, 4, red)
	require.Equal(t, red, s.Image.At(0, 0))
	require.Equal(t, red, s.Image.At(3, 3))
}
