package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/internal/canvas"
)

func TestPlainOutfitColorsIsZeroValue(t *testing.T) {
	require.Equal(t, gamestate.Outfit{}, plainOutfitColors())
}

func TestDrawOutfitNilStoreIsNoop(t *testing.T) {
	dst := canvas.New(image.Rect(0, 0, 32, 32))
	c := &gamestate.Creature{Direction: 2}

	require.NotPanics(t, func() {
		drawOutfit(nil, dst, c, 0, 0, 0)
	})
}

func TestBlitTintedNilSourceIsNoop(t *testing.T) {
	dst := canvas.New(image.Rect(0, 0, 8, 8))
	require.NotPanics(t, func() {
		blitTinted(dst, nil, 0, 0, gamestate.Outfit{})
	})
}

func TestBlitTintedAppliesPaletteColors(t *testing.T) {
	src := canvas.New(image.Rect(0, 0, 1, 1))
	src.Fill(color.RGBA{R: 0xFF, A: 0xFF})
	dst := canvas.New(image.Rect(0, 0, 1, 1))

	blitTinted(dst, src, 0, 0, gamestate.Outfit{Primary: 5})

	require.Equal(t, paletteColor(5), dst.At(0, 0))
}
