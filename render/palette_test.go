package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaletteColorClamps(t *testing.T) {
	require.Equal(t, outfitPalette[0], paletteColor(-5))
	require.Equal(t, outfitPalette[len(outfitPalette)-1], paletteColor(9999))
}

func TestTintMaskPixelClassifiesChannels(t *testing.T) {
	_, ok := tintMaskPixel(0, 0, 0, 1, 2, 3, 4)
	require.False(t, ok, "fully dark mask pixel carries no tint")

	c, ok := tintMaskPixel(0xFF, 0, 0, 1, 2, 3, 4)
	require.True(t, ok)
	require.Equal(t, paletteColor(1), c)

	c, ok = tintMaskPixel(0xFF, 0xFF, 0, 1, 2, 3, 4)
	require.True(t, ok)
	require.Equal(t, paletteColor(3), c, "red+green resolves to the head index")

	c, ok = tintMaskPixel(0, 0, 0xFF, 1, 2, 3, 4)
	require.True(t, ok)
	require.Equal(t, paletteColor(4), c)
}
