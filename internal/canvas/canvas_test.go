package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAt(t *testing.T) {
	c := New(image.Rect(0, 0, 4, 4))
	c.SetRGBA(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	got := c.At(1, 1).(color.RGBA)
	require.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, got)
}

func TestOutOfBoundsIgnored(t *testing.T) {
	c := New(image.Rect(0, 0, 2, 2))
	c.SetRGBA(5, 5, color.RGBA{R: 1, G: 1, B: 1, A: 1})
	require.Equal(t, color.RGBA{}, c.At(5, 5))
}

func TestBlendHalfAlpha(t *testing.T) {
	c := New(image.Rect(0, 0, 1, 1))
	c.SetRGBA(0, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	c.Blend(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 128})

	got := c.At(0, 0).(color.RGBA)
	require.InDelta(t, 128, int(got.R), 2)
}

func TestSubImageSharesPixels(t *testing.T) {
	c := New(image.Rect(0, 0, 4, 4))
	sub := c.SubImage(image.Rect(1, 1, 3, 3))
	sub.SetRGBA(1, 1, color.RGBA{R: 9, G: 9, B: 9, A: 255})

	got := c.At(1, 1).(color.RGBA)
	require.EqualValues(t, 9, got.R)
}
