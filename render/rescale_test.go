package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kelindar/tibiavcr/internal/canvas"
)

func TestRescaleProducesRequestedSize(t *testing.T) {
	src := canvas.New(image.Rect(0, 0, 8, 8))
	src.Fill(color.RGBA{R: 0x80, G: 0x40, B: 0x20, A: 0xFF})

	out := Rescale(src, 16, 24)
	require.Equal(t, 16, out.Bounds().Dx())
	require.Equal(t, 24, out.Bounds().Dy())
}

func TestRescaleUniformFillStaysUniform(t *testing.T) {
	src := canvas.New(image.Rect(0, 0, 4, 4))
	src.Fill(color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF})

	out := Rescale(src, 10, 10)
	c := out.At(5, 5).(color.RGBA)
	require.InDelta(t, 0x10, int(c.R), 2)
	require.InDelta(t, 0x20, int(c.G), 2)
	require.InDelta(t, 0x30, int(c.B), 2)
}

func TestRescaleZeroSizeIsSafe(t *testing.T) {
	src := canvas.New(image.Rect(0, 0, 4, 4))
	out := Rescale(src, 0, 0)
	require.Equal(t, 0, out.Bounds().Dx())
}
