package render

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/internal/canvas"
)

func TestNumberEffectColorKnownBytes(t *testing.T) {
	require.Equal(t, colorRed, numberEffectColor(5))
	require.Equal(t, colorGreen, numberEffectColor(81))
	require.Equal(t, colorBlue, numberEffectColor(89))
	require.Equal(t, colorGray, numberEffectColor(215))
}

func TestNumberEffectColorUnknownFallsBackToWhite(t *testing.T) {
	require.Equal(t, colorWhite, numberEffectColor(9999))
}

func TestDrawOverlayNoopWithoutSightedPlayer(t *testing.T) {
	s := gamestate.New(nil, nil)
	dst := canvas.New(image.Rect(0, 0, LogicalWidth, LogicalHeight))

	require.NotPanics(t, func() {
		DrawOverlay(DefaultOptions, s, dst)
	})
}

func TestDrawHealthBarClampsPercent(t *testing.T) {
	dst := canvas.New(image.Rect(0, 0, 64, 16))
	require.NotPanics(t, func() {
		drawHealthBar(dst, 32, 5, -10)
		drawHealthBar(dst, 32, 5, 250)
	})
}

func TestDrawFloatingNumberExpiresAfterWindow(t *testing.T) {
	dst := canvas.New(image.Rect(0, 0, 64, 64))
	e := gamestate.TimedEffect{ID: 42, StartTick: 0}

	require.NotPanics(t, func() {
		drawFloatingNumber(dst, e, 32, 32, numberEffectWindow)
		drawFloatingNumber(dst, e, 32, 32, numberEffectWindow+time.Second)
		drawFloatingNumber(dst, e, 32, 32, -time.Second)
	})
}
