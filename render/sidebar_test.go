package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/internal/canvas"
)

func TestSidebarWidthExported(t *testing.T) {
	require.Equal(t, sidebarWidth, SidebarWidth)
}

func TestRatioPct(t *testing.T) {
	require.Equal(t, 0, ratioPct(5, 0))
	require.Equal(t, 50, ratioPct(50, 100))
	require.Equal(t, 100, ratioPct(150, 100))
	require.Equal(t, 0, ratioPct(-5, 100))
}

func TestDrawStatusBarsMatchesMeasuredHeight(t *testing.T) {
	s := gamestate.New(nil, nil)
	s.Player.Health, s.Player.MaxHealth = 50, 100
	dst := canvas.New(image.Rect(0, 0, sidebarWidth, 200))

	next := DrawStatusBars(DefaultOptions, s, dst, 0, 10)
	require.Equal(t, 10+MeasureStatusBarsHeight(DefaultOptions), next)
}

func TestDrawStatusBarsSkippedWhenOptionOff(t *testing.T) {
	s := gamestate.New(nil, nil)
	dst := canvas.New(image.Rect(0, 0, sidebarWidth, 200))

	opts := DefaultOptions &^ ShowStatusBars
	next := DrawStatusBars(opts, s, dst, 0, 10)
	require.Equal(t, 10, next)
	require.Equal(t, 0, MeasureStatusBarsHeight(opts))
}

func TestDrawInventoryAreaMatchesMeasuredHeight(t *testing.T) {
	s := gamestate.New(nil, nil)
	dst := canvas.New(image.Rect(0, 0, sidebarWidth, 400))

	next := DrawInventoryArea(DefaultOptions, s, dst, 0, 0)
	require.Equal(t, MeasureInventoryAreaHeight(DefaultOptions), next)
}

func TestDrawIconBarMatchesMeasuredHeight(t *testing.T) {
	s := gamestate.New(nil, nil)
	s.Player.IconsMask = 0b101
	dst := canvas.New(image.Rect(0, 0, sidebarWidth, 50))

	next := DrawIconBar(DefaultOptions, s, dst, 0, 0)
	require.Equal(t, MeasureIconBarHeight(DefaultOptions), next)
}

func TestDrawContainerMatchesMeasuredHeight(t *testing.T) {
	c := &gamestate.Container{Name: "Bag", Items: make([]gamestate.Object, 5)}
	dst := canvas.New(image.Rect(0, 0, sidebarWidth, 400))

	next := DrawContainer(DefaultOptions, c, dst, nil, 0, 0)
	require.Equal(t, MeasureContainerHeight(DefaultOptions, len(c.Items)), next)
}

func TestDrawContainerNilIsNoop(t *testing.T) {
	dst := canvas.New(image.Rect(0, 0, sidebarWidth, 400))
	next := DrawContainer(DefaultOptions, nil, dst, nil, 0, 7)
	require.Equal(t, 7, next)
}

func TestDrawClientBackgroundMatchesMeasuredHeight(t *testing.T) {
	dst := canvas.New(image.Rect(0, 0, sidebarWidth, 400))
	next := DrawClientBackground(DefaultOptions, dst, 0, 5, 100)
	require.Equal(t, 5+MeasureClientBackgroundHeight(DefaultOptions, 100), next)
}
