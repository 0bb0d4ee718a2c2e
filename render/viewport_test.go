package render

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/internal/canvas"
	"github.com/kelindar/tibiavcr/protocol"
)

func sightedPlayerState(t *testing.T) *gamestate.State {
	t.Helper()
	s := gamestate.New(nil, nil)
	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventWorldInitialized, CreatureID: 1}))
	require.NoError(t, s.Apply(protocol.Event{
		Kind:     protocol.EventCreatureSeen,
		Position: protocol.Position{X: 100, Y: 100, Z: 7},
		Creature: protocol.CreatureSeen{ID: 1, Name: "Hero", HealthPct: 100},
	}))
	return s
}

func TestDrawGamestateNoopWithoutSightedPlayer(t *testing.T) {
	s := gamestate.New(nil, nil)
	dst := canvas.New(image.Rect(0, 0, LogicalWidth, LogicalHeight))

	require.NotPanics(t, func() {
		DrawGamestate(DefaultOptions, s, dst)
	})
}

func TestDrawGamestateHonorsUpperFloorsOption(t *testing.T) {
	s := sightedPlayerState(t)
	dst := canvas.New(image.Rect(0, 0, LogicalWidth, LogicalHeight))

	require.NotPanics(t, func() {
		DrawGamestate(DefaultOptions&^ShowUpperFloors, s, dst)
	})
	require.NotPanics(t, func() {
		DrawGamestate(DefaultOptions, s, dst)
	})
}

func TestTopVisibleFloorUndergroundUsesFixedWindow(t *testing.T) {
	s := gamestate.New(nil, nil)
	top := topVisibleFloor(s, gamestate.Position{X: 0, Y: 0, Z: 10})
	require.Equal(t, 8, top)
}

func TestTopVisibleFloorUndergroundClampsAtZero(t *testing.T) {
	s := gamestate.New(nil, nil)
	top := topVisibleFloor(s, gamestate.Position{X: 0, Y: 0, Z: 8})
	require.Equal(t, 6, top)
}

func TestTopVisibleFloorAboveGroundWithNoObscuringTile(t *testing.T) {
	s := gamestate.New(nil, nil)
	top := topVisibleFloor(s, gamestate.Position{X: 0, Y: 0, Z: 3})
	require.Equal(t, 0, top)
}

func TestTileObscuresEmptyTileIsFalse(t *testing.T) {
	tile := &gamestate.Tile{}
	require.False(t, tileObscures(nil, tile))
}

func TestWalkOffsetZeroWhenNotWalking(t *testing.T) {
	c := &gamestate.Creature{}
	dx, dy := walkOffset(c, 0)
	require.Equal(t, 0, dx)
	require.Equal(t, 0, dy)
}

func TestWalkOffsetStartsFullTileAway(t *testing.T) {
	c := &gamestate.Creature{
		Origin:    gamestate.Position{X: 5, Y: 5},
		Target:    gamestate.Position{X: 6, Y: 5},
		WalkStart: 0,
		WalkEnd:   200 * time.Millisecond,
	}
	dx, dy := walkOffset(c, 0)
	require.Equal(t, -tileSize, dx)
	require.Equal(t, 0, dy)
}

func TestWalkOffsetReachesZeroAtWalkEnd(t *testing.T) {
	c := &gamestate.Creature{
		Origin:    gamestate.Position{X: 5, Y: 5},
		Target:    gamestate.Position{X: 6, Y: 5},
		WalkStart: 0,
		WalkEnd:   200 * time.Millisecond,
	}
	dx, dy := walkOffset(c, 200*time.Millisecond)
	require.Equal(t, 0, dx)
	require.Equal(t, 0, dy)
}

func TestMissileTileClampsProgressToOriginAndTarget(t *testing.T) {
	m := gamestate.MissileEffect{
		Origin:    gamestate.Position{X: 0, Y: 0, Z: 0},
		Target:    gamestate.Position{X: 10, Y: 0, Z: 0},
		StartTick: 100 * time.Millisecond,
	}
	before := missileTile(m, 0)
	require.Equal(t, gamestate.Position{X: 0, Y: 0, Z: 0}, before)

	after := missileTile(m, time.Second)
	require.Equal(t, gamestate.Position{X: 10, Y: 0, Z: 0}, after)
}
