package mock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/protocol"
)

func TestStateHasSightedOwnPlayer(t *testing.T) {
	s := State(nil)
	c, ok := s.Creatures.Get(s.Player.CreatureID)
	require.True(t, ok)
	require.Equal(t, gamestate.CreaturePlayer, c.Kind)
}

func TestAddCreature(t *testing.T) {
	s := State(nil)
	pos := gamestate.Position{X: 101, Y: 100, Z: 7}
	c := AddCreature(s, 2, pos, gamestate.CreatureMonster)
	require.Equal(t, pos, c.Origin)
	got, ok := s.Creatures.Get(2)
	require.True(t, ok)
	require.Equal(t, c.ID, got.ID)
}

func TestWalkingCreatureIsWalkingDuringWindow(t *testing.T) {
	s := State(nil)
	origin := gamestate.Position{X: 100, Y: 100, Z: 7}
	target := gamestate.Position{X: 101, Y: 100, Z: 7}
	c := WalkingCreature(s, 3, origin, target, 0, 200*time.Millisecond)
	require.True(t, c.IsWalking(100*time.Millisecond))
	require.False(t, c.IsWalking(300*time.Millisecond))
}

func TestContainerBuildsPlaceholderItems(t *testing.T) {
	c := Container(1, "Bag", 4)
	require.Len(t, c.Items, 4)
	require.Equal(t, 4, c.TotalCount)
}

func TestWorldInitializedEvent(t *testing.T) {
	e := WorldInitialized(7)
	require.Equal(t, protocol.EventWorldInitialized, e.Kind)
	require.EqualValues(t, 7, e.CreatureID)
}
