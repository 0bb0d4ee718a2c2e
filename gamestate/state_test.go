package gamestate

import (
	"testing"
	"time"

	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/version"
	"github.com/stretchr/testify/require"
)

func testState() *State {
	return New(nil, version.New(version.Triplet{Major: 10, Minor: 98}))
}

func TestWorldInitializedSetsOwnCreatureID(t *testing.T) {
	s := testState()
	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventWorldInitialized, CreatureID: 42}))
	require.EqualValues(t, 42, s.Player.CreatureID)
}

func TestCreatureSeenThenRemoved(t *testing.T) {
	s := testState()
	pos := Position{X: 100, Y: 100, Z: 7}

	err := s.Apply(protocol.Event{
		Kind:     protocol.EventCreatureSeen,
		Position: pos,
		StackPos: -1,
		Creature: protocol.CreatureSeen{ID: 7, Name: "Rat", HealthPct: 100},
	})
	require.NoError(t, err)

	c, ok := s.Creatures.Get(7)
	require.True(t, ok)
	require.Equal(t, "Rat", c.Name)

	tile := s.Map.Tile(pos)
	require.Equal(t, 0, tile.IndexOfCreature(7))

	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventCreatureRemoved, CreatureID: 7}))
	_, ok = s.Creatures.Get(7)
	require.False(t, ok)
	require.Equal(t, -1, tile.IndexOfCreature(7))
}

func TestCreatureMovedUpdatesTilesAndWalkWindow(t *testing.T) {
	s := testState()
	from := Position{X: 10, Y: 10, Z: 7}
	to := Position{X: 11, Y: 10, Z: 7}

	require.NoError(t, s.Apply(protocol.Event{
		Kind:     protocol.EventCreatureSeen,
		Position: from,
		StackPos: -1,
		Creature: protocol.CreatureSeen{ID: 1, Speed: 220},
	}))

	s.CurrentTick = 5 * time.Second
	require.NoError(t, s.Apply(protocol.Event{
		Kind:       protocol.EventCreatureMoved,
		CreatureID: 1,
		Position:   from,
		ToPosition: to,
	}))

	require.Equal(t, -1, s.Map.Tile(from).IndexOfCreature(1))
	require.Equal(t, 0, s.Map.Tile(to).IndexOfCreature(1))

	c, ok := s.Creatures.Get(1)
	require.True(t, ok)
	require.Equal(t, to, c.Target)
	require.True(t, c.WalkEnd > c.WalkStart)
	require.True(t, c.IsWalking(s.CurrentTick))
	require.False(t, c.IsWalking(c.WalkEnd+time.Second))
}

func TestCreatureMovedRequiresPriorSighting(t *testing.T) {
	s := testState()
	err := s.Apply(protocol.Event{
		Kind:       protocol.EventCreatureMoved,
		CreatureID: 99,
		Position:   Position{X: 1, Y: 1, Z: 7},
		ToPosition: Position{X: 2, Y: 1, Z: 7},
	})
	require.Error(t, err)
}

func TestTileObjectStackOrdering(t *testing.T) {
	s := testState()
	pos := Position{X: 5, Y: 5, Z: 7}

	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventTileObjectAdded, Position: pos, StackPos: -1, Object: protocol.Object{ID: 100}}))
	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventTileObjectAdded, Position: pos, StackPos: -1, Object: protocol.Object{ID: 101}}))

	tile := s.Map.Tile(pos)
	require.Len(t, tile.Objects, 2)

	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventTileObjectRemoved, Position: pos, StackPos: 0}))
	require.Len(t, tile.Objects, 1)
	require.Equal(t, 101, tile.Objects[0].ID)
}

func TestTileUpdatedResetsOnFirstObjectOnly(t *testing.T) {
	s := testState()
	pos := Position{X: 2, Y: 2, Z: 7}

	tile := s.Map.Tile(pos)
	tile.Insert(nil, protocol.Object{ID: 999}, -1)
	require.Len(t, tile.Objects, 1)

	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventTileUpdated, Position: pos, StackPos: 0, Object: protocol.Object{ID: 1}}))
	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventTileUpdated, Position: pos, StackPos: 1, Object: protocol.Object{ID: 2}}))

	require.Len(t, tile.Objects, 2)
	require.Equal(t, 1, tile.Objects[0].ID)
	require.Equal(t, 2, tile.Objects[1].ID)
}

func TestTileUpdatedClearEvent(t *testing.T) {
	s := testState()
	pos := Position{X: 3, Y: 3, Z: 7}
	tile := s.Map.Tile(pos)
	tile.Insert(nil, protocol.Object{ID: 1}, -1)

	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventTileUpdated, Position: pos, StackPos: 0}))
	require.Empty(t, tile.Objects)
}

func TestContainerLifecycle(t *testing.T) {
	s := testState()

	require.NoError(t, s.Apply(protocol.Event{
		Kind: protocol.EventContainerOpened,
		Container: protocol.ContainerUpdate{
			ContainerID: 1,
			TotalCount:  2,
			Items: []protocol.Object{
				{ID: 10}, {ID: 11},
			},
		},
	}))

	c := s.Containers[1]
	require.Len(t, c.Items, 2)

	require.NoError(t, s.Apply(protocol.Event{
		Kind:      protocol.EventContainerAddedItem,
		Container: protocol.ContainerUpdate{ContainerID: 1, Item: protocol.Object{ID: 20}},
	}))
	require.Equal(t, 20, c.Items[0].ID)
	require.Equal(t, 3, c.TotalCount)

	require.NoError(t, s.Apply(protocol.Event{
		Kind:      protocol.EventContainerRemovedItem,
		Container: protocol.ContainerUpdate{ContainerID: 1, SlotIndex: 0},
	}))
	require.Equal(t, 10, c.Items[0].ID)
	require.Equal(t, 2, c.TotalCount)

	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventContainerClosed, Container: protocol.ContainerUpdate{ContainerID: 1}}))
	_, ok := s.Containers[1]
	require.False(t, ok)
}

func TestMissileRingEvictsOldest(t *testing.T) {
	r := newMissileRing()
	for i := 0; i < missileRingSize+10; i++ {
		r.Push(MissileEffect{ID: i, StartTick: time.Duration(i) * time.Millisecond})
	}
	visible := r.Visible(time.Duration(missileRingSize+9) * time.Millisecond)
	require.NotEmpty(t, visible)
	require.Equal(t, missileRingSize+9, visible[0].ID)
}

func TestMessageLogPrunesByMode(t *testing.T) {
	log := newMessageLog()
	log.Append(Message{Mode: version.MessageSay, Text: "hi", StartTick: 0})
	log.Append(Message{Mode: version.MessageChannelWhite, Text: "chan", StartTick: 0})

	log.Prune(5 * time.Second)
	remaining := log.All()
	require.Len(t, remaining, 1)
	require.Equal(t, version.MessageChannelWhite, remaining[0].Mode)
}

func TestResetKeepsOwnCreatureID(t *testing.T) {
	s := testState()
	require.NoError(t, s.Apply(protocol.Event{Kind: protocol.EventWorldInitialized, CreatureID: 5}))
	require.NoError(t, s.Apply(protocol.Event{
		Kind:     protocol.EventCreatureSeen,
		Position: Position{X: 1, Y: 1, Z: 7},
		StackPos: -1,
		Creature: protocol.CreatureSeen{ID: 1},
	}))

	s.Reset()
	require.EqualValues(t, 5, s.Player.CreatureID)
	_, ok := s.Creatures.Get(1)
	require.False(t, ok)
}
