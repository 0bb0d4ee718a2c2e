// Package mock provides lightweight in-memory fixtures for gamestate and
// asset data, used by tests across the module in place of a real
// recording or a file-backed asset store.
package mock

import (
	"time"

	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/version"
)

// State builds a gamestate.State with a sighted own player, ready for
// render/gamestate tests that need a non-trivial fixture without going
// through a real recording.
func State(profile *version.Profile) *gamestate.State {
	if profile == nil {
		profile = version.New(version.Triplet{Major: 10, Minor: 98})
	}
	s := gamestate.New(nil, profile)
	const playerID = 1
	s.Player.CreatureID = playerID
	s.Creatures.Upsert(gamestate.Creature{
		ID:     playerID,
		Name:   "Test Player",
		Kind:   gamestate.CreaturePlayer,
		Origin: gamestate.Position{X: 100, Y: 100, Z: 7},
		Target: gamestate.Position{X: 100, Y: 100, Z: 7},
	})
	return s
}

// AddCreature upserts a monster/NPC at pos into s, returning it.
func AddCreature(s *gamestate.State, id uint32, pos gamestate.Position, kind gamestate.CreatureKind) *gamestate.Creature {
	return s.Creatures.Upsert(gamestate.Creature{
		ID:     id,
		Kind:   kind,
		Origin: pos,
		Target: pos,
	})
}

// WalkingCreature upserts a creature mid-walk between origin and target,
// spanning [start, end) on s's own clock.
func WalkingCreature(s *gamestate.State, id uint32, origin, target gamestate.Position, start, end time.Duration) *gamestate.Creature {
	return s.Creatures.Upsert(gamestate.Creature{
		ID:        id,
		Kind:      gamestate.CreatureMonster,
		Origin:    origin,
		Target:    target,
		WalkStart: start,
		WalkEnd:   end,
	})
}

// Container builds a gamestate.Container holding n placeholder items.
func Container(id int, name string, n int) *gamestate.Container {
	items := make([]gamestate.Object, n)
	for i := range items {
		items[i] = gamestate.Object{ID: 100 + i}
	}
	return &gamestate.Container{
		ID:         id,
		Name:       name,
		TotalCount: n,
		Items:      items,
	}
}

// WorldInitialized builds the event that establishes s's own creature id,
// the first event any real recording emits.
func WorldInitialized(creatureID uint32) protocol.Event {
	return protocol.Event{Kind: protocol.EventWorldInitialized, CreatureID: creatureID}
}
