// Package gamestate maintains the playable world view a recording produces
// as its events are applied in order: the visible map window, known
// creatures, open containers, the player's own attributes, and the
// transient effects/messages a renderer needs to draw a single frame.
//
// State never parses bytes itself; it only consumes protocol.Event values
// already normalized by the protocol package, and never reaches back into
// it. Apply is meant to be called once per event, strictly in recording
// order; CurrentTick must be advanced by the caller (normally the frame's
// timestamp) before Apply processes that frame's events.
package gamestate

import (
	"fmt"
	"time"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/version"
)

// State is the full mutable world view built up by replaying a recording's
// events. It holds no reference to the recording or the parser that
// produced those events.
type State struct {
	Assets  *assets.Store
	Profile *version.Profile

	// CurrentTick is the playback clock. Apply uses it to stamp anything
	// that needs a start time (walk animations, effects, messages); the
	// caller is responsible for setting it before applying a frame.
	CurrentTick time.Duration

	Map        *Map
	Creatures  *CreatureTable
	Containers map[int]*Container
	Player     Player
	Missiles   *MissileRing
	Messages   *MessageLog
}

// New returns an empty State ready to Apply events against. store may be
// nil for tests that never touch item-property lookups; any Apply path
// that needs it will fall back to treating the item as an ordinary
// on-top item.
func New(store *assets.Store, profile *version.Profile) *State {
	return &State{
		Assets:     store,
		Profile:    profile,
		Map:        NewMap(),
		Creatures:  newCreatureTable(),
		Containers: make(map[int]*Container),
		Missiles:   newMissileRing(),
		Messages:   newMessageLog(),
	}
}

// Reset clears every collection back to empty, as happens on a seek to a
// point before the recording's own WorldInitialized event. The player's own
// creature id, kept so a later WorldInitialized can be matched against it,
// survives the reset.
func (s *State) Reset() {
	ownID := s.Player.CreatureID
	s.Map = NewMap()
	s.Creatures = newCreatureTable()
	s.Containers = make(map[int]*Container)
	s.Missiles = newMissileRing()
	s.Messages = newMessageLog()
	s.Player = Player{CreatureID: ownID}
}

// Apply folds one parsed event into the state. Unrecognized event kinds
// (EventUnknown, or a kind added to protocol but not yet handled here) are
// silently ignored rather than erroring, so a newer parser stays
// forward-compatible with an older gamestate.
func (s *State) Apply(e protocol.Event) error {
	switch e.Kind {
	case EventUnknownKind:
		return nil

	case protocol.EventWorldInitialized:
		return s.applyWorldInitialized(e)
	case protocol.EventPlayerMoved:
		return s.applyPlayerMoved(e)
	case protocol.EventFullMapDescription:
		return s.applyFullMapDescription(e)
	case protocol.EventFloorChangeUp, protocol.EventFloorChangeDown:
		return s.applyFloorChange(e)
	case protocol.EventAmbientLightChanged:
		return nil // no gamestate-visible effect beyond what the renderer reads live

	case protocol.EventTileUpdated:
		return s.applyTileUpdated(e)
	case protocol.EventTileObjectAdded:
		return s.applyTileObjectAdded(e)
	case protocol.EventTileObjectTransformed:
		return s.applyTileObjectTransformed(e)
	case protocol.EventTileObjectRemoved:
		return s.applyTileObjectRemoved(e)

	case protocol.EventCreatureSeen:
		return s.applyCreatureSeen(e)
	case protocol.EventCreatureRemoved:
		return s.applyCreatureRemoved(e)
	case protocol.EventCreatureMoved:
		return s.applyCreatureMoved(e)
	case protocol.EventCreatureHealthChanged:
		return s.withCreature(e.CreatureID, func(c *Creature) { c.HealthPct = e.Health })
	case protocol.EventCreatureHeadingChanged:
		return s.withCreature(e.CreatureID, func(c *Creature) { c.Direction = e.Heading })
	case protocol.EventCreatureLightChanged:
		return s.withCreature(e.CreatureID, func(c *Creature) {
			c.LightIntensity, c.LightColor = e.LightIntensity, e.LightColor
		})
	case protocol.EventCreatureOutfitChanged:
		return s.withCreature(e.CreatureID, func(c *Creature) { c.Outfit = e.Outfit })
	case protocol.EventCreatureSpeedChanged:
		return s.withCreature(e.CreatureID, func(c *Creature) { c.Speed = e.Speed })
	case protocol.EventCreatureSkullChanged:
		return s.withCreature(e.CreatureID, func(c *Creature) { c.Skull = e.Skull })
	case protocol.EventCreatureShieldChanged:
		return s.withCreature(e.CreatureID, func(c *Creature) { c.Shield = e.Shield })
	case protocol.EventCreatureImpassableChanged:
		return s.withCreature(e.CreatureID, func(c *Creature) { c.Impassable = e.Impassable })
	case protocol.EventCreatureTypeChanged:
		return s.withCreature(e.CreatureID, func(c *Creature) { c.Kind = CreatureKind(e.Creature.Type) })
	case protocol.EventCreatureNPCCategoryChanged:
		return s.withCreature(e.CreatureID, func(c *Creature) { c.NPCCategory = e.NPCCategory })
	case protocol.EventCreaturePvPHelpersChanged, protocol.EventGuildMembersOnlineChanged:
		return nil // cosmetic icon-bar data the renderer reads straight off the event stream today

	case protocol.EventPlayerInventoryUpdated:
		return s.applyInventoryUpdated(e)
	case protocol.EventPlayerBlessingsUpdated:
		s.Player.Blessings = e.Player.IconsMask
		return nil
	case protocol.EventPlayerHotkeyPresetUpdated:
		return nil // hotkey presets are not surfaced by the renderer; nothing to store
	case protocol.EventPlayerDataBasicUpdated, protocol.EventPlayerDataUpdated:
		s.Player.applyUpdate(e.Player)
		return nil
	case protocol.EventPlayerSkillsUpdated:
		return nil // the event carries no skill values, so Player.Skills is left unchanged
	case protocol.EventPlayerIconsUpdated:
		s.Player.IconsMask = e.Player.IconsMask
		return nil
	case protocol.EventPlayerTacticsUpdated:
		s.Player.AttackMode = e.Player.AttackMode
		s.Player.ChaseMode = e.Player.ChaseMode
		s.Player.SecureMode = e.Player.SecureMode
		return nil
	case protocol.EventPvPSituationsChanged:
		s.Player.PvPMode = e.Player.PvPMode
		return nil

	case protocol.EventCreatureSpoke, protocol.EventCreatureSpokeOnMap,
		protocol.EventCreatureSpokeInChannel, protocol.EventStatusMessageReceived,
		protocol.EventStatusMessageReceivedInChannel:
		return s.applyMessage(e)
	case protocol.EventChannelListUpdated, protocol.EventChannelOpened,
		protocol.EventChannelClosed, protocol.EventPrivateConversationOpened:
		return nil // channel membership bookkeeping lives in the client UI layer, not gamestate

	case protocol.EventContainerOpened:
		return s.applyContainerOpened(e)
	case protocol.EventContainerClosed:
		delete(s.Containers, e.Container.ContainerID)
		return nil
	case protocol.EventContainerAddedItem:
		return s.applyContainerAdded(e)
	case protocol.EventContainerTransformedItem:
		return s.applyContainerTransformed(e)
	case protocol.EventContainerRemovedItem:
		return s.applyContainerRemoved(e)

	case protocol.EventNumberEffectPopped:
		return s.applyNumberEffect(e)
	case protocol.EventGraphicalEffectPopped:
		return s.applyGraphicalEffect(e)
	case protocol.EventMissileFired:
		s.Missiles.Push(MissileEffect{ID: e.EffectID, Origin: e.Position, Target: e.Position2, StartTick: s.CurrentTick})
		return nil
	}

	return nil
}

// EventUnknownKind mirrors protocol.EventUnknown without importing it twice
// in the switch above; kept as a local alias purely for readability.
const EventUnknownKind = protocol.EventUnknown

func (s *State) withCreature(id uint32, fn func(*Creature)) error {
	c, ok := s.Creatures.Get(id)
	if !ok {
		return fmt.Errorf("gamestate: creature %d not seen before attribute update", id)
	}
	fn(c)
	return nil
}
