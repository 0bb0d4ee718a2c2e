package gamestate

import (
	"fmt"
	"math"
	"time"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/version"
)

func (s *State) applyWorldInitialized(e protocol.Event) error {
	s.Player.CreatureID = e.CreatureID
	return nil
}

func (s *State) applyPlayerMoved(e protocol.Event) error {
	return nil // the player's own creature record tracks position like any other; nothing extra to store here
}

func (s *State) applyFullMapDescription(e protocol.Event) error {
	return nil // individual TileUpdated events for the revealed columns do the actual writing
}

func (s *State) applyFloorChange(e protocol.Event) error {
	return nil // floor transitions only affect which window the following TileUpdated events target
}

// applyTileUpdated handles the per-object events a full tile description
// unpacks into (protocol emits one Event per object, stamping StackPos
// with that object's index in the batch). StackPos 0 means "first object
// of a fresh description", so the tile is cleared before anything from
// that batch is inserted; an object with no content (bare tile-clear
// sentinel for an emptied tile) is dropped after the reset.
func (s *State) applyTileUpdated(e protocol.Event) error {
	t := s.Map.Tile(e.Position)
	if e.StackPos == 0 {
		t.Reset()
	}
	if e.Object.ID == 0 && !e.Object.IsCreature {
		return nil
	}
	if e.Object.IsCreature {
		// A CreatureMarker here must already resolve to a creature seen
		// through a prior CreatureSeen record; only its last-known tile
		// is refreshed, never its attributes.
		if c, ok := s.Creatures.Get(e.Object.CreatureID); ok {
			c.Origin, c.Target = e.Position, e.Position
		}
	}
	t.Insert(s.Assets, e.Object, -1)
	return nil
}

func (s *State) applyTileObjectAdded(e protocol.Event) error {
	t := s.Map.Tile(e.Position)
	t.Insert(s.Assets, e.Object, e.StackPos)
	return nil
}

func (s *State) applyTileObjectTransformed(e protocol.Event) error {
	t := s.Map.Tile(e.Position)
	if t.ReplaceAt(e.StackPos, e.Object) {
		return nil
	}
	return fmt.Errorf("gamestate: transform at %v stack position %d out of range", e.Position, e.StackPos)
}

func (s *State) applyTileObjectRemoved(e protocol.Event) error {
	t := s.Map.Tile(e.Position)
	t.RemoveAt(e.StackPos)
	return nil
}

func (s *State) applyCreatureSeen(e protocol.Event) error {
	seen := e.Creature
	c := Creature{
		ID:             seen.ID,
		Name:           seen.Name,
		Kind:           CreatureKind(seen.Type),
		HealthPct:      seen.HealthPct,
		Direction:      seen.Direction,
		LightIntensity: seen.Light.Intensity,
		LightColor:     seen.Light.Color,
		Speed:          seen.Speed,
		Skull:          seen.Skull,
		Shield:         seen.Shield,
		NPCCategory:    seen.NPCCategory,
		Impassable:     seen.Impassable,
		Outfit:         seen.Outfit,
		Origin:         e.Position,
		Target:         e.Position,
	}
	s.Creatures.Upsert(c)

	t := s.Map.Tile(e.Position)
	t.Insert(s.Assets, Object{IsCreature: true, CreatureID: seen.ID}, e.StackPos)
	return nil
}

func (s *State) applyCreatureRemoved(e protocol.Event) error {
	c, ok := s.Creatures.Get(e.CreatureID)
	if !ok {
		return fmt.Errorf("gamestate: removing unseen creature %d", e.CreatureID)
	}
	t := s.Map.Tile(c.Origin)
	if idx := t.IndexOfCreature(e.CreatureID); idx >= 0 {
		t.RemoveAt(idx)
	}
	s.Creatures.Remove(e.CreatureID)
	return nil
}

// speedFormulaA, speedFormulaB and speedFormulaC are the published
// constants for the logarithmic step-duration formula modern clients use
// once a creature's speed exceeds what the old linear table could express.
const (
	speedFormulaA = 857.36
	speedFormulaB = 261.29
	speedFormulaC = -4795.01

	// groundSpeedDefault is the fallback ground item speed used when the
	// destination tile's ground item can't be resolved (no asset store
	// wired, or the tile carries no ground item yet).
	groundSpeedDefault = 100
)

// stepDurationMs returns how many milliseconds a single-tile walk onto a
// tile with the given ground speed takes for a creature moving at speed.
// The legacy linear formula uses speed directly as the effective movement
// speed; the modern logarithmic formula first derives an effective
// movement speed from the creature's raw speed, then both scale the
// destination tile's ground speed against it the same way.
func stepDurationMs(speed, groundSpeed int, modern bool) time.Duration {
	if speed <= 0 {
		speed = 1
	}
	if groundSpeed <= 0 {
		groundSpeed = groundSpeedDefault
	}
	movementSpeed := float64(speed)
	if modern {
		movementSpeed = speedFormulaA*math.Log(float64(speed)+speedFormulaB) + speedFormulaC
	}
	ms := float64(groundSpeed) * 1000.0 / movementSpeed
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// groundSpeedAt resolves the ground item's speed property for the tile at
// pos, falling back to groundSpeedDefault when no asset store is wired or
// the tile carries no ground item.
func (s *State) groundSpeedAt(pos Position) int {
	if s.Assets == nil {
		return groundSpeedDefault
	}
	t := s.Map.Tile(pos)
	for _, obj := range t.Objects {
		if obj.IsCreature {
			continue
		}
		ty, err := s.Assets.Type(assets.CategoryItem, obj.ID)
		if err != nil || ty == nil || !ty.Has(version.PropertyGround) {
			continue
		}
		if ty.GroundSpeed > 0 {
			return ty.GroundSpeed
		}
	}
	return groundSpeedDefault
}

func (s *State) applyCreatureMoved(e protocol.Event) error {
	c, ok := s.Creatures.Get(e.CreatureID)
	if !ok {
		return fmt.Errorf("gamestate: moving unseen creature %d", e.CreatureID)
	}

	from, to := e.Position, e.ToPosition
	origin := s.Map.Tile(from)
	if idx := origin.IndexOfCreature(e.CreatureID); idx >= 0 {
		origin.RemoveAt(idx)
	}

	dx, dy, dz := to.X-from.X, to.Y-from.Y, to.Z-from.Z
	c.Direction = headingFromDelta(dx, dy, c.Direction)
	c.Origin = from
	c.Target = to

	if dz != 0 {
		// Floor changes teleport instantly; no walk animation spans them.
		c.WalkStart = s.CurrentTick
		c.WalkEnd = s.CurrentTick
	} else {
		modern := s.Profile != nil && s.Profile.Protocol.Has(version.ProtocolSpeedAdjustment)
		groundSpeed := s.groundSpeedAt(to)
		c.WalkStart = s.CurrentTick
		c.WalkEnd = s.CurrentTick + stepDurationMs(c.Speed, groundSpeed, modern)
	}

	dest := s.Map.Tile(to)
	dest.Insert(s.Assets, Object{IsCreature: true, CreatureID: e.CreatureID}, -1)
	return nil
}

// headingFromDelta derives a facing direction from a one-tile move. Ties
// (both axes changed, diagonal move) resolve in favor of the horizontal
// axis, matching the client's own tie-break.
func headingFromDelta(dx, dy, current int) int {
	const (
		north = 0
		east  = 1
		south = 2
		west  = 3
	)
	switch {
	case dx > 0:
		return east
	case dx < 0:
		return west
	case dy > 0:
		return south
	case dy < 0:
		return north
	default:
		return current
	}
}

func (s *State) applyInventoryUpdated(e protocol.Event) error {
	slot := InventorySlot(e.Container.SlotIndex)
	if slot < 0 || int(slot) >= int(slotCount) {
		return fmt.Errorf("gamestate: inventory slot %d out of range", e.Container.SlotIndex)
	}
	if e.Container.Item.ID == 0 && !e.Container.Item.IsCreature {
		s.Player.HasItem[slot] = false
		s.Player.Inventory[slot] = Object{}
		return nil
	}
	s.Player.Inventory[slot] = e.Container.Item
	s.Player.HasItem[slot] = true
	return nil
}

func (s *State) applyContainerOpened(e protocol.Event) error {
	u := e.Container
	s.Containers[u.ContainerID] = &Container{
		ID:           u.ContainerID,
		Name:         u.Name,
		IconItemID:   u.IconItemID,
		SlotsPerPage: u.SlotsPerPage,
		StartIndex:   u.StartIndex,
		TotalCount:   u.TotalCount,
		Items:        append([]Object(nil), u.Items...),
		HasParent:    u.HasParent,
		DragAndDrop:  u.DragAndDrop,
	}
	return nil
}

func (s *State) applyContainerAdded(e protocol.Event) error {
	c, ok := s.Containers[e.Container.ContainerID]
	if !ok {
		return fmt.Errorf("gamestate: item added to unopened container %d", e.Container.ContainerID)
	}
	// The wire packet for an added item carries no slot index: new items
	// always land at the front of the currently displayed page.
	c.insertAt(0, e.Container.Item)
	c.TotalCount++
	return nil
}

func (s *State) applyContainerTransformed(e protocol.Event) error {
	c, ok := s.Containers[e.Container.ContainerID]
	if !ok {
		return fmt.Errorf("gamestate: item transformed in unopened container %d", e.Container.ContainerID)
	}
	index := e.Container.SlotIndex - c.StartIndex
	if index < 0 || index >= len(c.Items) {
		return fmt.Errorf("gamestate: container %d transform index %d out of range", c.ID, index)
	}
	c.Items[index] = e.Container.Item
	return nil
}

func (s *State) applyContainerRemoved(e protocol.Event) error {
	c, ok := s.Containers[e.Container.ContainerID]
	if !ok {
		return fmt.Errorf("gamestate: item removed from unopened container %d", e.Container.ContainerID)
	}
	index := e.Container.SlotIndex - c.StartIndex

	var backfill *Object
	if e.Container.Item.ID != 0 || e.Container.Item.IsCreature {
		item := e.Container.Item
		backfill = &item
	}
	c.removeAt(index, backfill)
	if c.TotalCount > 0 {
		c.TotalCount--
	}
	return nil
}

func (s *State) applyNumberEffect(e protocol.Event) error {
	t := s.Map.Tile(e.Position)
	t.pushNumberEffect(TimedEffect{ID: e.EffectID, Color: e.LightColor, StartTick: s.CurrentTick})
	return nil
}

func (s *State) applyGraphicalEffect(e protocol.Event) error {
	t := s.Map.Tile(e.Position)
	t.pushGraphicalEffect(TimedEffect{ID: e.EffectID, StartTick: s.CurrentTick})
	return nil
}
