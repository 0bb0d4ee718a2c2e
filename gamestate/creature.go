package gamestate

import (
	"time"

	"github.com/kelindar/intmap"
	"github.com/kelindar/tibiavcr/protocol"
)

// Outfit reuses the protocol package's shape: either "wear this item" or a
// full character outfit (body type plus the four palette-indexed color
// layers and an addon bitmask).
type Outfit = protocol.Outfit

// CreatureKind classifies what a Creature represents.
type CreatureKind int

const (
	CreatureUnknown CreatureKind = iota
	CreaturePlayer
	CreatureMonster
	CreatureNPC
	CreatureOwnSummon
	CreatureOtherSummon
)

// Creature is everything known about one sighted creature: its static
// attributes plus the movement state the renderer interpolates between
// ticks.
type Creature struct {
	ID          uint32
	Name        string
	Kind        CreatureKind
	HealthPct   int
	Direction   int
	LightIntensity, LightColor int
	Speed       int
	Skull       int
	Shield      int
	WarIcon     int
	NPCCategory int
	Impassable  bool
	Outfit      Outfit

	// Movement state: Origin/Target bound the tiles a walk interpolates
	// between; WalkStart/WalkEnd are the tick window the move spans. The
	// pixel displacement is not stored here; the renderer recomputes it
	// every frame from CurrentTick.
	Origin    Position
	Target    Position
	WalkStart time.Duration
	WalkEnd   time.Duration
}

// IsWalking reports whether, at tick now, this creature is mid-movement.
func (c *Creature) IsWalking(now time.Duration) bool {
	return c.WalkEnd > c.WalkStart && now >= c.WalkStart && now < c.WalkEnd
}

// creatureSlot wraps a Creature with a liveness flag so a freed arena slot
// can be told apart from one still holding live data.
type creatureSlot struct {
	Creature
	alive bool
}

// CreatureTable is an arena of creatures addressed by their protocol id.
// Slots are reused once a creature is removed, matching the server's own
// habit of recycling small creature-reference ids.
type CreatureTable struct {
	slots []creatureSlot
	free  []int
	index *intmap.Map
}

func newCreatureTable() *CreatureTable {
	return &CreatureTable{index: intmap.New(256, .95)}
}

// Get returns the creature with the given id, if currently known.
func (t *CreatureTable) Get(id uint32) (*Creature, bool) {
	slot, ok := t.index.Load(id)
	if !ok || slot == 0 {
		return nil, false
	}
	s := &t.slots[slot-1]
	if !s.alive {
		return nil, false
	}
	return &s.Creature, true
}

// Upsert inserts or overwrites the creature with id c.ID, returning a
// pointer to its stored copy.
func (t *CreatureTable) Upsert(c Creature) *Creature {
	if slot, ok := t.index.Load(c.ID); ok && slot != 0 && t.slots[slot-1].alive {
		t.slots[slot-1].Creature = c
		return &t.slots[slot-1].Creature
	}

	var slot int
	if n := len(t.free); n > 0 {
		slot = t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[slot] = creatureSlot{Creature: c, alive: true}
	} else {
		slot = len(t.slots)
		t.slots = append(t.slots, creatureSlot{Creature: c, alive: true})
	}
	t.index.Store(c.ID, uint32(slot+1))
	return &t.slots[slot].Creature
}

// Remove forgets the creature with the given id and frees its slot for
// reuse by a later Upsert.
func (t *CreatureTable) Remove(id uint32) {
	slot, ok := t.index.Load(id)
	if !ok || slot == 0 {
		return
	}
	t.slots[slot-1].alive = false
	t.free = append(t.free, int(slot-1))
	t.index.Store(id, 0)
}
