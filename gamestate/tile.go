package gamestate

import (
	"time"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/version"
)

// Position is an absolute world coordinate; z is the floor index [0, 15],
// with 7 the sea-level reference floor. It is the same shape protocol
// already produces events in, so the two packages share one definition
// instead of forcing a conversion at every call site.
type Position = protocol.Position

// Object is either an item or a reference to a creature standing on the
// tile, reusing the protocol package's wire-level shape directly.
type Object = protocol.Object

// maxTileObjects is the stack depth a tile keeps; the server never sends
// more than this many distinct things on one square.
const maxTileObjects = 10

// effectRingSize bounds how many recent number/graphical effects a tile
// remembers; only the last few are ever still visible by the time a new
// one pops, so older entries are simply overwritten.
const effectRingSize = 4

// StackPriority orders objects within a tile's stack for both storage and
// rendering: ground first, then bottom items, then ordinary (on-top)
// items, then creatures, then the handful of items flagged to always draw
// above creatures (hanging decorations, awnings).
type StackPriority int

const (
	PriorityGround StackPriority = iota
	PriorityBottom
	PriorityOnTop
	PriorityCreature
	PriorityAlwaysOnTop
)

// TimedEffect is one entry of a tile's number/graphical effect ring: an
// effect catalog id (or, for number effects, the numeric value itself)
// plus the tick it started animating at. Color only applies to number
// effects, where the wire event carries a separate color byte alongside
// the value.
type TimedEffect struct {
	ID        int
	Color     int
	StartTick time.Duration
}

// Tile is one square of the visible map: an ordered object stack plus the
// transient effects currently playing over it.
type Tile struct {
	Objects []Object

	numberEffects [effectRingSize]TimedEffect
	numberNext    int
	graphEffects  [effectRingSize]TimedEffect
	graphNext     int
}

// Reset empties the tile back to its zero state, used when the map window
// recenters over a square last occupied by stale data.
func (t *Tile) Reset() {
	t.Objects = t.Objects[:0]
	t.numberEffects = [effectRingSize]TimedEffect{}
	t.numberNext = 0
	t.graphEffects = [effectRingSize]TimedEffect{}
	t.graphNext = 0
}

// pushNumberEffect and pushGraphicalEffect append into their respective
// fixed-size rings, overwriting the oldest entry once full.
func (t *Tile) pushNumberEffect(e TimedEffect) {
	t.numberEffects[t.numberNext%effectRingSize] = e
	t.numberNext++
}

func (t *Tile) pushGraphicalEffect(e TimedEffect) {
	t.graphEffects[t.graphNext%effectRingSize] = e
	t.graphNext++
}

// NumberEffects and GraphicalEffects return the ring contents in the order
// they were pushed, oldest surviving entry first. Unused slots (before the
// ring has filled once) are omitted.
func (t *Tile) NumberEffects() []TimedEffect { return ringSlice(t.numberEffects[:], t.numberNext) }
func (t *Tile) GraphicalEffects() []TimedEffect { return ringSlice(t.graphEffects[:], t.graphNext) }

func ringSlice(ring []TimedEffect, next int) []TimedEffect {
	n := len(ring)
	if next < n {
		return append([]TimedEffect(nil), ring[:next]...)
	}
	out := make([]TimedEffect, 0, n)
	start := next % n
	for i := 0; i < n; i++ {
		out = append(out, ring[(start+i)%n])
	}
	return out
}

// Priority classifies obj for stack ordering. A nil store (tests that
// never wire assets) treats every non-creature object as an ordinary
// on-top item, which is a safe default: insertion order is preserved and
// nothing crashes for lack of a type table.
func Priority(store *assets.Store, obj Object) StackPriority {
	if obj.IsCreature {
		return PriorityCreature
	}
	if store == nil {
		return PriorityOnTop
	}
	t, err := store.Type(assets.CategoryItem, obj.ID)
	if err != nil || t == nil {
		return PriorityOnTop
	}
	switch {
	case t.Has(version.PropertyGround):
		return PriorityGround
	case t.Has(version.PropertyGroundBorder), t.Has(version.PropertyOnBottom):
		return PriorityBottom
	case t.Has(version.PropertyOnTop):
		return PriorityAlwaysOnTop
	default:
		return PriorityOnTop
	}
}

// Insert places obj into the stack. stackPos selects where: a value within
// the current object count inserts at that exact index (server-directed
// placement); anything else falls back to priority-class ordering,
// appending after the last object of the same or lower priority. The
// stack is then truncated to maxTileObjects, dropping from the tail.
func (t *Tile) Insert(store *assets.Store, obj Object, stackPos int) {
	if stackPos >= 0 && stackPos <= len(t.Objects) {
		t.insertAt(stackPos, obj)
		return
	}

	pri := Priority(store, obj)
	idx := len(t.Objects)
	for i, existing := range t.Objects {
		if Priority(store, existing) > pri {
			idx = i
			break
		}
	}
	t.insertAt(idx, obj)
}

func (t *Tile) insertAt(idx int, obj Object) {
	t.Objects = append(t.Objects, Object{})
	copy(t.Objects[idx+1:], t.Objects[idx:])
	t.Objects[idx] = obj
	if len(t.Objects) > maxTileObjects {
		t.Objects = t.Objects[:maxTileObjects]
	}
}

// RemoveAt deletes the object at stackPos, if present, shifting later
// entries down.
func (t *Tile) RemoveAt(stackPos int) {
	if stackPos < 0 || stackPos >= len(t.Objects) {
		return
	}
	t.Objects = append(t.Objects[:stackPos], t.Objects[stackPos+1:]...)
}

// ReplaceAt overwrites the object at stackPos in place, used for
// TileObjectTransformed where the thing occupying a slot changes kind but
// the slot itself doesn't move.
func (t *Tile) ReplaceAt(stackPos int, obj Object) bool {
	if stackPos < 0 || stackPos >= len(t.Objects) {
		return false
	}
	t.Objects[stackPos] = obj
	return true
}

// IndexOfCreature returns the stack index of the given creature's marker
// object, or -1 if it isn't standing on this tile.
func (t *Tile) IndexOfCreature(id uint32) int {
	for i, o := range t.Objects {
		if o.IsCreature && o.CreatureID == id {
			return i
		}
	}
	return -1
}
