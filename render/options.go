// Package render turns a gamestate.State snapshot into pixels on a
// caller-supplied canvas. It never mutates the state it draws, never reads
// the clock itself (every time-dependent computation is driven by the
// state's own CurrentTick), and never touches the protocol or container
// layers directly.
package render

// Options is a bitfield selectively suppressing categories of drawing.
// Every DrawGamestate/DrawOverlay step checks the flag that guards it
// before doing any work, so a caller wanting a bare map screenshot can
// silence creatures, effects, missiles and overlays. Ground tiles are
// drawn as items, under ShowItems, like every other item.
type Options uint32

const (
	ShowCreatures Options = 1 << iota
	ShowItems
	ShowEffects
	ShowMissiles
	ShowUpperFloors
	ShowNames
	ShowHealthBars
	ShowStatusIcons
	ShowFloatingNumbers
	ShowSpeechBubbles
	ShowStatusBars
	ShowInventory
	ShowIconBar
	ShowContainers
	ShowClientBackground
)

// DefaultOptions enables every category; this is what a full-fidelity
// playback recording uses.
const DefaultOptions Options = ShowCreatures | ShowItems | ShowEffects | ShowMissiles |
	ShowUpperFloors | ShowNames | ShowHealthBars | ShowStatusIcons | ShowFloatingNumbers |
	ShowSpeechBubbles | ShowStatusBars | ShowInventory | ShowIconBar | ShowContainers |
	ShowClientBackground

// Has reports whether every bit in want is set in o.
func (o Options) Has(want Options) bool { return o&want == want }
