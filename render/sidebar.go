package render

import (
	"fmt"
	"image/color"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/internal/canvas"
)

// Sidebar layout constants. Every Draw*/Measure* pair below advances (or
// reports) the same offset_y cursor height, so a caller stacking these
// panels vertically gets identical layout whether it actually draws or
// just measures first to size a window.
const (
	sidebarWidth      = 180
	statusBarRowH     = 14
	inventorySlotSize = 34
	inventoryCols     = 2
	iconSize          = 12
	containerRowH     = 36
)

// SidebarWidth is sidebarWidth's exported alias, letting a caller reserve
// the right amount of horizontal space next to the map viewport before
// drawing any sidebar panel.
const SidebarWidth = sidebarWidth

// DrawStatusBars draws the player's health/mana/capacity bars starting
// at offsetY, returning the new cursor position.
func DrawStatusBars(opts Options, s *gamestate.State, dst *canvas.RGBA, x, offsetY int) int {
	if !opts.Has(ShowStatusBars) {
		return offsetY
	}
	p := &s.Player

	offsetY = drawLabeledBar(dst, x, offsetY, "HP", ratioPct(p.Health, p.MaxHealth), colorRed)
	offsetY = drawLabeledBar(dst, x, offsetY, "MP", ratioPct(p.Mana, p.MaxMana), colorBlue)
	offsetY = drawLabeledBar(dst, x, offsetY, "CAP", ratioPct(p.Capacity, p.MaxCapacity), colorGray)
	return offsetY
}

// MeasureStatusBarsHeight reports the pixel height DrawStatusBars occupies
// without drawing anything.
func MeasureStatusBarsHeight(opts Options) int {
	if !opts.Has(ShowStatusBars) {
		return 0
	}
	return 3 * statusBarRowH
}

func ratioPct(v, max int) int {
	if max <= 0 {
		return 0
	}
	pct := v * 100 / max
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

func drawLabeledBar(dst *canvas.RGBA, x, y int, label string, pct int, col color.RGBA) int {
	DefaultFont.Draw(dst, label, x, y, colorWhite)
	barX := x + 28
	barWidth := sidebarWidth - 28 - 8
	fill := barWidth * pct / 100
	for i := 0; i < barWidth; i++ {
		c := color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF}
		if i < fill {
			c = col
		}
		dst.Blend(barX+i, y+2, c)
		dst.Blend(barX+i, y+3, c)
	}
	return y + statusBarRowH
}

// DrawInventoryArea draws the equipped-item grid starting at offsetY.
func DrawInventoryArea(opts Options, s *gamestate.State, dst *canvas.RGBA, x, offsetY int) int {
	if !opts.Has(ShowInventory) {
		return offsetY
	}
	rows := (int(slotCountExported()) + inventoryCols - 1) / inventoryCols
	for slot := 0; slot < int(slotCountExported()); slot++ {
		row, col := slot/inventoryCols, slot%inventoryCols
		sx := x + col*inventorySlotSize
		sy := offsetY + row*inventorySlotSize
		drawInventorySlot(s, dst, gamestate.InventorySlot(slot), sx, sy)
	}
	return offsetY + rows*inventorySlotSize
}

// MeasureInventoryAreaHeight reports DrawInventoryArea's pixel height.
func MeasureInventoryAreaHeight(opts Options) int {
	if !opts.Has(ShowInventory) {
		return 0
	}
	rows := (int(slotCountExported()) + inventoryCols - 1) / inventoryCols
	return rows * inventorySlotSize
}

func drawInventorySlot(s *gamestate.State, dst *canvas.RGBA, slot gamestate.InventorySlot, x, y int) {
	fillBlock(dst, x, y, inventorySlotSize-2, inventorySlotSize-2, color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF})
	if int(slot) >= len(s.Player.HasItem) || !s.Player.HasItem[slot] {
		return
	}
	obj := s.Player.Inventory[slot]
	if s.Assets == nil {
		return
	}
	t, err := s.Assets.Type(assets.CategoryItem, obj.ID)
	if err != nil || t == nil || len(t.Groups) == 0 {
		return
	}
	f, ok := t.FrameAt(0, 0, 0, 0, 0, 0, 0, 0)
	if !ok {
		return
	}
	sprite, err := s.Assets.Sprite(f.SpriteID)
	if err != nil || sprite == nil {
		return
	}
	blitSprite(dst, sprite.Image, x+1, y+1)
}

// slotCountExported mirrors gamestate's unexported slotCount without
// reaching into package-private state: InventorySlot values are
// contiguous starting at SlotHead, so the count is just one past the
// last named slot.
func slotCountExported() gamestate.InventorySlot { return gamestate.SlotAmmo + 1 }

// DrawIconBar draws the row of status-effect icons (poison, burning,
// hasted, and so on) the icons mask encodes, starting at offsetY.
func DrawIconBar(opts Options, s *gamestate.State, dst *canvas.RGBA, x, offsetY int) int {
	if !opts.Has(ShowIconBar) {
		return offsetY
	}
	cx := x
	for bit := 0; bit < 32; bit++ {
		if s.Player.IconsMask&(1<<uint(bit)) == 0 {
			continue
		}
		fillBlock(dst, cx, offsetY, iconSize, iconSize, iconColor(bit))
		cx += iconSize + 2
	}
	return offsetY + iconSize + 4
}

// MeasureIconBarHeight reports DrawIconBar's pixel height; the icon bar is
// a single row regardless of how many icons are active.
func MeasureIconBarHeight(opts Options) int {
	if !opts.Has(ShowIconBar) {
		return 0
	}
	return iconSize + 4
}

func iconColor(bit int) color.RGBA {
	palette := []color.RGBA{colorGreen, colorRed, colorBlue, colorGray, colorWhite}
	return palette[bit%len(palette)]
}

// DrawContainer draws one open container's title and item grid starting
// at offsetY.
func DrawContainer(opts Options, c *gamestate.Container, dst *canvas.RGBA, store *assets.Store, x, offsetY int) int {
	if !opts.Has(ShowContainers) || c == nil {
		return offsetY
	}
	title := fmt.Sprintf("%s (%d)", c.Name, c.TotalCount)
	DefaultFont.Draw(dst, title, x, offsetY, colorWhite)
	offsetY += DefaultFont.Height + 3

	cols := sidebarWidth / inventorySlotSize
	for i, obj := range c.Items {
		row, col := i/cols, i%cols
		sx := x + col*inventorySlotSize
		sy := offsetY + row*inventorySlotSize
		fillBlock(dst, sx, sy, inventorySlotSize-2, inventorySlotSize-2, color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF})
		drawContainerItem(dst, store, obj, sx+1, sy+1)
	}
	rows := (len(c.Items) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}
	return offsetY + rows*inventorySlotSize
}

func drawContainerItem(dst *canvas.RGBA, store *assets.Store, obj gamestate.Object, x, y int) {
	if store == nil {
		return
	}
	t, err := store.Type(assets.CategoryItem, obj.ID)
	if err != nil || t == nil || len(t.Groups) == 0 {
		return
	}
	f, ok := t.FrameAt(0, 0, 0, 0, 0, 0, 0, 0)
	if !ok {
		return
	}
	sprite, err := store.Sprite(f.SpriteID)
	if err != nil || sprite == nil {
		return
	}
	blitSprite(dst, sprite.Image, x, y)
}

// MeasureContainerHeight reports DrawContainer's pixel height for a
// container holding itemCount items.
func MeasureContainerHeight(opts Options, itemCount int) int {
	if !opts.Has(ShowContainers) {
		return 0
	}
	cols := sidebarWidth / inventorySlotSize
	rows := (itemCount + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}
	return DefaultFont.Height + 3 + rows*inventorySlotSize
}

// DrawClientBackground fills the sidebar's background panel behind
// whatever else gets drawn on top of it, from offsetY down to height.
func DrawClientBackground(opts Options, dst *canvas.RGBA, x, offsetY, height int) int {
	if !opts.Has(ShowClientBackground) {
		return offsetY
	}
	fillBlock(dst, x, offsetY, sidebarWidth, height, color.RGBA{R: 0x18, G: 0x18, B: 0x18, A: 0xFF})
	return offsetY + height
}

// MeasureClientBackgroundHeight reports DrawClientBackground's height.
func MeasureClientBackgroundHeight(opts Options, height int) int {
	if !opts.Has(ShowClientBackground) {
		return 0
	}
	return height
}
