package gamestate

import "github.com/kelindar/tibiavcr/protocol"

// InventorySlot is one of the fixed equipment slots a character has; the
// slice is indexed by this enum rather than by raw wire byte since slot
// numbering shifted across client versions.
type InventorySlot int

const (
	SlotHead InventorySlot = iota
	SlotNecklace
	SlotBackpack
	SlotArmor
	SlotRightHand
	SlotLeftHand
	SlotLegs
	SlotFeet
	SlotRing
	SlotAmmo
	slotCount
)

// Skill holds one combat/profession skill's three reported numbers: the
// effective level (after buffs), the base/actual level, and the percent
// progress toward the next level.
type Skill struct {
	Effective int
	Actual    int
	Percent   int
}

// Player is the recording's own character: identity, vital stats,
// equipped items, and the handful of UI modes the client tracks
// server-side (attack/chase/secure/pvp stance).
type Player struct {
	CreatureID uint32

	Level, MaxLevel       int
	Health, MaxHealth     int
	Mana, MaxMana         int
	Capacity, MaxCapacity int
	Experience            uint64
	MagicLevel            int
	Soul                  int
	Stamina               int
	Speed                 int
	Vocation              int
	Premium               bool

	Blessings       uint32
	HotkeyPresetID  int
	IconsMask       uint32
	AttackMode      int
	ChaseMode       int
	SecureMode      bool
	PvPMode         int

	Inventory [slotCount]Object
	HasItem   [slotCount]bool

	Skills map[int]Skill
}

// applyUpdate folds a PlayerUpdate's populated fields into p. A
// PlayerUpdate only carries the attributes its originating packet actually
// changed, with zero meaning "unchanged", so each numeric field is assigned
// only when it is non-zero and otherwise keeps its prior value. Premium and
// SecureMode are the exception: their zero value is itself a legitimate
// update, and those packets always resend the full boolean, so they are
// assigned unconditionally.
func (p *Player) applyUpdate(u protocol.PlayerUpdate) {
	if u.Level != 0 {
		p.Level = u.Level
	}
	if u.MaxLevel != 0 {
		p.MaxLevel = u.MaxLevel
	}
	if u.Health != 0 {
		p.Health = u.Health
	}
	if u.MaxHealth != 0 {
		p.MaxHealth = u.MaxHealth
	}
	if u.Mana != 0 {
		p.Mana = u.Mana
	}
	if u.MaxMana != 0 {
		p.MaxMana = u.MaxMana
	}
	if u.Capacity != 0 {
		p.Capacity = u.Capacity
	}
	if u.MaxCapacity != 0 {
		p.MaxCapacity = u.MaxCapacity
	}
	if u.Experience != 0 {
		p.Experience = u.Experience
	}
	if u.MagicLevel != 0 {
		p.MagicLevel = u.MagicLevel
	}
	if u.Soul != 0 {
		p.Soul = u.Soul
	}
	if u.Stamina != 0 {
		p.Stamina = u.Stamina
	}
	if u.Speed != 0 {
		p.Speed = u.Speed
	}
	if u.Vocation != 0 {
		p.Vocation = u.Vocation
	}
	p.Premium = u.Premium
	if u.IconsMask != 0 {
		p.IconsMask = u.IconsMask
	}
	if u.AttackMode != 0 {
		p.AttackMode = u.AttackMode
	}
	if u.ChaseMode != 0 {
		p.ChaseMode = u.ChaseMode
	}
	p.SecureMode = u.SecureMode
	if u.PvPMode != 0 {
		p.PvPMode = u.PvPMode
	}
}

// SetSkill records the three numbers reported for a given skill id.
func (p *Player) SetSkill(id int, s Skill) {
	if p.Skills == nil {
		p.Skills = make(map[int]Skill)
	}
	p.Skills[id] = s
}
