package version

// ItemProperty is the semantic meaning of a type-attribute opcode read from
// the item/outfit/effect/missile type table.
type ItemProperty int

const (
	PropertyUnknown ItemProperty = iota
	PropertyGround
	PropertyGroundBorder
	PropertyOnBottom
	PropertyOnTop
	PropertyContainer
	PropertyStackable
	PropertyForceUse
	PropertyMultiUse
	PropertyWritable
	PropertyWritableOnce
	PropertyFluidContainer
	PropertySplash
	PropertyNotWalkable
	PropertyNotMoveable
	PropertyBlockProjectile
	PropertyNotPathable
	PropertyPickupable
	PropertyHangable
	PropertyHorizontal
	PropertyVertical
	PropertyRotatable
	PropertyLight
	PropertyDontHide
	PropertyTranslucent
	PropertyDisplacement
	PropertyHeight
	PropertyLyingCorpse
	PropertyAnimateAlways
	PropertyMinimapColor
	PropertyRotateTo
	PropertyLensHelp
	PropertyFullGround
	PropertyLook
	PropertyCloth
	PropertyMarket
	PropertyDefaultAction
	PropertyWrappable
	PropertyUnwrappable
	PropertyTopEffect
	PropertyUsable
	PropertyEnd // terminator opcode for this profile's table
)

// MessageMode is the semantic category of a chat/status message.
type MessageMode int

const (
	MessageUnknown MessageMode = iota
	MessageSay
	MessageWhisper
	MessageYell
	MessagePrivateFrom
	MessagePrivateTo
	MessageChannelYellow
	MessageChannelWhite
	MessageBroadcast
	MessageGamemasterBroadcast
	MessageAnonymousPrivate
	MessageLook
	MessageWarning
	MessageLoginAdvice
	MessageFailure
	MessageStatusDefault
	MessageStatusSmall
)

// PictureLogical is a stable, version-independent name for a picture slot
// inside the picture atlas, resolved to a storage
// index through Profile.PictureIndex because the atlas layout was reordered
// more than once across client versions.
type PictureLogical int

const (
	PictureLoadingBackground PictureLogical = iota
	PictureClientBackground
	PictureLogoTop
	PictureLogoBottom
)

var baselinePropertyTable = map[byte]ItemProperty{
	0x00: PropertyGround,
	0x01: PropertyGroundBorder,
	0x02: PropertyOnBottom,
	0x03: PropertyOnTop,
	0x04: PropertyContainer,
	0x05: PropertyStackable,
	0x06: PropertyForceUse,
	0x07: PropertyMultiUse,
	0x08: PropertyWritable,
	0x09: PropertyWritableOnce,
	0x0A: PropertyFluidContainer,
	0x0B: PropertySplash,
	0x0C: PropertyNotWalkable,
	0x0D: PropertyNotMoveable,
	0x0E: PropertyBlockProjectile,
	0x0F: PropertyNotPathable,
	0x10: PropertyPickupable,
	0x11: PropertyHangable,
	0x12: PropertyHorizontal,
	0x13: PropertyVertical,
	0x14: PropertyRotatable,
	0x15: PropertyLight,
	0x16: PropertyDontHide,
	0x17: PropertyTranslucent,
	0x18: PropertyDisplacement,
	0x19: PropertyHeight,
	0x1A: PropertyLyingCorpse,
	0x1B: PropertyAnimateAlways,
	0x1C: PropertyMinimapColor,
	0x1D: PropertyRotateTo,
	0x1E: PropertyLensHelp,
	0x1F: PropertyFullGround,
	0x20: PropertyLook,
	0x21: PropertyCloth,
	0x22: PropertyMarket,
	0x23: PropertyDefaultAction,
	0xFF: PropertyEnd,
}

var baselineFluidColors = map[byte]int{
	0: 0, 1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 6, 7: 7,
}

var baselineSpeakModes = map[byte]MessageMode{
	0x01: MessageSay,
	0x02: MessageWhisper,
	0x03: MessageYell,
	0x04: MessagePrivateFrom,
	0x05: MessageChannelYellow,
	0x06: MessageBroadcast,
}

var baselineStatusModes = map[byte]MessageMode{
	0x11: MessageWarning,
	0x12: MessageLoginAdvice,
	0x13: MessageFailure,
	0x14: MessageStatusDefault,
	0x15: MessageStatusSmall,
}

var baselinePictureIndex = map[PictureLogical]int{
	PictureLoadingBackground: 0,
	PictureClientBackground:  1,
	PictureLogoTop:           2,
	PictureLogoBottom:        3,
}

// delta describes one registered change, applied to every Profile whose
// triplet is >= since.
type delta struct {
	since Triplet
	apply func(p *Profile)
}

// deltas must stay in ascending version order; New walks it front to back
// so a later delta can assume an earlier one already ran.
var deltas = []delta{
	{
		since: Triplet{Major: 7, Minor: 55},
		apply: func(p *Profile) {
			p.Features.AnimationPhases = false
			p.Features.FrameGroups = false
		},
	},
	{
		since: Triplet{Major: 8, Minor: 0},
		apply: func(p *Profile) {
			p.propertyTable[0x09] = PropertyWritableOnce
			p.Protocol |= ProtocolMoveDeniedDirection | ProtocolSkillPercentages
		},
	},
	{
		// HazyNewTileStuff: the exact introduction version is ambiguous
		// between 8.55 and 9.32 across sources; gate on the coarser 9.0
		// boundary rather than guess.
		since: Triplet{Major: 9, Minor: 0},
		apply: func(p *Profile) {
			p.Protocol |= ProtocolHazyNewTileStuff | ProtocolSoulPoints |
				ProtocolContainerPagination | ProtocolPassableCreatures
		},
	},
	{
		since: Triplet{Major: 9, Minor: 54},
		apply: func(p *Profile) {
			p.Protocol |= ProtocolOutfitAddons | ProtocolWarIcon | ProtocolNPCCategory
		},
	},
	{
		since: Triplet{Major: 9, Minor: 60},
		apply: func(p *Profile) {
			p.Features.SpriteIndexU32 = true
		},
	},
	{
		since: Triplet{Major: 10, Minor: 0},
		apply: func(p *Profile) {
			p.Features.AnimationPhases = true
			p.Features.FrameGroups = true
			p.Features.ModernStacking = true
			p.Protocol |= ProtocolStamina | ProtocolMounts | ProtocolContainerIndexU16 |
				ProtocolExperienceBonus | ProtocolCreatureMarks | ProtocolItemMarks
		},
	},
	{
		since: Triplet{Major: 10, Minor: 37},
		apply: func(p *Profile) {
			p.Protocol |= ProtocolPvPFraming | ProtocolExpertMode
		},
	},
	{
		since: Triplet{Major: 10, Minor: 55},
		apply: func(p *Profile) {
			// From this version entity type records carry a z-axis
			// divisor.
			p.Features.TypeZDiv = true
		},
	},
	{
		since: Triplet{Major: 10, Minor: 98},
		apply: func(p *Profile) {
			p.Protocol |= ProtocolPreviewByte | ProtocolCreatureSpeedPadding
		},
	},
	{
		since: Triplet{Major: 11, Minor: 0},
		apply: func(p *Profile) {
			p.Features.IconBar = true
			p.Features.CapacityDivisor = 1
			p.Protocol |= ProtocolExperienceU64 | ProtocolPlayerMoneyU64 |
				ProtocolLevelU16 | ProtocolGuildChannelID | ProtocolPartyChannelID |
				ProtocolMessageEffects | ProtocolChannelParticipants | ProtocolSpeedAdjustment
		},
	},
}
