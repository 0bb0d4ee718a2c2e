// Package version enumerates feature flags, protocol flags, and the
// various opcode/byte translation tables that differ across client
// versions, so the rest of the pipeline never branches on a raw version
// number directly.
package version

import "fmt"

// Triplet identifies a client build: major.minor, plus a "preview" sub-flag
// (0 or 1) used to disambiguate protocol changes introduced mid-version.
type Triplet struct {
	Major   int
	Minor   int
	Preview int
}

func (t Triplet) String() string {
	if t.Preview != 0 {
		return fmt.Sprintf("%d.%d.%d", t.Major, t.Minor, t.Preview)
	}
	return fmt.Sprintf("%d.%d", t.Major, t.Minor)
}

// Less reports whether t comes strictly before o in release order.
func (t Triplet) Less(o Triplet) bool {
	if t.Major != o.Major {
		return t.Major < o.Major
	}
	if t.Minor != o.Minor {
		return t.Minor < o.Minor
	}
	return t.Preview < o.Preview
}

// AtLeast reports whether t is the same version as, or later than, o.
func (t Triplet) AtLeast(major, minor int) bool {
	return !t.Less(Triplet{Major: major, Minor: minor})
}

// FeatureFlags affect asset decoding.
type FeatureFlags struct {
	SpriteIndexU32   bool // sprite ids are u32, not u16
	AnimationPhases  bool // per-phase (min,max) duration lists
	FrameGroups      bool // default motion state is split into multiple groups
	IconBar          bool // client has a dedicated status icon bar
	ModernStacking   bool // stack-count bucketing uses the 10.x+ table
	TypeZDiv         bool // entity type records carry a z-axis divisor
	CapacityDivisor  int  // divisor applied to raw capacity values
}

// ProtocolFlag is a single bit in the protocol feature bitset.
type ProtocolFlag uint64

const (
	ProtocolMoveDeniedDirection ProtocolFlag = 1 << iota
	ProtocolSkillPercentages
	ProtocolSoulPoints
	ProtocolRawEffectIDs
	ProtocolOutfitAddons
	ProtocolStamina
	ProtocolMounts
	ProtocolCreatureMarks
	ProtocolItemMarks
	ProtocolContainerPagination
	ProtocolContainerIndexU16
	ProtocolPassableCreatures
	ProtocolWarIcon
	ProtocolNPCCategory
	ProtocolExperienceU64
	ProtocolPlayerMoneyU64
	ProtocolLevelU16
	ProtocolPreviewByte
	ProtocolExperienceBonus
	ProtocolPvPFraming
	ProtocolExpertMode
	ProtocolCreatureSpeedPadding
	ProtocolGuildChannelID
	ProtocolPartyChannelID
	ProtocolMessageEffects
	ProtocolChannelParticipants
	ProtocolSpeedAdjustment
	// ProtocolHazyNewTileStuff groups a handful of map-description tweaks
	// introduced somewhere in 8.55-9.32 without precise attribution in the
	// original source. Gated at >=9.0, matching
	// the documented fallback rather than guessing a narrower range.
	ProtocolHazyNewTileStuff
)

// Has reports whether f is set in the receiver bitset.
func (p ProtocolFlag) Has(f ProtocolFlag) bool { return p&f != 0 }

// Profile is the fully-resolved set of flags and translation tables for one
// client version triplet.
type Profile struct {
	Triplet  Triplet
	Features FeatureFlags
	Protocol ProtocolFlag

	propertyTable map[byte]ItemProperty
	fluidColors   map[byte]int
	speakModes    map[byte]MessageMode
	statusModes   map[byte]MessageMode
	pictureIndex  map[PictureLogical]int
}

// New resolves a Profile for the given version triplet by applying every
// registered delta, in ascending version order, against the baseline.
func New(t Triplet) *Profile {
	p := &Profile{
		Triplet:       t,
		propertyTable: cloneProps(baselinePropertyTable),
		fluidColors:   cloneIntMap(baselineFluidColors),
		speakModes:    cloneModeMap(baselineSpeakModes),
		statusModes:   cloneModeMap(baselineStatusModes),
		pictureIndex:  clonePictureIndex(baselinePictureIndex),
	}

	p.Features = FeatureFlags{CapacityDivisor: 100}

	for _, d := range deltas {
		if t.Less(d.since) {
			continue
		}
		d.apply(p)
	}

	return p
}

// PropertyOf translates a raw type-property opcode into the semantic
// property enum for this version, or false if the opcode is unknown.
func (p *Profile) PropertyOf(opcode byte) (ItemProperty, bool) {
	v, ok := p.propertyTable[opcode]
	return v, ok
}

// FluidColor translates a raw fluid-color byte into the canonical fluid
// color index.
func (p *Profile) FluidColor(b byte) int { return p.fluidColors[b] }

// SpeakMode translates a raw speak-mode byte into a MessageMode. Some
// versions inject dummy slots; callers must tolerate the false return by
// discarding the packet rather than failing.
func (p *Profile) SpeakMode(b byte) (MessageMode, bool) {
	v, ok := p.speakModes[b]
	return v, ok
}

// StatusMode translates a raw status-message-type byte into a MessageMode.
func (p *Profile) StatusMode(b byte) (MessageMode, bool) {
	v, ok := p.statusModes[b]
	return v, ok
}

// PictureIndex maps a logical picture slot to its storage index within the
// picture atlas for this version.
func (p *Profile) PictureIndex(l PictureLogical) (int, bool) {
	v, ok := p.pictureIndex[l]
	return v, ok
}

func cloneProps(m map[byte]ItemProperty) map[byte]ItemProperty {
	out := make(map[byte]ItemProperty, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIntMap(m map[byte]int) map[byte]int {
	out := make(map[byte]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneModeMap(m map[byte]MessageMode) map[byte]MessageMode {
	out := make(map[byte]MessageMode, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePictureIndex(m map[PictureLogical]int) map[PictureLogical]int {
	out := make(map[PictureLogical]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
