package assets

import (
	"fmt"

	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

// Category distinguishes the four entity tables packed one after another in
// the type file.
type Category int

const (
	CategoryItem Category = iota
	CategoryOutfit
	CategoryEffect
	CategoryMissile
)

// Frame describes one still image within an animation group: a base sprite
// id plus a layout of pattern/layer/addon axes the renderer indexes into.
type Frame struct {
	SpriteID int
	Width    int
	Height   int
}

// AnimationGroup is a sequence of frames shown over time. MinTicks/MaxTicks
// bound a randomized per-phase duration; versions without per-phase timing
// (see version.FeatureFlags.AnimationPhases) set MinTicks == MaxTicks.
type AnimationGroup struct {
	Frames     []Frame
	MinTicks   int
	MaxTicks   int
	PhaseCount int
}

// Type is a single entry of the item/outfit/effect/missile catalog: the
// decoded property set plus whatever animation groups it carries.
type Type struct {
	ID         int
	Category   Category
	Properties map[version.ItemProperty]PropertyValue
	Groups     []AnimationGroup

	Width, Height   int
	Layers          int
	PatternX        int
	PatternY        int
	PatternZ        int
	ZDivisor        int
	ElevationOffset int

	// GroundSpeed is the walking speed divisor carried by PropertyGround's
	// payload, used by gamestate to time creature movement across this tile.
	GroundSpeed int
}

// PropertyValue holds whatever scalar payload a property opcode carries.
// Most properties are boolean flags (zero-length payload); others carry
// one or more numeric fields, captured positionally here.
type PropertyValue struct {
	Values []int
}

// Has reports whether t carries the given property at all.
func (t *Type) Has(p version.ItemProperty) bool {
	_, ok := t.Properties[p]
	return ok
}

// FrameAt resolves one specific (layer, phase, px, py, pz, h, w) frame out
// of the given group's flat Frames slice. The decoder reads frames as one
// flat run of width*height*layers*phases*patternX*patternY*patternZ
// entries without recording axis boundaries, so this applies a fixed
// nesting order (outermost to innermost: phase, pz, py, px, layer, h, w)
// to recover the index a particular combination occupies. w is the
// fastest-varying axis, matching ordinary row-major image layout.
func (t *Type) FrameAt(group, layer, phase, px, py, pz, h, w int) (Frame, bool) {
	if group < 0 || group >= len(t.Groups) {
		return Frame{}, false
	}
	g := t.Groups[group]

	width, height, layers := max1(t.Width), max1(t.Height), max1(t.Layers)
	patX, patY, patZ := max1(t.PatternX), max1(t.PatternY), max1(t.PatternZ)

	phase = clampAxis(phase, g.PhaseCount)
	pz = clampAxis(pz, patZ)
	py = clampAxis(py, patY)
	px = clampAxis(px, patX)
	layer = clampAxis(layer, layers)
	h = clampAxis(h, height)
	w = clampAxis(w, width)

	idx := phase
	idx = idx*patZ + pz
	idx = idx*patY + py
	idx = idx*patX + px
	idx = idx*layers + layer
	idx = idx*height + h
	idx = idx*width + w

	if idx < 0 || idx >= len(g.Frames) {
		return Frame{}, false
	}
	return g.Frames[idx], true
}

func clampAxis(v, n int) int {
	if n < 1 {
		n = 1
	}
	if v < 0 {
		v = 0
	}
	if v >= n {
		v = n - 1
	}
	return v
}

// readType parses one entity record: its bounding-box header, its flag
// stream (terminated by PropertyEnd), then its animation groups. This
// generalizes tiledata.go's fixed-width-record-per-version approach into a
// single streaming decoder driven entirely by the resolved profile's
// property table and feature flags, since Tibia's type records are
// variable-length rather than fixed-width.
func readType(r *reader.Reader, id int, cat Category, profile *version.Profile) (*Type, error) {
	t := &Type{ID: id, Category: cat, Properties: map[version.ItemProperty]PropertyValue{}}

	for {
		opcode, err := r.U8()
		if err != nil {
			return nil, fmt.Errorf("assets: type %d: reading property opcode: %w", id, err)
		}

		prop, ok := profile.PropertyOf(opcode)
		if !ok {
			return nil, fmt.Errorf("assets: type %d: unrecognized property opcode 0x%02X", id, opcode)
		}
		if prop == version.PropertyEnd {
			break
		}

		values, err := readPropertyPayload(r, prop)
		if err != nil {
			return nil, fmt.Errorf("assets: type %d: property %v: %w", id, prop, err)
		}
		t.Properties[prop] = PropertyValue{Values: values}
		if prop == version.PropertyGround && len(values) > 0 {
			t.GroundSpeed = values[0]
		}
	}

	if err := readAppearance(r, t, profile); err != nil {
		return nil, fmt.Errorf("assets: type %d: %w", id, err)
	}

	return t, nil
}

// readPropertyPayload reads whatever fixed-size numeric fields accompany a
// property opcode. The large majority of properties are boolean flags with
// no payload at all.
func readPropertyPayload(r *reader.Reader, prop version.ItemProperty) ([]int, error) {
	switch prop {
	case version.PropertyGround:
		speed, err := r.U16()
		if err != nil {
			return nil, err
		}
		return []int{int(speed)}, nil
	case version.PropertyLight:
		level, err := r.U16()
		if err != nil {
			return nil, err
		}
		color, err := r.U16()
		if err != nil {
			return nil, err
		}
		return []int{int(level), int(color)}, nil
	case version.PropertyDisplacement:
		dx, err := r.U16()
		if err != nil {
			return nil, err
		}
		dy, err := r.U16()
		if err != nil {
			return nil, err
		}
		return []int{int(dx), int(dy)}, nil
	case version.PropertyHeight:
		elevation, err := r.U16()
		if err != nil {
			return nil, err
		}
		return []int{int(elevation)}, nil
	case version.PropertyMinimapColor:
		v, err := r.U16()
		if err != nil {
			return nil, err
		}
		return []int{int(v)}, nil
	case version.PropertyCloth:
		slot, err := r.U16()
		if err != nil {
			return nil, err
		}
		return []int{int(slot)}, nil
	case version.PropertyDefaultAction, version.PropertyRotateTo, version.PropertyLensHelp:
		v, err := r.U16()
		if err != nil {
			return nil, err
		}
		return []int{int(v)}, nil
	case version.PropertyMarket:
		category, err := r.U16()
		if err != nil {
			return nil, err
		}
		tradeAs, err := r.U16()
		if err != nil {
			return nil, err
		}
		showAs, err := r.U16()
		if err != nil {
			return nil, err
		}
		if _, err := r.String(); err != nil {
			return nil, err
		}
		restrictLevel, err := r.U16()
		if err != nil {
			return nil, err
		}
		vocation, err := r.U16()
		if err != nil {
			return nil, err
		}
		return []int{int(category), int(tradeAs), int(showAs), int(restrictLevel), int(vocation)}, nil
	default:
		return nil, nil
	}
}

// readAppearance reads the bounding-box header and per-group frame layout
// that follows the property stream.
func readAppearance(r *reader.Reader, t *Type, profile *version.Profile) error {
	width, err := r.U8()
	if err != nil {
		return err
	}
	height, err := r.U8()
	if err != nil {
		return err
	}
	t.Width, t.Height = int(width), int(height)

	if t.Width > 1 || t.Height > 1 {
		if _, err := r.U8(); err != nil { // exact size byte, unused beyond validation
			return err
		}
	}

	layers, err := r.U8()
	if err != nil {
		return err
	}
	px, err := r.U8()
	if err != nil {
		return err
	}
	py, err := r.U8()
	if err != nil {
		return err
	}
	pz, err := r.U8()
	if err != nil {
		return err
	}
	t.Layers, t.PatternX, t.PatternY, t.PatternZ = int(layers), int(px), int(py), int(pz)

	groupCount := 1
	if profile.Features.FrameGroups {
		n, err := r.U8()
		if err != nil {
			return err
		}
		groupCount = int(n)
	}

	t.Groups = make([]AnimationGroup, 0, groupCount)
	for g := 0; g < groupCount; g++ {
		group, err := readAnimationGroup(r, t, profile)
		if err != nil {
			return err
		}
		t.Groups = append(t.Groups, group)
	}

	return nil
}

func readAnimationGroup(r *reader.Reader, t *Type, profile *version.Profile) (AnimationGroup, error) {
	n, err := r.U8()
	if err != nil {
		return AnimationGroup{}, err
	}
	phases := int(n)

	group := AnimationGroup{MinTicks: 1000, MaxTicks: 1000, PhaseCount: phases}

	if phases > 1 && profile.Features.AnimationPhases {
		if _, err := r.U8(); err != nil { // animation mode byte (looping/ping-pong/once)
			return AnimationGroup{}, err
		}
		if _, err := r.U32(); err != nil { // start phase
			return AnimationGroup{}, err
		}
		for i := 0; i < phases; i++ {
			minMs, err := r.U32()
			if err != nil {
				return AnimationGroup{}, err
			}
			maxMs, err := r.U32()
			if err != nil {
				return AnimationGroup{}, err
			}
			if i == 0 {
				group.MinTicks, group.MaxTicks = int(minMs), int(maxMs)
			}
		}
	}

	total := t.Width * t.Height * t.Layers * phases * max1(t.PatternX) * max1(t.PatternY) * max1(t.PatternZ)
	group.Frames = make([]Frame, 0, total)
	for i := 0; i < total; i++ {
		var id uint32
		if profile.Features.SpriteIndexU32 {
			id, err = r.U32()
		} else {
			var id16 uint16
			id16, err = r.U16()
			id = uint32(id16)
		}
		if err != nil {
			return AnimationGroup{}, err
		}
		group.Frames = append(group.Frames, Frame{SpriteID: int(id), Width: t.Width, Height: t.Height})
	}

	return group, nil
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
