package container

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

type tibiacastPacketType int

const (
	tibiacastStateCorrection tibiacastPacketType = 6
	tibiacastInitialization  tibiacastPacketType = 7
	tibiacastTibiaData       tibiacastPacketType = 8
	tibiacastOutgoingMessage tibiacastPacketType = 9
)

// QueryTibiacastVersion maps the recorder's own two-byte container version
// to the Tibia client triplet it was captured against. Tibiacast never
// recorded the client version directly, so this is a lookup table built
// from the recorder's release history.
func QueryTibiacastVersion(file *reader.Reader) (version.Triplet, bool) {
	r := *file
	major, err := r.U8()
	if err != nil {
		return version.Triplet{}, false
	}
	minor, err := r.U8()
	if err != nil {
		return version.Triplet{}, false
	}

	t := version.Triplet{}
	switch {
	case major == 3 && minor < 5:
		t = version.Triplet{Major: 8, Minor: 55}
	case major == 3 && minor < 6:
		t = version.Triplet{Major: 8, Minor: 60}
	case major == 3 && minor < 8:
		t = version.Triplet{Major: 8, Minor: 61}
	case major == 3 && minor < 11:
		t = version.Triplet{Major: 8, Minor: 62}
	case major == 3 && minor < 15:
		t = version.Triplet{Major: 8, Minor: 71}
	case major == 3 && minor < 22:
		t = version.Triplet{Major: 9, Minor: 31}
	case major == 3 && minor < 26:
		t = version.Triplet{Major: 9, Minor: 40}
	case major == 3 && minor < 28:
		t = version.Triplet{Major: 9, Minor: 53}
	case major == 4 && minor < 3:
		t = version.Triplet{Major: 9, Minor: 54}
	case major == 4 && minor < 5:
		t = version.Triplet{Major: 9, Minor: 61}
	case major == 4 && minor < 6:
		t = version.Triplet{Major: 9, Minor: 71}
	case major == 4 && minor < 9:
		t = version.Triplet{Major: 9, Minor: 80}
	case major == 4 && minor < 12:
		// Tibiacast can't distinguish the two releases both called "9.83" at
		// this container minor; older one picked arbitrarily.
		t = version.Triplet{Major: 9, Minor: 83}
	case major == 4 && minor < 13:
		t = version.Triplet{Major: 9, Minor: 86}
	case major == 4 && minor < 17:
		t = version.Triplet{Major: 10, Minor: 0}
	case major == 4 && minor < 20:
		t = version.Triplet{Major: 10, Minor: 34}
	case major == 4 && minor < 21:
		t = version.Triplet{Major: 10, Minor: 35}
	case major == 4 && minor < 22:
		t = version.Triplet{Major: 10, Minor: 37}
	case major == 4 && minor < 24:
		t = version.Triplet{Major: 10, Minor: 51}
	case major == 4 && minor < 25:
		t = version.Triplet{Major: 10, Minor: 52}
	case major == 4 && minor < 26:
		t = version.Triplet{Major: 10, Minor: 53}
	case major == 4 && minor < 27:
		t = version.Triplet{Major: 10, Minor: 54}
	case major == 4 && minor < 28:
		t = version.Triplet{Major: 10, Minor: 57}
	case major == 4 && minor < 29:
		t = version.Triplet{Major: 10, Minor: 58}
	case major == 4 && minor < 30:
		t = version.Triplet{Major: 10, Minor: 64}
	case major == 4 && minor < 31:
		t = version.Triplet{Major: 10, Minor: 94}
	default:
		return version.Triplet{}, false
	}

	if major > 4 || (major == 4 && minor >= 5) {
		if err := r.Skip(4); err != nil {
			return version.Triplet{}, false
		}
	}
	if major > 4 || (major == 4 && minor >= 6) {
		preview, err := r.U8()
		if err != nil {
			return version.Triplet{}, false
		}
		if !(major == 4 && minor < 10) {
			t.Preview = int(preview)
		}
	}

	return t, true
}

func readTibiacastCreatureList(r *reader.Reader, profile *version.Profile) ([]protocol.Event, error) {
	var count uint16
	if profile.Triplet.AtLeast(9, 54) {
		n, err := r.U16()
		if err != nil {
			return nil, err
		}
		count = n
	} else {
		n, err := r.U8()
		if err != nil {
			return nil, err
		}
		count = uint16(n)
	}

	events := make([]protocol.Event, 0, count)
	for ; count > 0; count-- {
		id, err := r.U32()
		if err != nil {
			return nil, err
		}
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		healthPct, err := r.U8()
		if err != nil {
			return nil, err
		}
		heading, err := r.U8()
		if err != nil {
			return nil, err
		}
		outfitLook, err := r.U16()
		if err != nil {
			return nil, err
		}

		var outfit protocol.Outfit
		if outfitLook == 0 {
			itemID, err := r.U16()
			if err != nil {
				return nil, err
			}
			outfit.ItemID = int(itemID)
		} else {
			head, err := r.U8()
			if err != nil {
				return nil, err
			}
			primary, err := r.U8()
			if err != nil {
				return nil, err
			}
			secondary, err := r.U8()
			if err != nil {
				return nil, err
			}
			detail, err := r.U8()
			if err != nil {
				return nil, err
			}
			addons, err := r.U8()
			if err != nil {
				return nil, err
			}
			outfit = protocol.Outfit{
				LookType:  int(outfitLook),
				Head:      int(head),
				Primary:   int(primary),
				Secondary: int(secondary),
				Detail:    int(detail),
				Addons:    addons,
			}
		}

		if profile.Protocol.Has(version.ProtocolMounts) {
			mount, err := r.U16()
			if err != nil {
				return nil, err
			}
			outfit.MountOutfit = int(mount)
			outfit.HasMount = true
		}

		lightIntensity, err := r.U8()
		if err != nil {
			return nil, err
		}
		lightColor, err := r.U8()
		if err != nil {
			return nil, err
		}
		speed, err := r.U16()
		if err != nil {
			return nil, err
		}
		skull, err := r.U8()
		if err != nil {
			return nil, err
		}
		shield, err := r.U8()
		if err != nil {
			return nil, err
		}

		if profile.Protocol.Has(version.ProtocolWarIcon) {
			if _, err := r.U8(); err != nil {
				return nil, err
			}
		}

		var npcCategory int
		if profile.Protocol.Has(version.ProtocolCreatureMarks) {
			if profile.Protocol.Has(version.ProtocolNPCCategory) {
				cat, err := r.U8()
				if err != nil {
					return nil, err
				}
				npcCategory = int(cat)
			}
			if _, err := r.U8(); err != nil { // mark color
				return nil, err
			}
			if _, err := r.U8(); err != nil { // mark is permanent
				return nil, err
			}
			if _, err := r.U16(); err != nil { // guild members online
				return nil, err
			}
		}

		var impassable bool
		if profile.Protocol.Has(version.ProtocolPassableCreatures) {
			v, err := r.U8()
			if err != nil {
				return nil, err
			}
			impassable = v != 0
		}

		events = append(events, protocol.Event{
			Kind: protocol.EventCreatureSeen,
			Creature: protocol.CreatureSeen{
				ID:          id,
				Name:        string(name),
				HealthPct:   int(healthPct),
				Direction:   int(heading),
				Outfit:      outfit,
				Speed:       int(speed),
				Skull:       int(skull),
				Shield:      int(shield),
				Impassable:  impassable,
				NPCCategory: npcCategory,
			},
		})
		events[len(events)-1].Creature.Light.Intensity = int(lightIntensity)
		events[len(events)-1].Creature.Light.Color = int(lightColor)
	}

	return events, nil
}

func readTibiacastTibiaData(r *reader.Reader, parser *protocol.Parser) ([]protocol.Event, error) {
	count, err := r.U16()
	if err != nil {
		return nil, err
	}

	var events []protocol.Event
	for ; count > 0; count-- {
		length, err := r.U16()
		if err != nil {
			return nil, err
		}
		sub, err := r.Slice(int(length))
		if err != nil {
			return nil, err
		}
		parsed, err := parser.Parse(sub)
		events = append(events, parsed...)
		if err != nil {
			return events, err
		}
		if !sub.Finished() {
			return events, fmt.Errorf("%w: trailing bytes in tibiacast subpacket", ErrInvalidFormat)
		}
	}

	return events, nil
}

func readTibiacastInitialization(r *reader.Reader, profile *version.Profile, parser *protocol.Parser) ([]protocol.Event, error) {
	if profile.Protocol.Has(version.ProtocolPreviewByte) {
		if err := r.Skip(1); err != nil {
			return nil, err
		}
	}

	creatures, err := readTibiacastCreatureList(r, profile)
	if err != nil {
		return nil, err
	}

	subpacketCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	if subpacketCount < 1 {
		return nil, fmt.Errorf("%w: tibiacast initialization with no subpackets", ErrInvalidFormat)
	}

	var events []protocol.Event

	firstLength, err := r.U16()
	if err != nil {
		return nil, err
	}
	first, err := r.Slice(int(firstLength))
	if err != nil {
		return nil, err
	}
	parsed, err := parser.Parse(first)
	events = append(events, parsed...)
	if err != nil {
		return events, err
	}

	for _, c := range creatures {
		parser.MarkSeen(c.Creature.ID)
	}
	events = append(events, creatures...)

	for i := uint16(1); i < subpacketCount; i++ {
		length, err := r.U16()
		if err != nil {
			return events, err
		}
		sub, err := r.Slice(int(length))
		if err != nil {
			return events, err
		}
		parsed, err := parser.Parse(sub)
		events = append(events, parsed...)
		if err != nil {
			return events, err
		}
		if !sub.Finished() {
			return events, fmt.Errorf("%w: trailing bytes in tibiacast subpacket", ErrInvalidFormat)
		}
	}

	return events, nil
}

func tibiacastInflate(r *reader.Reader) ([]byte, error) {
	rest := r.Rest()
	raw, err := rest.Bytes(rest.Remaining())
	if err != nil {
		return nil, err
	}

	fr := flate.NewReader(bytes.NewReader(raw))
	defer fr.Close()

	out, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("container: tibiacast: inflating: %w", err)
	}
	return out, nil
}

// ReadTibiacast decodes a Tibiacast recording. Its frame stream is a raw
// DEFLATE block with no recorded uncompressed size, so the whole thing is
// inflated up front and re-wrapped for sequential packet parsing.
func ReadTibiacast(file *reader.Reader, profile *version.Profile, recovery Recovery) (*Recording, bool, error) {
	if err := file.Skip(2); err != nil { // container version, read via QueryTibiacastVersion
		return nil, false, fmt.Errorf("container: tibiacast: %w", err)
	}

	var runtime time.Duration
	haveRuntime := false
	if profile.Triplet.AtLeast(9, 54) {
		ms, err := file.U32()
		if err != nil {
			return nil, false, fmt.Errorf("container: tibiacast: %w", err)
		}
		runtime = time.Duration(ms) * time.Millisecond
		haveRuntime = true
	}
	if profile.Triplet.AtLeast(9, 80) {
		if err := file.Skip(1); err != nil {
			return nil, false, fmt.Errorf("container: tibiacast: %w", err)
		}
	}

	raw, err := tibiacastInflate(file)
	if err != nil {
		return nil, false, err
	}

	body := reader.New(raw)
	rec := &Recording{}
	parser := protocol.New(profile)
	partial := false

	for !body.Finished() {
		timestampMs, err := body.U32()
		if err != nil {
			partial = true
			break
		}

		var length uint32
		if profile.Triplet.AtLeast(9, 54) {
			length, err = body.U32()
		} else {
			var n uint16
			n, err = body.U16()
			length = uint32(n)
		}
		if err != nil {
			partial = true
			break
		}
		if length == 0 {
			continue
		}

		packet, err := body.Slice(int(length))
		if err != nil {
			partial = true
			break
		}

		kindByte, err := packet.U8()
		if err != nil {
			partial = true
			break
		}

		var events []protocol.Event
		var parseErr error
		switch tibiacastPacketType(kindByte) {
		case tibiacastInitialization:
			events, parseErr = readTibiacastInitialization(packet, profile, parser)
			appendFrame(rec, time.Duration(timestampMs)*time.Millisecond, events)
		case tibiacastTibiaData:
			events, parseErr = readTibiacastTibiaData(packet, parser)
			appendFrame(rec, time.Duration(timestampMs)*time.Millisecond, events)
		case tibiacastStateCorrection:
			_, parseErr = packet.U8()
		case tibiacastOutgoingMessage:
			_, parseErr = packet.String()
			if parseErr == nil {
				_, parseErr = packet.String()
			}
		default:
			parseErr = fmt.Errorf("%w: unknown tibiacast packet type %d", ErrInvalidFormat, kindByte)
		}

		if parseErr != nil {
			partial = true
			break
		}
	}

	if len(rec.Frames) == 0 && !partial {
		partial = true
	}

	if !haveRuntime {
		if len(rec.Frames) > 0 {
			rec.Runtime = rec.Frames[len(rec.Frames)-1].Timestamp
		}
	} else {
		rec.Runtime = runtime
	}

	if partial && recovery == RecoveryNone {
		return nil, false, fmt.Errorf("%w: tibiacast recording truncated mid-stream", ErrInvalidFormat)
	}

	return rec, partial, nil
}
