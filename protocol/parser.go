package protocol

import (
	"fmt"

	"github.com/kelindar/intmap"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

// creatureMarkerNew, creatureMarkerKnown and creatureMarkerReplaced are the
// reserved object ids that mean "the following bytes are a creature
// reference". The same three values are used for every profile.
const (
	creatureMarkerNew     = 0x61
	creatureMarkerKnown    = 0x62
	creatureMarkerReplaced = 0x63
)

// Opcode is a raw first-byte packet discriminant.
type Opcode byte

// Representative opcode set this parser dispatches on. Real client builds assign different
// byte values to some of these across major revisions; this parser uses
// the values below for every profile and does not remap them.
const (
	OpWorldInitialized    Opcode = 0x0A
	OpAmbientLight        Opcode = 0x82
	OpFullMapDescription  Opcode = 0x64
	OpFloorChangeUp       Opcode = 0x65
	OpFloorChangeDown     Opcode = 0x66
	OpTileUpdated         Opcode = 0x69
	OpTileObjectAdded     Opcode = 0x6A
	OpTileObjectTransform Opcode = 0x6B
	OpTileObjectRemoved   Opcode = 0x6C
	OpCreatureMoved       Opcode = 0x6D
	OpContainerOpened     Opcode = 0x6E
	OpContainerClosed     Opcode = 0x6F
	OpContainerAddItem    Opcode = 0x70
	OpContainerTransform  Opcode = 0x71
	OpContainerRemove     Opcode = 0x72
	OpPlayerStats         Opcode = 0x8C
	OpPlayerSkills        Opcode = 0x8D
	OpCreatureHealth      Opcode = 0x8E
	OpCreatureHeading     Opcode = 0x8F
	OpCreatureOutfit      Opcode = 0x90
	OpCreatureSpeed       Opcode = 0x91
	OpCreatureSkull       Opcode = 0x92
	OpCreatureShield      Opcode = 0x93
	OpCreatureSpeak       Opcode = 0xAA
	OpChannelMessage      Opcode = 0xAB
	OpStatusMessage       Opcode = 0xB4
	OpMissileFired        Opcode = 0x85
	OpGraphicalEffect     Opcode = 0x83
	OpNumberEffect        Opcode = 0x84
)

// handler parses the remainder of a packet (opcode already consumed) and
// appends whatever Events it produces to out.
type handler func(p *Parser, r *reader.Reader, out *[]Event) error

// Parser holds everything that must persist across packets within one
// recording: the resolved version profile, the set of creature ids already
// seen, and the player's last known
// absolute position, as carried by the latest WorldInitialized or
// FullMapDescription packet.
type Parser struct {
	Profile *version.Profile

	seen     *intmap.Map
	lastPos  Position
	dispatch map[Opcode]handler
}

// New returns a Parser ready to process packets for the given profile.
func New(profile *version.Profile) *Parser {
	p := &Parser{
		Profile: profile,
		seen:    intmap.New(256, .95),
	}
	p.dispatch = p.buildDispatch()
	return p
}

// Parse consumes every packet in r (there may be more than one back to
// back within a single demuxed frame) and returns the events they produced.
func (p *Parser) Parse(r *reader.Reader) ([]Event, error) {
	var out []Event

	for !r.Finished() {
		opcode, err := r.U8()
		if err != nil {
			return out, fmt.Errorf("protocol: reading opcode: %w", err)
		}

		h, ok := p.dispatch[Opcode(opcode)]
		if !ok {
			// Unrecognized opcode:, so treat it as a hard parse error like every
			// other malformed read.
			return out, fmt.Errorf("protocol: unrecognized opcode 0x%02X", opcode)
		}

		if err := h(p, r, &out); err != nil {
			return out, fmt.Errorf("protocol: opcode 0x%02X: %w", opcode, err)
		}
	}

	return out, nil
}

// ParseWithLoginRepair behaves like Parse, but on a parse error it first
// tries to resynchronize by skipping over what looks like a login-state
// string packet (a u32 little-endian value whose low byte is 0x0A, whose
// next two bytes are a string length matching the packet's remaining size,
// and whose first character is an uppercase letter) before giving up.
// Grounded on RecParser::ParseLogin in
// original_source/lib/formats/rec.cpp: Rec recordings freely interleave
// login and game-state packets, and the original client tolerated it.
func (p *Parser) ParseWithLoginRepair(r *reader.Reader) ([]Event, error) {
	backtrack := *r
	events, err := p.Parse(r)
	if err == nil {
		return events, nil
	}

	*r = backtrack
	var out []Event
	for !r.Finished() {
		peek, peekErr := r.Peek(4)
		if peekErr != nil {
			break
		}
		low := peek[0]
		length := int(peek[1]) | int(peek[2])<<8
		first := peek[3]

		if low == 0x0A && length+3 == r.Remaining() && first >= 'A' && first <= 'Z' {
			if err := r.Skip(1); err != nil {
				break
			}
			if _, err := r.String(); err != nil {
				break
			}
			continue
		}
		break
	}

	if r.Finished() {
		return out, nil
	}

	more, err := p.Parse(r)
	return append(out, more...), err
}

func (p *Parser) buildDispatch() map[Opcode]handler {
	return map[Opcode]handler{
		OpWorldInitialized:    handleWorldInitialized,
		OpAmbientLight:        handleAmbientLight,
		OpFullMapDescription:  handleFullMapDescription,
		OpFloorChangeUp:       handleFloorChange(EventFloorChangeUp),
		OpFloorChangeDown:     handleFloorChange(EventFloorChangeDown),
		OpTileUpdated:         handleTileUpdated,
		OpTileObjectAdded:     handleTileObjectAdded,
		OpTileObjectTransform: handleTileObjectTransformed,
		OpTileObjectRemoved:   handleTileObjectRemoved,
		OpCreatureMoved:       handleCreatureMoved,
		OpContainerOpened:     handleContainerOpened,
		OpContainerClosed:     handleContainerClosed,
		OpContainerAddItem:    handleContainerAddItem,
		OpContainerTransform:  handleContainerTransform,
		OpContainerRemove:     handleContainerRemove,
		OpPlayerStats:         handlePlayerStats,
		OpPlayerSkills:        handlePlayerSkills,
		OpCreatureHealth:      handleCreatureHealth,
		OpCreatureHeading:     handleCreatureHeading,
		OpCreatureOutfit:      handleCreatureOutfit,
		OpCreatureSpeed:       handleCreatureSpeed,
		OpCreatureSkull:       handleCreatureSkull,
		OpCreatureShield:      handleCreatureShield,
		OpCreatureSpeak:       handleCreatureSpeak,
		OpChannelMessage:      handleChannelMessage,
		OpStatusMessage:       handleStatusMessage,
		OpMissileFired:        handleMissileFired,
		OpGraphicalEffect:     handleGraphicalEffect,
		OpNumberEffect:        handleNumberEffect,
	}
}

// readPosition reads an absolute world position: u16 x, u16 y, u8 z.
func readPosition(r *reader.Reader) (Position, error) {
	x, err := r.U16()
	if err != nil {
		return Position{}, err
	}
	y, err := r.U16()
	if err != nil {
		return Position{}, err
	}
	z, err := r.U8()
	if err != nil {
		return Position{}, err
	}
	return Position{X: int(x), Y: int(y), Z: int(z)}, nil
}

// markSeen records a creature sighting for the duration of the
// parser's lifetime.
func (p *Parser) markSeen(id uint32) { p.seen.Store(id, 1) }

// MarkSeen is the exported form of markSeen, for container readers (such as
// Tibiacast) that parse a creature's full CreatureSeen record themselves,
// outside of the opcode-dispatched packet stream Parse consumes.
func (p *Parser) MarkSeen(id uint32) { p.markSeen(id) }

func (p *Parser) isSeen(id uint32) bool {
	_, ok := p.seen.Load(id)
	return ok
}
