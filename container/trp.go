package container

import (
	"fmt"
	"time"

	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

const trpMagic = 0x1337

// QueryTRPVersion reads the packed Tibia version from a TibiaReplay (.trp)
// header. Older captures omit the magic and start directly with two
// version-adjacent u16 fields, so the header width is detected from
// whether the first u16 matches the magic.
func QueryTRPVersion(file *reader.Reader) (version.Triplet, bool) {
	r := *file
	magic, err := r.U16()
	if err != nil {
		return version.Triplet{}, false
	}
	if magic != trpMagic {
		if err := r.Skip(2); err != nil {
			return version.Triplet{}, false
		}
	}

	packed, err := r.U16()
	if err != nil {
		return version.Triplet{}, false
	}

	major := int(packed) / 100
	minor := int(packed) % 100
	if major < 7 || major > 12 {
		return version.Triplet{}, false
	}
	return version.Triplet{Major: major, Minor: minor}, true
}

// ReadTRP decodes a TibiaReplay (.trp) recording.
func ReadTRP(file *reader.Reader, profile *version.Profile, recovery Recovery) (*Recording, bool, error) {
	magic, err := file.U16()
	if err != nil {
		return nil, false, fmt.Errorf("container: trp: %w", err)
	}
	if magic != trpMagic {
		if err := file.Skip(2); err != nil {
			return nil, false, fmt.Errorf("container: trp: %w", err)
		}
	}
	if err := file.Skip(2); err != nil { // Tibia version, read via QueryTRPVersion
		return nil, false, fmt.Errorf("container: trp: %w", err)
	}

	runtimeMs, err := file.U32()
	if err != nil {
		return nil, false, fmt.Errorf("container: trp: %w", err)
	}
	frameCount, err := file.U32()
	if err != nil {
		return nil, false, fmt.Errorf("container: trp: %w", err)
	}

	rec := &Recording{Runtime: time.Duration(runtimeMs) * time.Millisecond}
	parser := protocol.New(profile)
	partial := false

	for i := uint32(0); i < frameCount; i++ {
		timestampMs, err := file.U32()
		if err != nil {
			partial = true
			break
		}
		length, err := file.U16()
		if err != nil {
			partial = true
			break
		}
		packet, err := file.Slice(int(length))
		if err != nil {
			partial = true
			break
		}

		events, parseErr := parser.Parse(packet)
		appendFrame(rec, time.Duration(timestampMs)*time.Millisecond, events)
		if parseErr != nil {
			partial = true
			break
		}
	}

	if partial && recovery == RecoveryNone {
		return nil, false, fmt.Errorf("%w: trp recording truncated mid-stream", ErrInvalidFormat)
	}

	return rec, partial, nil
}
