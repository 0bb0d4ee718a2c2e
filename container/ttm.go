package container

import (
	"fmt"
	"time"

	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

// QueryTTMVersion reads the packed Tibia version from a TibiaTimeMachine
// (.ttm) header without consuming the reader.
func QueryTTMVersion(file *reader.Reader) (version.Triplet, bool) {
	raw, err := file.Peek(2)
	if err != nil {
		return version.Triplet{}, false
	}
	packed := int(raw[0]) | int(raw[1])<<8

	major := packed / 100
	minor := packed % 100
	if major < 7 || major > 12 {
		return version.Triplet{}, false
	}
	return version.Triplet{Major: major, Minor: minor}, true
}

// ReadTTM decodes a TibiaTimeMachine (.ttm) recording. Frames carry no
// timestamp of their own; a trailing delay byte after each one says
// whether the next frame follows after an explicit u16 millisecond count
// or a fixed one-second step.
func ReadTTM(file *reader.Reader, profile *version.Profile, recovery Recovery) (*Recording, bool, error) {
	if err := file.Skip(2); err != nil { // Tibia version, read via QueryTTMVersion
		return nil, false, fmt.Errorf("container: ttm: %w", err)
	}

	serverLength, err := file.U8()
	if err != nil {
		return nil, false, fmt.Errorf("container: ttm: %w", err)
	}
	if err := file.Skip(int(serverLength)); err != nil {
		return nil, false, fmt.Errorf("container: ttm: %w", err)
	}
	if serverLength > 0 {
		if err := file.Skip(2); err != nil { // server port
			return nil, false, fmt.Errorf("container: ttm: %w", err)
		}
	}

	runtimeMs, err := file.U32()
	if err != nil {
		return nil, false, fmt.Errorf("container: ttm: %w", err)
	}

	rec := &Recording{Runtime: time.Duration(runtimeMs) * time.Millisecond}
	parser := protocol.New(profile)
	partial := false
	timestamp := time.Duration(0)

	for {
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
		appendFrame(rec, timestamp, events)
		if parseErr != nil {
			partial = true
			break
		}

		if file.Remaining() == 0 {
			break
		}

		fixedDelay, err := file.U8()
		if err != nil || fixedDelay > 1 {
			partial = true
			break
		}
		if fixedDelay == 0 {
			delay, err := file.U16()
			if err != nil {
				partial = true
				break
			}
			timestamp += time.Duration(delay) * time.Millisecond
		} else {
			timestamp += time.Second
		}
	}

	if len(rec.Frames) == 0 {
		partial = true
	}

	if partial && recovery == RecoveryNone {
		return nil, false, fmt.Errorf("%w: ttm recording truncated mid-stream", ErrInvalidFormat)
	}

	return rec, partial, nil
}
