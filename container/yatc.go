package container

import (
	"fmt"
	"time"

	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

// QueryYATCVersion always fails: YATC recordings carry no embedded client
// version, so the caller must supply one explicitly.
func QueryYATCVersion(file *reader.Reader) (version.Triplet, bool) {
	return version.Triplet{}, false
}

// ReadYATC decodes a YATC recording: flat (u32 timestamp, u16-length
// packet) pairs with no container header at all.
func ReadYATC(file *reader.Reader, profile *version.Profile, recovery Recovery) (*Recording, bool, error) {
	rec := &Recording{}
	parser := protocol.New(profile)
	partial := false

	for file.Remaining() > 0 {
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

	if len(rec.Frames) == 0 {
		partial = true
	} else {
		rec.Runtime = rec.Frames[len(rec.Frames)-1].Timestamp
	}

	if partial && recovery == RecoveryNone {
		return nil, false, fmt.Errorf("%w: yatc recording truncated mid-stream", ErrInvalidFormat)
	}

	return rec, partial, nil
}
