// Package demux reassembles a length-prefixed stream of game-protocol
// packets out of the frames a container reader emits.
package demux

import (
	"errors"
	"fmt"

	"github.com/kelindar/tibiavcr/reader"
)

// ErrOverflow is returned when a length prefix claims more bytes than the
// demuxer is willing to buffer, almost always a sign of a corrupt or
// misidentified recording.
var ErrOverflow = errors.New("demux: payload exceeds maximum buffered size")

// maxPayload bounds how large a single reassembled packet may be. 128KiB
// comfortably covers the largest real map descriptions the protocol sends.
const maxPayload = 128 << 10

type state int

const (
	stateHeader state = iota
	statePayload
)

// Demuxer reassembles packets split across frame boundaries. A frame may
// contain more than one packet, less than one packet, or a packet that
// spans several frames; Submit handles all three by carrying partial state
// between calls.
type Demuxer struct {
	headerSize int
	st         state

	timestamp uint32
	remaining int
	used      int
	buffer    []byte
}

// New returns a Demuxer whose packets are prefixed by a headerSize-byte
// little-endian length (2 or 4 bytes, depending on container format).
func New(headerSize int) *Demuxer {
	return &Demuxer{
		headerSize: headerSize,
		st:         stateHeader,
		remaining:  headerSize,
		buffer:     make([]byte, maxPayload),
	}
}

// Submit feeds one frame's worth of bytes through the reassembler, invoking
// process once per complete packet with its own sub-reader and the
// timestamp in effect when that packet's header was read.
func (d *Demuxer) Submit(timestamp uint32, r *reader.Reader, process func(*reader.Reader, uint32) error) error {
	for r.Remaining() > 0 {
		toCopy := min(r.Remaining(), d.remaining)
		if err := r.Copy(d.buffer[d.used : d.used+toCopy]); err != nil {
			return fmt.Errorf("demux: %w", err)
		}

		d.remaining -= toCopy
		d.used += toCopy

		if d.remaining == 0 && d.st == stateHeader {
			header := d.buffer[:d.headerSize]
			d.used = 0

			length := int(header[0]) | int(header[1])<<8
			if d.headerSize == 4 {
				length |= int(header[2])<<16 | int(header[3])<<24
			}
			if length > maxPayload {
				return fmt.Errorf("%w: %d bytes", ErrOverflow, length)
			}

			d.st = statePayload
			d.timestamp = timestamp
			d.remaining = length
		}

		if d.remaining == 0 && d.st == statePayload {
			if err := process(reader.New(d.buffer[:d.used]), d.timestamp); err != nil {
				return err
			}
			d.st = stateHeader
			d.remaining = d.headerSize
			d.used = 0
		}
	}

	return nil
}

// Finish reports an error if a partial packet is still buffered, meaning
// the recording ended mid-frame.
func (d *Demuxer) Finish() error {
	if d.st == statePayload || d.used > 0 {
		return fmt.Errorf("demux: recording ended with %d bytes of an incomplete packet", d.remaining)
	}
	return nil
}
