// Package container decodes the various recording container formats into a
// sequence of timestamped, already-parsed protocol events.
package container

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

// ErrNotSupported is returned by Read when asked for a Format it has no
// decoder for.
var ErrNotSupported = errors.New("container: unsupported format")

// ErrInvalidFormat is returned when a file's magic/header does not match
// the format its reader was asked to decode.
var ErrInvalidFormat = errors.New("container: invalid format")

// Frame is one timestamped batch of events, corresponding to everything a
// single demuxed packet (or, for formats without a demuxer, a single outer
// record) produced.
type Frame struct {
	Timestamp time.Duration
	Events    []protocol.Event
}

// Recording is a fully decoded container: every frame in playback order
// plus the container's reported total runtime.
type Recording struct {
	Runtime time.Duration
	Frames  []Frame
}

// Recovery controls how a format reader responds to a mid-stream parse
// error.
type Recovery int

const (
	// RecoveryNone aborts on the first error; the caller sees it.
	RecoveryNone Recovery = iota
	// RecoveryPartial stops and returns everything decoded so far, with
	// the returned bool set to true.
	RecoveryPartial
	// RecoveryRepair behaves like RecoveryPartial but, for formats that
	// support it (currently only Rec), additionally tries to resynchronize
	// by re-scanning for a login-state packet prefix.
	RecoveryRepair
)

// Format names a container kind, used by Detect and to pick the right
// reader.
type Format int

const (
	FormatUnknown Format = iota
	FormatCam
	FormatRec
	FormatTibiacast
	FormatTMV1
	FormatTMV2
	FormatTRP
	FormatTTM
	FormatYATC
)

func (f Format) String() string {
	switch f {
	case FormatCam:
		return "cam"
	case FormatRec:
		return "rec"
	case FormatTibiacast:
		return "tibiacast"
	case FormatTMV1:
		return "tmv1"
	case FormatTMV2:
		return "tmv2"
	case FormatTRP:
		return "trp"
	case FormatTTM:
		return "ttm"
	case FormatYATC:
		return "yatc"
	default:
		return "unknown"
	}
}

func appendFrame(rec *Recording, ts time.Duration, events []protocol.Event) {
	rec.Frames = append(rec.Frames, Frame{Timestamp: ts, Events: events})
	if ts > rec.Runtime {
		rec.Runtime = ts
	}
}

// QueryVersion reads the Tibia client version embedded in a container's
// header, if the format records one at all (YATC never does).
func QueryVersion(f Format, file *reader.Reader) (version.Triplet, bool) {
	switch f {
	case FormatCam:
		return QueryCamVersion(file)
	case FormatRec:
		return version.Triplet{}, false
	case FormatTibiacast:
		return QueryTibiacastVersion(file)
	case FormatTMV1:
		return QueryTMV1Version(file)
	case FormatTMV2:
		return QueryTMV2Version(file)
	case FormatTRP:
		return QueryTRPVersion(file)
	case FormatTTM:
		return QueryTTMVersion(file)
	case FormatYATC:
		return QueryYATCVersion(file)
	default:
		return version.Triplet{}, false
	}
}

// Read dispatches to the reader for f and decodes a full Recording.
func Read(f Format, file *reader.Reader, profile *version.Profile, recovery Recovery) (*Recording, bool, error) {
	switch f {
	case FormatCam:
		return ReadCam(file, profile, recovery)
	case FormatRec:
		return ReadRec(file, profile, recovery)
	case FormatTibiacast:
		return ReadTibiacast(file, profile, recovery)
	case FormatTMV1:
		return ReadTMV1(file, profile, recovery)
	case FormatTMV2:
		return ReadTMV2(file, profile, recovery)
	case FormatTRP:
		return ReadTRP(file, profile, recovery)
	case FormatTTM:
		return ReadTTM(file, profile, recovery)
	case FormatYATC:
		return ReadYATC(file, profile, recovery)
	default:
		return nil, false, fmt.Errorf("%w: format %s", ErrNotSupported, f)
	}
}
