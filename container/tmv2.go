package container

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zlib"

	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

const tmv2Magic = 0x32564D54 // "TMV2" read as a little-endian u32

// QueryTMV2Version reads the Tibia version triplet embedded in a TMV2
// header without touching the (possibly compressed) frame stream.
func QueryTMV2Version(file *reader.Reader) (version.Triplet, bool) {
	r := *file
	if err := r.Skip(10); err != nil {
		return version.Triplet{}, false
	}
	raw, err := r.Bytes(3)
	if err != nil {
		return version.Triplet{}, false
	}

	major := int(raw[0])
	minor := int(raw[1])*10 + int(raw[2])
	if major < 7 || major > 12 || minor > 99 {
		return version.Triplet{}, false
	}
	return version.Triplet{Major: major, Minor: minor}, true
}

func readTMV2Frame(r *reader.Reader, parser *protocol.Parser, rec *Recording) error {
	outerLength, err := r.U16()
	if err != nil {
		return err
	}
	timestamp, err := r.U32()
	if err != nil {
		return err
	}
	innerLength, err := r.U16()
	if err != nil {
		return err
	}
	if int(outerLength) != int(innerLength)+2 {
		return fmt.Errorf("%w: tmv2 frame length mismatch", ErrInvalidFormat)
	}

	packet, err := r.Slice(int(innerLength))
	if err != nil {
		return err
	}

	var events []protocol.Event
	for !packet.Finished() {
		parsed, err := parser.Parse(packet)
		events = append(events, parsed...)
		if err != nil {
			appendFrame(rec, time.Duration(timestamp)*time.Millisecond, events)
			return err
		}
	}
	appendFrame(rec, time.Duration(timestamp)*time.Millisecond, events)
	return nil
}

// ReadTMV2 decodes a TibiaMovie2 (.tmv2) recording. Its payload is
// optionally zlib-compressed (the standard wrapped deflate stream, unlike
// Tibiacast's raw one) with the exact decompressed size recorded up front.
func ReadTMV2(file *reader.Reader, profile *version.Profile, recovery Recovery) (*Recording, bool, error) {
	magic, err := file.U32()
	if err != nil {
		return nil, false, fmt.Errorf("container: tmv2: %w", err)
	}
	if magic != tmv2Magic {
		return nil, false, fmt.Errorf("%w: tmv2 magic mismatch", ErrInvalidFormat)
	}

	compressedFlag, err := file.U32Range(0, 1)
	if err != nil {
		return nil, false, fmt.Errorf("container: tmv2: %w", err)
	}
	if _, err := file.U16Range(1, 1); err != nil {
		return nil, false, fmt.Errorf("container: tmv2: %w", err)
	}
	if err := file.Skip(3); err != nil { // Tibia version, read via QueryTMV2Version
		return nil, false, fmt.Errorf("container: tmv2: %w", err)
	}
	if err := file.Skip(4); err != nil { // creation time
		return nil, false, fmt.Errorf("container: tmv2: %w", err)
	}

	packetCount, err := file.U32()
	if err != nil {
		return nil, false, fmt.Errorf("container: tmv2: %w", err)
	}
	if err := file.Skip(4); err != nil { // broken timestamp field
		return nil, false, fmt.Errorf("container: tmv2: %w", err)
	}
	decompressedSize, err := file.U32()
	if err != nil {
		return nil, false, fmt.Errorf("container: tmv2: %w", err)
	}

	body := file
	if compressedFlag == 1 {
		rest := file.Rest()
		compressed, err := rest.Bytes(rest.Remaining())
		if err != nil {
			return nil, false, fmt.Errorf("container: tmv2: %w", err)
		}

		zr, err := zlib.NewReader(bytes.NewReader(compressed))
		if err != nil {
			return nil, false, fmt.Errorf("container: tmv2: opening zlib stream: %w", err)
		}
		defer zr.Close()

		decompressed, err := io.ReadAll(zr)
		if err != nil {
			return nil, false, fmt.Errorf("container: tmv2: decompressing: %w", err)
		}
		if uint32(len(decompressed)) != decompressedSize {
			return nil, false, fmt.Errorf("%w: tmv2 decompressed size mismatch", ErrInvalidFormat)
		}

		body = reader.New(decompressed)
	}

	rec := &Recording{}
	parser := protocol.New(profile)
	partial := false

	for i := uint32(0); i < packetCount; i++ {
		if err := readTMV2Frame(body, parser, rec); err != nil {
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
		return nil, false, fmt.Errorf("%w: tmv2 recording truncated mid-stream", ErrInvalidFormat)
	}

	return rec, partial, nil
}
