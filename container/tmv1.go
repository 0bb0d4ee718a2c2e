package container

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/kelindar/tibiavcr/demux"
	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

func tmv1Inflate(file *reader.Reader) ([]byte, error) {
	rest := file.Rest()
	raw, err := rest.Bytes(rest.Remaining())
	if err != nil {
		return nil, err
	}

	gr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}

// QueryTMV1Version decompresses just enough of a TMV1 stream to read its
// container version (must be 2) and the packed Tibia version that follows.
func QueryTMV1Version(file *reader.Reader) (version.Triplet, bool) {
	decompressed, err := tmv1Inflate(file)
	if err != nil || len(decompressed) < 4 {
		return version.Triplet{}, false
	}

	r := reader.New(decompressed)
	if _, err := r.U16Range(2, 2); err != nil {
		return version.Triplet{}, false
	}

	packed, err := r.U16()
	if err != nil {
		return version.Triplet{}, false
	}

	t := version.Triplet{Major: int(packed) / 100, Minor: int(packed) % 100}
	if t.Major < 7 || t.Major > 12 || t.Minor > 99 {
		return version.Triplet{}, false
	}
	return t, true
}

// ReadTMV1 decodes a TibiaMovie1 (.tmv1/.tmv) recording. The whole frame
// stream is a single gzip member with no recorded uncompressed size; once
// inflated, frames are a tagged (continue-flag, delay, demuxed payload)
// sequence with delays accumulating into an absolute clock.
func ReadTMV1(file *reader.Reader, profile *version.Profile, recovery Recovery) (*Recording, bool, error) {
	decompressed, err := tmv1Inflate(file)
	if err != nil {
		return nil, false, fmt.Errorf("container: tmv1: decompressing: %w", err)
	}

	r := reader.New(decompressed)
	if err := r.Skip(2); err != nil { // container version
		return nil, false, fmt.Errorf("container: tmv1: %w", err)
	}
	if err := r.Skip(2); err != nil { // Tibia version, read via QueryTMV1Version
		return nil, false, fmt.Errorf("container: tmv1: %w", err)
	}

	baseRuntimeMs, err := r.U32()
	if err != nil {
		return nil, false, fmt.Errorf("container: tmv1: %w", err)
	}

	rec := &Recording{}
	parser := protocol.New(profile)
	d := demux.New(2)
	partial := false

	frameTime := time.Duration(0)

	for !r.Finished() {
		flag, err := r.U8()
		if err != nil || flag > 1 {
			partial = true
			break
		}
		if flag != 0 {
			continue
		}

		delayMs, err := r.U32()
		if err != nil {
			partial = true
			break
		}
		length, err := r.U16()
		if err != nil {
			partial = true
			break
		}
		frameReader, err := r.Slice(int(length))
		if err != nil {
			partial = true
			break
		}

		ts := frameTime
		submitErr := d.Submit(uint32(ts.Milliseconds()), frameReader, func(payload *reader.Reader, _ uint32) error {
			events, err := parser.Parse(payload)
			appendFrame(rec, ts, events)
			return err
		})
		if submitErr != nil {
			partial = true
			break
		}

		frameTime += time.Duration(delayMs) * time.Millisecond
	}

	if !partial {
		if err := d.Finish(); err != nil {
			partial = true
		}
	}

	if len(rec.Frames) == 0 {
		partial = true
	}

	baseRuntime := time.Duration(baseRuntimeMs) * time.Millisecond
	if len(rec.Frames) > 0 && rec.Frames[len(rec.Frames)-1].Timestamp > baseRuntime {
		rec.Runtime = rec.Frames[len(rec.Frames)-1].Timestamp
	} else {
		rec.Runtime = baseRuntime
	}

	if partial && recovery == RecoveryNone {
		return nil, false, fmt.Errorf("%w: tmv1 recording truncated mid-stream", ErrInvalidFormat)
	}

	return rec, partial, nil
}
