package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/kelindar/tibiavcr/demux"
	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
	"github.com/ulikunitz/xz/lzma"
)

// QueryCamVersion reads the Tibia version embedded at offset 32 without
// decompressing anything, matching the original format's QueryTibiaVersion.
func QueryCamVersion(file *reader.Reader) (version.Triplet, bool) {
	r := *file
	if err := r.Skip(32); err != nil {
		return version.Triplet{}, false
	}
	raw, err := r.Bytes(4)
	if err != nil {
		return version.Triplet{}, false
	}

	major := int(raw[0])
	minor := int(raw[1])*10 + int(raw[2])
	if major < 7 || major > 12 || minor < 0 || minor > 99 {
		return version.Triplet{}, false
	}
	return version.Triplet{Major: major, Minor: minor}, true
}

// ReadCam decodes a Cam (TibiaMovie/.cam) recording. The container wraps
// its frame stream in a classic-header LZMA stream; the header's
// properties byte + dictionary size and the separately-stored
// decompressed size are reassembled here into the 13-byte header
// lzma.NewReader expects.
func ReadCam(file *reader.Reader, profile *version.Profile, recovery Recovery) (*Recording, bool, error) {
	if err := file.Skip(32); err != nil { // fixed header
		return nil, false, fmt.Errorf("container: cam: %w", err)
	}
	if err := file.Skip(4); err != nil { // Tibia version, read via QueryCamVersion
		return nil, false, fmt.Errorf("container: cam: %w", err)
	}

	metaLength, err := file.U32()
	if err != nil {
		return nil, false, fmt.Errorf("container: cam: %w", err)
	}
	if err := file.Skip(int(metaLength)); err != nil {
		return nil, false, fmt.Errorf("container: cam: %w", err)
	}

	compressedSize, err := file.U32()
	if err != nil {
		return nil, false, fmt.Errorf("container: cam: %w", err)
	}
	lzmaProps, err := file.Bytes(5)
	if err != nil {
		return nil, false, fmt.Errorf("container: cam: %w", err)
	}
	decompressedSize, err := file.U64()
	if err != nil {
		return nil, false, fmt.Errorf("container: cam: %w", err)
	}
	compressed, err := file.Bytes(int(compressedSize))
	if err != nil {
		return nil, false, fmt.Errorf("container: cam: %w", err)
	}

	var header bytes.Buffer
	header.Write(lzmaProps)
	binary.Write(&header, binary.LittleEndian, decompressedSize)
	header.Write(compressed)

	lr, err := lzma.NewReader(&header)
	if err != nil {
		return nil, false, fmt.Errorf("container: cam: creating lzma reader: %w", err)
	}
	decompressed, err := io.ReadAll(lr)
	if err != nil {
		return nil, false, fmt.Errorf("container: cam: decompressing: %w", err)
	}

	inner := reader.New(decompressed)
	if err := inner.Skip(2); err != nil { // bogus container version
		return nil, false, fmt.Errorf("container: cam: %w", err)
	}
	frameCount, err := inner.S32()
	if err != nil {
		return nil, false, fmt.Errorf("container: cam: %w", err)
	}
	frameCount -= 57

	rec := &Recording{}
	parser := protocol.New(profile)
	d := demux.New(2)
	partial := false

	for i := int32(0); i < frameCount; i++ {
		length, err := inner.U16()
		if err != nil {
			partial = true
			break
		}
		timestamp, err := inner.U32()
		if err != nil {
			partial = true
			break
		}
		fragment, err := inner.Slice(int(length))
		if err != nil {
			partial = true
			break
		}

		submitErr := d.Submit(timestamp, fragment, func(payload *reader.Reader, ts uint32) error {
			events, err := parser.Parse(payload)
			appendFrame(rec, time.Duration(ts)*time.Millisecond, events)
			return err
		})
		if submitErr != nil {
			partial = true
			break
		}

		if _, err := inner.U32(); err != nil { // fragment checksum, not validated
			partial = true
			break
		}
	}

	if !partial {
		if err := d.Finish(); err != nil {
			partial = true
		}
	}

	if partial && recovery == RecoveryNone {
		return nil, false, fmt.Errorf("%w: cam recording truncated mid-stream", ErrInvalidFormat)
	}

	return rec, partial, nil
}
