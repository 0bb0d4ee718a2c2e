// Package assets decodes the client data files referenced by a recording:
// sprites, picture atlases, and the item/outfit/effect/missile type table.
package assets

import (
	"fmt"
	"os"

	"codeberg.org/go-mmap/mmap"
)

// offsetFile is a memory-mapped file preceded by a flat table of u32 byte
// offsets, one per entry, as used by Tibia's .spr and .pic containers.
// Unlike a hashed/chunked archive format, this needs only a flat offset
// table plus lazy per-entry slicing: open once, cache handles, decode
// lazily.
type offsetFile struct {
	file      *mmap.File
	size      int64
	signature uint32
	offsets   []uint32
}

// openOffsetFile mmaps path and reads a u32 signature followed by a u32
// entry count and that many u32 offsets, indexed from 0.
func openOffsetFile(path string) (*offsetFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}

	f, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to open %s: %w", path, err)
	}

	header := make([]byte, 8)
	if _, err := f.ReadAt(header, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("assets: failed to read header of %s: %w", path, err)
	}

	signature := le32(header[0:4])
	count := le32(header[4:8])

	const maxReasonableCount = 1 << 20
	if count > maxReasonableCount {
		f.Close()
		return nil, fmt.Errorf("assets: %s reports implausible entry count %d", path, count)
	}

	table := make([]byte, int(count)*4)
	if _, err := f.ReadAt(table, 8); err != nil {
		f.Close()
		return nil, fmt.Errorf("assets: failed to read offset table of %s: %w", path, err)
	}

	offsets := make([]uint32, count)
	for i := range offsets {
		offsets[i] = le32(table[i*4 : i*4+4])
	}

	return &offsetFile{
		file:      f,
		size:      info.Size(),
		signature: signature,
		offsets:   offsets,
	}, nil
}

func (o *offsetFile) Close() error {
	return o.file.Close()
}

func (o *offsetFile) Count() int { return len(o.offsets) }

// At reads the raw bytes of entry id, which must lie in [0, Count()). The
// entry's length is its own u16 length prefix, matching the
// offset-then-length-prefix layout pictures_ReadPicture uses for embedded
// sprite blocks.
func (o *offsetFile) At(id int) ([]byte, error) {
	if id < 0 || id >= len(o.offsets) {
		return nil, fmt.Errorf("assets: entry %d out of range [0,%d)", id, len(o.offsets))
	}

	off := int64(o.offsets[id])
	if off <= 0 || off >= o.size {
		return nil, nil
	}

	lenBuf := make([]byte, 2)
	if _, err := o.file.ReadAt(lenBuf, off); err != nil {
		return nil, fmt.Errorf("assets: failed to read entry %d length: %w", id, err)
	}
	n := int(lenBuf[0]) | int(lenBuf[1])<<8
	if n == 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	if _, err := o.file.ReadAt(buf, off+2); err != nil {
		return nil, fmt.Errorf("assets: failed to read entry %d body: %w", id, err)
	}
	return buf, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
