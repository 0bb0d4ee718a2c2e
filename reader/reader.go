// Package reader provides a bounded, position-tracked cursor over a byte
// slice, used throughout the recording pipeline to decode little-endian
// wire data without ever indexing past the end of a buffer.
package reader

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidData is returned whenever a read would underflow the remaining
// bytes, or a ranged read decodes a value outside its accepted bounds.
// Every container/protocol/asset parser in this module wraps this sentinel
// rather than returning a zero value on failure.
var ErrInvalidData = errors.New("reader: invalid data")

// Reader is a read-only cursor over data[pos:]. The zero value is not
// usable; construct with New or Slice.
type Reader struct {
	data []byte
	pos  int
}

// New wraps data in a Reader starting at position 0.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int { return len(r.data) }

// Position returns the current read offset.
func (r *Reader) Position() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

func (r *Reader) require(n int) error {
	if n < 0 || r.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidData, n, r.Remaining())
	}
	return nil
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// Peek returns the next n bytes without advancing the cursor.
func (r *Reader) Peek(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	return r.data[r.pos : r.pos+n], nil
}

// Copy reads exactly len(dst) bytes into dst, advancing the cursor.
func (r *Reader) Copy(dst []byte) error {
	if err := r.require(len(dst)); err != nil {
		return err
	}
	copy(dst, r.data[r.pos:r.pos+len(dst)])
	r.pos += len(dst)
	return nil
}

// Slice returns an independent sub-reader over the next n bytes and
// advances the parent past them.
func (r *Reader) Slice(n int) (*Reader, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	sub := &Reader{data: r.data[r.pos : r.pos+n]}
	r.pos += n
	return sub, nil
}

// Rest returns a sub-reader over every remaining byte, consuming them all.
func (r *Reader) Rest() *Reader {
	sub := &Reader{data: r.data[r.pos:]}
	r.pos = len(r.data)
	return sub
}

// U8 reads an unsigned byte.
func (r *Reader) U8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

// S8 reads a signed byte.
func (r *Reader) S8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// S16 reads a little-endian int16.
func (r *Reader) S16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// S32 reads a little-endian int32.
func (r *Reader) S32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// U64 reads a little-endian uint64.
func (r *Reader) U64() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// S64 reads a little-endian int64.
func (r *Reader) S64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

// U24 reads a little-endian 24-bit unsigned integer, used by some very old
// sprite index tables.
func (r *Reader) U24() (uint32, error) {
	if err := r.require(3); err != nil {
		return 0, err
	}
	v := uint32(r.data[r.pos]) | uint32(r.data[r.pos+1])<<8 | uint32(r.data[r.pos+2])<<16
	r.pos += 3
	return v, nil
}

// Bytes reads n raw bytes and returns them as a new slice (copied, so the
// caller may retain it after the parent Reader's buffer is reused).
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// String reads a u16 length prefix followed by that many raw (Windows-1252)
// bytes. Callers that need to display the string convert it via
// internal/charset; this layer never assumes an encoding.
func (r *Reader) String() ([]byte, error) {
	n, err := r.U16()
	if err != nil {
		return nil, err
	}
	return r.Bytes(int(n))
}

// Finished reports whether every byte has been consumed. Several wire
// formats treat leftover bytes after a sub-packet as a parse error.
func (r *Reader) Finished() bool { return r.Remaining() == 0 }

// RequireFinished returns ErrInvalidData if any bytes remain unconsumed.
func (r *Reader) RequireFinished() error {
	if !r.Finished() {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidData, r.Remaining())
	}
	return nil
}

// U16Range reads a uint16 and validates it falls within [min, max] inclusive.
func (r *Reader) U16Range(min, max uint16) (uint16, error) {
	v, err := r.U16()
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: value %d out of range [%d, %d]", ErrInvalidData, v, min, max)
	}
	return v, nil
}

// U32Range reads a uint32 and validates it falls within [min, max] inclusive.
func (r *Reader) U32Range(min, max uint32) (uint32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: value %d out of range [%d, %d]", ErrInvalidData, v, min, max)
	}
	return v, nil
}
