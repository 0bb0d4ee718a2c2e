package reader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedReads(t *testing.T) {
	data := []byte{
		0x2A,       // u8 = 42
		0x34, 0x12, // u16 = 0x1234
		0x78, 0x56, 0x34, 0x12, // u32 = 0x12345678
	}
	r := New(data)

	u8, err := r.U8()
	require.NoError(t, err)
	require.EqualValues(t, 42, u8)

	u16, err := r.U16()
	require.NoError(t, err)
	require.EqualValues(t, 0x1234, u16)

	u32, err := r.U32()
	require.NoError(t, err)
	require.EqualValues(t, 0x12345678, u32)

	require.True(t, r.Finished())
}

func TestUnderflow(t *testing.T) {
	r := New([]byte{0x01})
	_, err := r.U32()
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestSliceIndependence(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x03, 0x04})
	sub, err := r.Slice(2)
	require.NoError(t, err)
	require.Equal(t, 2, r.Remaining())

	v, err := sub.U16()
	require.NoError(t, err)
	require.EqualValues(t, 0x0201, v)
	require.True(t, sub.Finished())
}

func TestStringReadsRawBytes(t *testing.T) {
	data := []byte{0x03, 0x00, 'f', 'o', 'o'}
	r := New(data)
	s, err := r.String()
	require.NoError(t, err)
	require.Equal(t, []byte("foo"), s)
}

func TestRequireFinished(t *testing.T) {
	r := New([]byte{0x01, 0x02})
	_, err := r.U8()
	require.NoError(t, err)
	require.Error(t, r.RequireFinished())
}

func TestRangedRead(t *testing.T) {
	r := New([]byte{0x0F, 0x00})
	_, err := r.U16Range(0, 10)
	require.True(t, errors.Is(err, ErrInvalidData))
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r := New([]byte{0xAA, 0xBB})
	b, err := r.Peek(1)
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), b[0])
	require.Equal(t, 2, r.Remaining())
}
