package demux

import (
	"testing"

	"github.com/kelindar/tibiavcr/reader"
	"github.com/stretchr/testify/require"
)

func TestSubmitSinglePacketOneFrame(t *testing.T) {
	d := New(2)
	var got [][]byte

	frame := []byte{0x03, 0x00, 'f', 'o', 'o'}
	err := d.Submit(100, reader.New(frame), func(r *reader.Reader, ts uint32) error {
		require.EqualValues(t, 100, ts)
		b, err := r.Bytes(r.Remaining())
		require.NoError(t, err)
		got = append(got, b)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, d.Finish())
	require.Equal(t, [][]byte{[]byte("foo")}, got)
}

func TestSubmitPacketSplitAcrossFrames(t *testing.T) {
	d := New(2)
	var got [][]byte
	collect := func(r *reader.Reader, ts uint32) error {
		b, err := r.Bytes(r.Remaining())
		require.NoError(t, err)
		got = append(got, b)
		return nil
	}

	require.NoError(t, d.Submit(1, reader.New([]byte{0x05, 0x00, 'h', 'e'}), collect))
	require.NoError(t, d.Submit(2, reader.New([]byte{'l', 'l', 'o'}), collect))
	require.NoError(t, d.Finish())

	require.Equal(t, [][]byte{[]byte("hello")}, got)
}

func TestSubmitMultiplePacketsOneFrame(t *testing.T) {
	d := New(2)
	var got [][]byte
	collect := func(r *reader.Reader, ts uint32) error {
		b, err := r.Bytes(r.Remaining())
		require.NoError(t, err)
		got = append(got, b)
		return nil
	}

	frame := []byte{0x01, 0x00, 'a', 0x01, 0x00, 'b'}
	require.NoError(t, d.Submit(1, reader.New(frame), collect))
	require.NoError(t, d.Finish())

	require.Equal(t, [][]byte{[]byte("a"), []byte("b")}, got)
}

func TestFinishRejectsIncompletePacket(t *testing.T) {
	d := New(2)
	err := d.Submit(1, reader.New([]byte{0x05, 0x00, 'h', 'i'}), func(*reader.Reader, uint32) error {
		return nil
	})
	require.NoError(t, err)
	require.Error(t, d.Finish())
}

func TestSubmitRejectsOversizedLength(t *testing.T) {
	d := New(4)
	err := d.Submit(1, reader.New([]byte{0xFF, 0xFF, 0xFF, 0x00}), func(*reader.Reader, uint32) error {
		return nil
	})
	require.ErrorIs(t, err, ErrOverflow)
}
