package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFrameWriterDefaultsToInert(t *testing.T) {
	w, err := newFrameWriter("", "")
	require.NoError(t, err)
	require.NoError(t, w.WriteFrame(nil))
	require.NoError(t, w.Close())
}

func TestNewFrameWriterInert(t *testing.T) {
	w, err := newFrameWriter("inert", "out.mp4")
	require.NoError(t, err)
	require.IsType(t, inertWriter{}, w)
}

func TestNewFrameWriterLibavUnavailable(t *testing.T) {
	_, err := newFrameWriter("libav", "out.mp4")
	require.Error(t, err)
	require.True(t, errors.Is(err, errBackendUnavailable))
}

func TestNewFrameWriterUnknownBackend(t *testing.T) {
	_, err := newFrameWriter("made-up", "out.mp4")
	require.Error(t, err)
}
