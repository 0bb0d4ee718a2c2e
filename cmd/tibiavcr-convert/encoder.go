package main

import (
	"errors"
	"fmt"

	"github.com/kelindar/tibiavcr/internal/canvas"
)

// FrameWriter is the write_frame(canvas) contract a video encoder back-end
// consumes; the core only ever hands it finished RGBA frames, never
// reaching into how they're muxed or compressed.
type FrameWriter interface {
	WriteFrame(frame *canvas.RGBA) error
	Close() error
}

// errBackendUnavailable is returned by backends this build doesn't carry
// (a real libav binding needs cgo and a system ffmpeg install, neither of
// which belongs in this module).
var errBackendUnavailable = errors.New("tibiavcr-convert: backend unavailable in this build")

// inertWriter discards every frame handed to it; it exists for benchmarking
// the pipeline up to (but not including) encoding, and as the degenerate
// case of the write_frame contract.
type inertWriter struct{}

func (inertWriter) WriteFrame(*canvas.RGBA) error { return nil }
func (inertWriter) Close() error                  { return nil }

// newFrameWriter resolves an --output-backend name to a FrameWriter. Only
// "inert" is actually implemented; "libav" is an external collaborator
// this module specifies the interface for but does not itself provide.
func newFrameWriter(backend, path string) (FrameWriter, error) {
	switch backend {
	case "", "inert":
		return inertWriter{}, nil
	case "libav":
		return nil, fmt.Errorf("%w: libav", errBackendUnavailable)
	default:
		return nil, fmt.Errorf("tibiavcr-convert: unknown output backend %q", backend)
	}
}
