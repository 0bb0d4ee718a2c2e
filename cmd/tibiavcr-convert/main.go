// Command tibiavcr-convert renders a recorded session into a sequence of
// RGBA video frames, handing each one to a FrameWriter backend.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/go-mmap/mmap"
	"github.com/dustin/go-humanize"

	"github.com/kelindar/tibiavcr/assets"
	"github.com/kelindar/tibiavcr/container"
	"github.com/kelindar/tibiavcr/gamestate"
	"github.com/kelindar/tibiavcr/internal/canvas"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/render"
	"github.com/kelindar/tibiavcr/version"
)

const versionString = "tibiavcr-convert 0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("tibiavcr-convert: ")
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(argv []string) error {
	opts, err := parseArgs(argv)
	if err != nil {
		return err
	}
	if opts.Version {
		fmt.Println(versionString)
		return nil
	}
	if opts.Help || opts.Usage {
		printUsage()
		return nil
	}

	raw, err := readWholeFile(opts.InputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	format := container.FormatUnknown
	if opts.InputFormat != "" {
		format = parseFormat(opts.InputFormat)
		if format == container.FormatUnknown {
			return fmt.Errorf("unrecognized --input-format %q", opts.InputFormat)
		}
	} else {
		detected, ok := container.Detect(opts.InputPath, raw)
		if !ok {
			return fmt.Errorf("could not auto-detect container format for %s; pass --input-format", opts.InputPath)
		}
		format = detected
	}

	r := reader.New(raw)

	triplet := opts.InputVersion
	if queried, ok := container.QueryVersion(format, r); ok {
		triplet = queried
	} else if triplet == (version.Triplet{}) {
		return fmt.Errorf("%s recordings don't embed a client version; pass --input-version", format)
	}
	r = reader.New(raw)

	recovery := container.RecoveryNone
	if opts.InputPartial {
		recovery = container.RecoveryRepair
	}

	profile := version.New(triplet)
	recording, recovered, err := container.Read(format, r, profile, recovery)
	if err != nil {
		return fmt.Errorf("decoding %s recording: %w", format, err)
	}
	if recovered {
		log.Printf("recording was truncated, continuing with %d recovered frames", len(recording.Frames))
	}

	store, err := assets.Open(opts.DataFolder, triplet)
	if err != nil {
		return fmt.Errorf("opening asset data: %w", err)
	}

	writer, err := newFrameWriter(opts.OutputBackend, opts.OutputPath)
	if err != nil {
		return fmt.Errorf("setting up output backend: %w", err)
	}
	defer writer.Close()

	return convert(recording, store, profile, opts, writer)
}

func convert(recording *container.Recording, store *assets.Store, profile *version.Profile, opts *cliOptions, writer FrameWriter) error {
	s := gamestate.New(store, profile)

	startTime := time.Duration(opts.StartTimeMs) * time.Millisecond
	endTime := time.Duration(opts.EndTimeMs) * time.Millisecond
	if endTime <= 0 {
		endTime = recording.Runtime
	}
	frameInterval := time.Second / time.Duration(opts.FrameRate)

	full := image.Rect(0, 0, opts.Width+render.SidebarWidth, opts.Height)
	mapArea := image.Rect(0, 0, opts.Width, opts.Height)
	sidebarArea := image.Rect(opts.Width, 0, opts.Width+render.SidebarWidth, opts.Height)

	frameIndex := 0
	nextOutputTick := startTime
	lastReport := time.Time{}

	for _, frame := range recording.Frames {
		if frame.Timestamp < startTime {
			for _, e := range frame.Events {
				_ = s.Apply(e)
			}
			continue
		}
		if frame.Timestamp > endTime {
			break
		}
		s.CurrentTick = frame.Timestamp
		for _, e := range frame.Events {
			if err := s.Apply(e); err != nil {
				return fmt.Errorf("applying event at %s: %w", frame.Timestamp, err)
			}
		}

		if frame.Timestamp < nextOutputTick {
			continue
		}
		nextOutputTick += frameInterval

		frameIndex++
		if frameIndex%opts.FrameSkip != 0 {
			continue
		}

		canvasFull := renderFrame(s, opts, full, mapArea, sidebarArea)
		if err := writer.WriteFrame(canvasFull); err != nil {
			return fmt.Errorf("writing frame at %s: %w", frame.Timestamp, err)
		}

		if time.Since(lastReport) >= 500*time.Millisecond {
			log.Printf("progress: %s / %s / %s",
				humanize.Comma(frame.Timestamp.Milliseconds()),
				humanize.Comma(startTime.Milliseconds()),
				humanize.Comma(endTime.Milliseconds()))
			lastReport = time.Now()
		}
	}

	return nil
}

func renderFrame(s *gamestate.State, opts *cliOptions, full, mapArea, sidebarArea image.Rectangle) *canvas.RGBA {
	logical := canvas.New(image.Rect(0, 0, render.LogicalWidth, render.LogicalHeight))
	render.DrawGamestate(opts.RenderOptions, s, logical)

	out := canvas.New(full)
	mapView := out.SubImage(mapArea)
	scaled := render.Rescale(logical, mapView.Bounds().Dx(), mapView.Bounds().Dy())
	blitInto(mapView, scaled)
	render.DrawOverlay(opts.RenderOptions, s, mapView)

	sidebar := out.SubImage(sidebarArea)
	y := 0
	y = render.DrawClientBackground(opts.RenderOptions, sidebar, 0, y, sidebarArea.Dy())
	y = render.DrawStatusBars(opts.RenderOptions, s, sidebar, 4, y)
	y = render.DrawInventoryArea(opts.RenderOptions, s, sidebar, 4, y)
	render.DrawIconBar(opts.RenderOptions, s, sidebar, 4, y)

	return out
}

func blitInto(dst, src *canvas.RGBA) {
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetRGBA(x, y, src.At(b.Min.X+x, b.Min.Y+y).(color.RGBA))
		}
	}
}

// readWholeFile mmaps path and copies it into a plain []byte, since the
// decoders downstream want a reader.Reader over an ordinary slice rather
// than a live file handle.
func readWholeFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	f, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, info.Size())
	if _, err := f.ReadAt(buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

func parseFormat(s string) container.Format {
	switch s {
	case "cam":
		return container.FormatCam
	case "rec":
		return container.FormatRec
	case "tibiacast":
		return container.FormatTibiacast
	case "tmv1":
		return container.FormatTMV1
	case "tmv2":
		return container.FormatTMV2
	case "trp":
		return container.FormatTRP
	case "ttm":
		return container.FormatTTM
	case "yatc":
		return container.FormatYATC
	default:
		return container.FormatUnknown
	}
}

func printUsage() {
	fmt.Println("usage:", filepath.Base(os.Args[0]), "[flags] data_folder input_path output_path")
	fmt.Println()
	fmt.Println("flags:")
	fmt.Println("  --input-format, --input-version, --input-partial")
	fmt.Println("  --start-time, --end-time, --frame-rate, --frame-skip, --resolution")
	fmt.Println("  --output-format, --output-encoding, --output-flags, --output-backend")
	for _, f := range skipRenderingFlags {
		fmt.Println("  --skip-rendering-" + f.name)
	}
	fmt.Println("  --help, --usage, --version")
}
