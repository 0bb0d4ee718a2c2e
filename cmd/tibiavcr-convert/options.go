package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/kelindar/tibiavcr/render"
	"github.com/kelindar/tibiavcr/version"
)

// cliOptions holds every flag/positional the converter accepts, resolved
// to typed values ready for the pipeline to consume.
type cliOptions struct {
	DataFolder string
	InputPath  string
	OutputPath string

	InputFormat  string
	InputVersion version.Triplet
	InputPartial bool

	StartTimeMs int
	EndTimeMs   int
	FrameRate   int
	FrameSkip   int

	Width, Height int

	OutputFormat   string
	OutputEncoding string
	OutputFlags    string
	OutputBackend  string

	RenderOptions render.Options

	Help    bool
	Usage   bool
	Version bool
}

// skipRenderingFlags names every --skip-rendering-<category> toggle and
// the render.Options bit it clears.
var skipRenderingFlags = []struct {
	name string
	bit  render.Options
}{
	{"creatures", render.ShowCreatures},
	{"items", render.ShowItems},
	{"effects", render.ShowEffects},
	{"missiles", render.ShowMissiles},
	{"upper-floors", render.ShowUpperFloors},
	{"names", render.ShowNames},
	{"health-bars", render.ShowHealthBars},
	{"status-icons", render.ShowStatusIcons},
	{"floating-numbers", render.ShowFloatingNumbers},
	{"speech-bubbles", render.ShowSpeechBubbles},
	{"status-bars", render.ShowStatusBars},
	{"inventory", render.ShowInventory},
	{"icon-bar", render.ShowIconBar},
	{"containers", render.ShowContainers},
	{"client-background", render.ShowClientBackground},
}

// parseArgs parses argv (not including the program name) into cliOptions.
// Positional args (data_folder, input_path, output_path) are not required
// when --help/--usage/--version is set; otherwise exactly three must be
// given.
func parseArgs(argv []string) (*cliOptions, error) {
	fs := flag.NewFlagSet("tibiavcr-convert", flag.ContinueOnError)

	opts := &cliOptions{
		FrameRate:     60,
		FrameSkip:     1,
		Width:         render.LogicalWidth,
		Height:        render.LogicalHeight,
		OutputBackend: "inert",
		RenderOptions: render.DefaultOptions,
	}

	var inputVersion, resolution string
	skip := make([]*bool, len(skipRenderingFlags))

	fs.StringVar(&opts.InputFormat, "input-format", "", "container format: cam, rec, tibiacast, tmv1, tmv2, trp, ttm, yatc")
	fs.StringVar(&inputVersion, "input-version", "", "client version X.Y[.P] for containers that don't embed one")
	fs.BoolVar(&opts.InputPartial, "input-partial", false, "tolerate a truncated/corrupt recording, recovering what can be read")

	fs.IntVar(&opts.StartTimeMs, "start-time", 0, "playback start offset in ms")
	fs.IntVar(&opts.EndTimeMs, "end-time", 0, "playback end offset in ms (0 = full recording)")
	fs.IntVar(&opts.FrameRate, "frame-rate", 60, "output frame rate in fps")
	fs.IntVar(&opts.FrameSkip, "frame-skip", 1, "render every Nth frame")
	fs.StringVar(&resolution, "resolution", "", "output resolution WxH")

	fs.StringVar(&opts.OutputFormat, "output-format", "", "output container format")
	fs.StringVar(&opts.OutputEncoding, "output-encoding", "", "output video codec")
	fs.StringVar(&opts.OutputFlags, "output-flags", "", "backend-specific encoder flags")
	fs.StringVar(&opts.OutputBackend, "output-backend", "inert", "encoder backend: libav, inert")

	for i, f := range skipRenderingFlags {
		var b bool
		fs.BoolVar(&b, "skip-rendering-"+f.name, false, "suppress "+f.name+" in rendered output")
		skip[i] = &b
	}

	fs.BoolVar(&opts.Help, "help", false, "show usage and exit")
	fs.BoolVar(&opts.Usage, "usage", false, "show usage and exit")
	fs.BoolVar(&opts.Version, "version", false, "print version and exit")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	if opts.Help || opts.Usage || opts.Version {
		return opts, nil
	}

	positional := fs.Args()
	if len(positional) != 3 {
		return nil, fmt.Errorf("expected 3 positional arguments (data_folder input_path output_path), got %d", len(positional))
	}
	opts.DataFolder, opts.InputPath, opts.OutputPath = positional[0], positional[1], positional[2]

	if inputVersion != "" {
		v, err := parseVersion(inputVersion)
		if err != nil {
			return nil, err
		}
		opts.InputVersion = v
	}

	if resolution != "" {
		w, h, err := parseResolution(resolution)
		if err != nil {
			return nil, err
		}
		opts.Width, opts.Height = w, h
	}

	if opts.FrameRate < 1 {
		return nil, fmt.Errorf("--frame-rate must be >= 1, got %d", opts.FrameRate)
	}
	if opts.FrameSkip < 1 {
		return nil, fmt.Errorf("--frame-skip must be >= 1, got %d", opts.FrameSkip)
	}
	if opts.StartTimeMs < 0 {
		return nil, fmt.Errorf("--start-time must be >= 0, got %d", opts.StartTimeMs)
	}
	if opts.EndTimeMs < 0 {
		return nil, fmt.Errorf("--end-time must be >= 0, got %d", opts.EndTimeMs)
	}

	for i, f := range skipRenderingFlags {
		if *skip[i] {
			opts.RenderOptions &^= f.bit
		}
	}

	return opts, nil
}

// parseVersion parses "X.Y", "X.Y.P" into a version.Triplet.
func parseVersion(s string) (version.Triplet, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return version.Triplet{}, fmt.Errorf("--input-version %q: expected X.Y or X.Y.P", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return version.Triplet{}, fmt.Errorf("--input-version %q: invalid major: %w", s, err)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return version.Triplet{}, fmt.Errorf("--input-version %q: invalid minor: %w", s, err)
	}
	preview := 0
	if len(parts) == 3 {
		preview, err = strconv.Atoi(parts[2])
		if err != nil {
			return version.Triplet{}, fmt.Errorf("--input-version %q: invalid preview: %w", s, err)
		}
	}
	return version.Triplet{Major: major, Minor: minor, Preview: preview}, nil
}

// parseResolution parses "WxH", validating each dimension lies in
// [32, 32768] per the converter's documented flag range.
func parseResolution(s string) (int, int, error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		w, h, ok = strings.Cut(s, "X")
	}
	if !ok {
		return 0, 0, fmt.Errorf("--resolution %q: expected WxH", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("--resolution %q: invalid width: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("--resolution %q: invalid height: %w", s, err)
	}
	const minDim, maxDim = 32, 32768
	if width < minDim || width > maxDim || height < minDim || height > maxDim {
		return 0, 0, fmt.Errorf("--resolution %q: dimensions must be in [%d, %d]", s, minDim, maxDim)
	}
	return width, height, nil
}
