package collection

// Options mirrors the CLI's flat flag set so a batch/collation front-end
// can supply the same fields from a YAML file instead of a long command
// line. Zero values mean "flag not given, fall back to the default the
// command-line parser would have used."
type Options struct {
	DataFolder string `yaml:"data_folder"`
	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`

	InputFormat  string `yaml:"input_format,omitempty"`
	InputVersion string `yaml:"input_version,omitempty"`
	InputPartial bool   `yaml:"input_partial,omitempty"`

	StartTimeMs int    `yaml:"start_time_ms,omitempty"`
	EndTimeMs   int    `yaml:"end_time_ms,omitempty"`
	FrameRate   int    `yaml:"frame_rate,omitempty"`
	FrameSkip   int    `yaml:"frame_skip,omitempty"`
	Resolution  string `yaml:"resolution,omitempty"`

	OutputFormat   string `yaml:"output_format,omitempty"`
	OutputEncoding string `yaml:"output_encoding,omitempty"`
	OutputFlags    string `yaml:"output_flags,omitempty"`
	OutputBackend  string `yaml:"output_backend,omitempty"`

	SkipRendering []string `yaml:"skip_rendering,omitempty"`
}
