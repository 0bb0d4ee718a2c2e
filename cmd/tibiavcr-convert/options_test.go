package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kelindar/tibiavcr/render"
	"github.com/kelindar/tibiavcr/version"
)

func TestParseArgsRequiresThreePositionals(t *testing.T) {
	_, err := parseArgs([]string{"only-one"})
	require.Error(t, err)
}

func TestParseArgsPositionalsAndDefaults(t *testing.T) {
	opts, err := parseArgs([]string{"data", "in.rec", "out.mp4"})
	require.NoError(t, err)
	require.Equal(t, "data", opts.DataFolder)
	require.Equal(t, "in.rec", opts.InputPath)
	require.Equal(t, "out.mp4", opts.OutputPath)
	require.Equal(t, 60, opts.FrameRate)
	require.Equal(t, 1, opts.FrameSkip)
	require.Equal(t, render.LogicalWidth, opts.Width)
	require.Equal(t, render.LogicalHeight, opts.Height)
	require.Equal(t, render.DefaultOptions, opts.RenderOptions)
}

func TestParseArgsHelpSkipsPositionalRequirement(t *testing.T) {
	opts, err := parseArgs([]string{"--help"})
	require.NoError(t, err)
	require.True(t, opts.Help)
}

func TestParseArgsSkipRenderingClearsOption(t *testing.T) {
	opts, err := parseArgs([]string{"--skip-rendering-creatures", "--skip-rendering-missiles", "data", "in.rec", "out.mp4"})
	require.NoError(t, err)
	require.False(t, opts.RenderOptions.Has(render.ShowCreatures))
	require.False(t, opts.RenderOptions.Has(render.ShowMissiles))
	require.True(t, opts.RenderOptions.Has(render.ShowItems))
}

func TestParseArgsInputVersion(t *testing.T) {
	opts, err := parseArgs([]string{"--input-version", "10.98", "data", "in.rec", "out.mp4"})
	require.NoError(t, err)
	require.Equal(t, version.Triplet{Major: 10, Minor: 98}, opts.InputVersion)
}

func TestParseArgsInputVersionWithPreview(t *testing.T) {
	opts, err := parseArgs([]string{"--input-version", "9.60.1", "data", "in.rec", "out.mp4"})
	require.NoError(t, err)
	require.Equal(t, version.Triplet{Major: 9, Minor: 60, Preview: 1}, opts.InputVersion)
}

func TestParseArgsInvalidInputVersion(t *testing.T) {
	_, err := parseArgs([]string{"--input-version", "bogus", "data", "in.rec", "out.mp4"})
	require.Error(t, err)
}

func TestParseArgsResolution(t *testing.T) {
	opts, err := parseArgs([]string{"--resolution", "640x480", "data", "in.rec", "out.mp4"})
	require.NoError(t, err)
	require.Equal(t, 640, opts.Width)
	require.Equal(t, 480, opts.Height)
}

func TestParseArgsResolutionOutOfRange(t *testing.T) {
	_, err := parseArgs([]string{"--resolution", "1x1", "data", "in.rec", "out.mp4"})
	require.Error(t, err)
}

func TestParseArgsInvalidFrameRate(t *testing.T) {
	_, err := parseArgs([]string{"--frame-rate", "0", "data", "in.rec", "out.mp4"})
	require.Error(t, err)
}

func TestParseVersionRejectsTooManyParts(t *testing.T) {
	_, err := parseVersion("1.2.3.4")
	require.Error(t, err)
}

func TestParseResolutionAcceptsUppercaseX(t *testing.T) {
	w, h, err := parseResolution("800X600")
	require.NoError(t, err)
	require.Equal(t, 800, w)
	require.Equal(t, 600, h)
}
