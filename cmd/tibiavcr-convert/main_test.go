package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kelindar/tibiavcr/container"
)

func TestParseFormatKnownNames(t *testing.T) {
	cases := map[string]container.Format{
		"cam":       container.FormatCam,
		"rec":       container.FormatRec,
		"tibiacast": container.FormatTibiacast,
		"tmv1":      container.FormatTMV1,
		"tmv2":      container.FormatTMV2,
		"trp":       container.FormatTRP,
		"ttm":       container.FormatTTM,
		"yatc":      container.FormatYATC,
	}
	for name, want := range cases {
		require.Equal(t, want, parseFormat(name), name)
	}
}

func TestParseFormatUnknown(t *testing.T) {
	require.Equal(t, container.FormatUnknown, parseFormat("nonsense"))
}
