package container

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Detect combines the file extension with a byte-pattern heuristic to
// guess a recording's container format.
func Detect(path string, data []byte) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".cam":
		return FormatCam, true
	case ".rec":
		return FormatRec, true
	case ".recording", ".tibiacast":
		return FormatTibiacast, true
	case ".tmv2":
		return FormatTMV2, true
	case ".tmv", ".tmv1":
		return FormatTMV1, true
	case ".trp":
		return FormatTRP, true
	case ".ttm":
		return FormatTTM, true
	case ".yatc":
		return FormatYATC, true
	}

	if len(data) >= 4 && bytes.Equal(data[:4], []byte("TMV2")) {
		return FormatTMV2, true
	}
	if len(data) >= 2 && data[0] == 0x37 && data[1] == 0x13 {
		return FormatTRP, true
	}
	if len(data) >= 2 {
		cv := int(data[0]) | int(data[1])<<8
		if cv == 259 || (cv >= 515 && cv <= 518) {
			return FormatRec, true
		}
	}

	return FormatUnknown, false
}
