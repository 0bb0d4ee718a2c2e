// Package charset converts the raw Windows-1252 byte strings the wire
// protocol and asset catalogs carry into UTF-8, matching the client's own
// 8-bit character set rather than assuming ASCII.
package charset

import (
	"golang.org/x/text/encoding/charmap"
)

// ToUTF8 decodes raw as Windows-1252 and returns the equivalent UTF-8 text.
// Bytes below 0x80 are already valid ASCII/UTF-8 and pass through unchanged;
// only the upper half needs the code page's multi-byte expansion.
func ToUTF8(raw []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// ToUTF8String is a convenience wrapper for callers already holding a
// string built from raw Windows-1252 bytes (e.g. after a length-prefixed
// read that used string(buf) to avoid an extra copy).
func ToUTF8String(raw string) string {
	return ToUTF8([]byte(raw))
}
