package charset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToUTF8PassesThroughASCII(t *testing.T) {
	require.Equal(t, "Hello World", ToUTF8([]byte("Hello World")))
}

func TestToUTF8ExpandsUpperHalfBytes(t *testing.T) {
	// 0xE9 in Windows-1252 is U+00E9 (e acute), "é" in UTF-8.
	got := ToUTF8([]byte{'C', 0xE9})
	require.Equal(t, "Cé", got)
}

func TestToUTF8StringMatchesByteVariant(t *testing.T) {
	raw := string([]byte{'N', 0xF1, 'o'})
	require.Equal(t, ToUTF8([]byte(raw)), ToUTF8String(raw))
}

func TestToUTF8EmptyInput(t *testing.T) {
	require.Equal(t, "", ToUTF8(nil))
}
