package assets

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
	"github.com/stretchr/testify/require"
)

func TestDecodeSpriteSolidFill(t *testing.T) {
	// One run: skip 0, paint all 4 pixels of a 2x2 sprite red.
	data := []byte{
		0x00, 0x00, // skip 0
		0x04, 0x00, // count 4
		0xFF, 0x00, 0x00,
		0xFF, 0x00, 0x00,
		0xFF, 0x00, 0x00,
		0xFF, 0x00, 0x00,
	}
	img, err := decodeSprite(data, 2, 2, spriteDepthRGB)
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, img.At(0, 0).(color.RGBA))
	require.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, img.At(1, 1).(color.RGBA))
}

func TestDecodeSpriteTransparentSkip(t *testing.T) {
	data := []byte{
		0x02, 0x00, // skip first 2 pixels (transparent)
		0x02, 0x00, // paint remaining 2
		0x00, 0xFF, 0x00,
		0x00, 0xFF, 0x00,
	}
	img, err := decodeSprite(data, 2, 2, spriteDepthRGB)
	require.NoError(t, err)
	require.Equal(t, color.RGBA{}, img.At(0, 0).(color.RGBA))
	require.Equal(t, color.RGBA{G: 0xFF, A: 0xFF}, img.At(0, 1).(color.RGBA))
}

func TestDecodeSpriteOverrunRejected(t *testing.T) {
	data := []byte{
		0xFF, 0xFF, // skip absurdly large
		0x00, 0x00,
	}
	_, err := decodeSprite(data, 2, 2, spriteDepthRGB)
	require.ErrorIs(t, err, ErrInvalidSprite)
}

func writeOffsetFile(t *testing.T, path string, entries [][]byte) {
	t.Helper()
	var offsets []uint32
	var body []byte
	for _, e := range entries {
		offsets = append(offsets, uint32(8+len(entries)*4+len(body)))
		lenPrefix := []byte{byte(len(e)), byte(len(e) >> 8)}
		body = append(body, lenPrefix...)
		body = append(body, e...)
	}

	var out []byte
	out = append(out, 0x01, 0x00, 0x00, 0x00) // signature
	out = append(out, byte(len(entries)), byte(len(entries)>>8), 0, 0)
	for _, o := range offsets {
		out = append(out, byte(o), byte(o>>8), byte(o>>16), byte(o>>24))
	}
	out = append(out, body...)

	require.NoError(t, os.WriteFile(path, out, 0o644))
}

func TestOffsetFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.spr")
	writeOffsetFile(t, path, [][]byte{
		{0xAA, 0xBB},
		{0x01, 0x02, 0x03},
	})

	f, err := openOffsetFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, 2, f.Count())

	got, err := f.At(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 0xBB}, got)

	got, err = f.At(1)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, got)
}

func TestReadTypeGroundCarriesSpeed(t *testing.T) {
	profile := version.New(version.Triplet{Major: 7, Minor: 55})
	data := []byte{
		0x00,       // PropertyGround opcode
		0x96, 0x00, // ground speed payload (150)
		0xFF,       // PropertyEnd
		0x01, 0x01, // width, height
		0x01, 0x01, 0x01, 0x01, // layers, patternX, patternY, patternZ
		0x01,       // phase count
		0x64, 0x00, // sprite id
	}

	ty, err := readType(reader.New(data), 1, CategoryItem, profile)
	require.NoError(t, err)
	require.True(t, ty.Has(version.PropertyGround))
	require.Equal(t, 150, ty.GroundSpeed)
	require.Equal(t, []int{150}, ty.Properties[version.PropertyGround].Values)
}

func TestStoreOpenRejectsMissingDir(t *testing.T) {
	_, err := Open("/no/such/directory", version.Triplet{Major: 10, Minor: 98})
	require.Error(t, err)
}
