package collection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIndexStartsEmpty(t *testing.T) {
	idx := New()
	require.Equal(t, 0, idx.Version)
	require.Empty(t, idx.DatFiles)
	require.NotNil(t, idx.VideoFiles)
}

func TestAddDatFileDeduplicates(t *testing.T) {
	idx := New()
	idx.AddDatFile(111)
	idx.AddDatFile(111)
	idx.AddDatFile(222)
	require.Equal(t, []uint32{111, 222}, idx.DatFiles)
}

func TestHasFileHelpers(t *testing.T) {
	idx := New()
	idx.AddPicFile(5)
	idx.AddSprFile(9)
	require.True(t, idx.HasPicFile(5))
	require.False(t, idx.HasPicFile(6))
	require.True(t, idx.HasSprFile(9))
	require.False(t, idx.HasDatFile(5))
}

func TestAddVideoNameCreatesEntry(t *testing.T) {
	idx := New()
	idx.AddVideoName("abc123", VideoEntry{Format: "cam", Runtime: 5000}, "fight.cam")

	entry, ok := idx.VideoFiles["abc123"]
	require.True(t, ok)
	require.Equal(t, "cam", entry.Format)
	require.Equal(t, []string{"fight.cam"}, entry.Names)
}

func TestAddVideoNameAppendsAdditionalAlias(t *testing.T) {
	idx := New()
	idx.AddVideoName("abc123", VideoEntry{Format: "cam"}, "fight.cam")
	idx.AddVideoName("abc123", VideoEntry{Format: "cam"}, "copy-of-fight.cam")
	idx.AddVideoName("abc123", VideoEntry{Format: "cam"}, "fight.cam")

	require.Equal(t, []string{"fight.cam", "copy-of-fight.cam"}, idx.VideoFiles["abc123"].Names)
}
