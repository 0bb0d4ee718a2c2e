package collection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingIndexReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	idx, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, New(), idx)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	idx := New()
	idx.AddDatFile(42)
	idx.AddVideoName("deadbeef", VideoEntry{Format: "rec", Runtime: 1234}, "demo.rec")

	require.NoError(t, Save(dir, idx))

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, idx.DatFiles, loaded.DatFiles)
	require.Equal(t, idx.VideoFiles, loaded.VideoFiles)
}

func TestSaveLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, New()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, indexFileName, entries[0].Name())
}

func TestEnsureLayoutCreatesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, EnsureLayout(dir))

	for _, sub := range []string{DirDat, DirPic, DirSpr, DirVideos} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}
