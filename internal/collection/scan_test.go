package collection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestGatherRecordingPathsFindsKnownExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cam"), "x")
	writeFile(t, filepath.Join(dir, "sub", "b.rec"), "x")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")

	paths, err := GatherRecordingPaths(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
}

func TestGatherDataPathsFindsKnownExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Tibia.dat"), "x")
	writeFile(t, filepath.Join(dir, "Tibia.spr"), "x")
	writeFile(t, filepath.Join(dir, "readme.md"), "x")

	paths, err := GatherDataPaths(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
}

func TestParseDenyListParsesHexChecksums(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deny.txt")
	checksum := "0123456789abcdef0123456789abcdef01234567"
	writeFile(t, path, checksum+" # known cheat recording\n\nABCDEF0123456789ABCDEF0123456789ABCDEF01\n")

	list, err := ParseDenyList(path)
	require.NoError(t, err)
	require.True(t, list.Has(checksum))
	require.True(t, list.Has("abcdef0123456789abcdef0123456789abcdef01"))
	require.False(t, list.Has("ffffffffffffffffffffffffffffffffffffffff"))
}

func TestParseDenyListRejectsShortChecksum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deny.txt")
	writeFile(t, path, "deadbeef\n")

	_, err := ParseDenyList(path)
	require.Error(t, err)
}
